package catalogue

import "github.com/custodia-labs/ronin/internal/core/domain"

// builtinPatterns is the default narrative table.
func builtinPatterns() []domain.NarrativePattern {
	return []domain.NarrativePattern{
		{
			ID:          "ai-agents",
			Title:       "AI Agents on Solana",
			Keywords:    []string{"agent", "ai", "autonomous", "llm", "gpt", "claude", "inference"},
			Categories:  []string{"AI Agents", "Tooling"},
			MinSignals:  1,
			Description: "Autonomous AI agents interacting with Solana for trading, security analysis, and automated on-chain operations. The convergence of AI and blockchain is creating a new category of autonomous economic actors.",
			BuildIdeas: []domain.BuildIdea{
				{
					Title:           "Agent-to-Agent Payment Protocol",
					Description:     "A Solana program that enables autonomous agents to negotiate, escrow, and settle payments for services rendered to each other - creating an agent economy.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "4-6 weeks",
					TargetAudience:  "AI agent developers, autonomous system builders",
					Integration:     "SPL token escrow, PDA-based agent identities, automated settlement via CPI",
				},
				{
					Title:           "On-Chain Agent Reputation System",
					Description:     "Soulbound reputation tokens for AI agents based on their on-chain performance history - accuracy of predictions, successful task completion, reliability scores.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "2-3 weeks",
					TargetAudience:  "Agent operators, platforms hiring agents",
					Integration:     "Token-2022 soulbound tokens, Merkle trees for proof history, compressed NFT credentials",
				},
				{
					Title:           "Agent Bounty Marketplace",
					Description:     "A decentralized marketplace where humans post tasks and AI agents compete to complete them, with automated judging and payout via smart contracts.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "6-8 weeks",
					TargetAudience:  "Businesses needing AI labor, agent operators",
					Integration:     "Escrow programs, oracle-based judging, SPL token rewards",
				},
			},
		},
		{
			ID:          "defi-growth",
			Title:       "DeFi Expansion on Solana",
			Keywords:    []string{"defi", "tvl", "swap", "lending", "yield", "liquidity", "amm", "vault"},
			Categories:  []string{"DeFi", "Liquidity", "DEXes", "Lending"},
			MinSignals:  2,
			Description: "Solana DeFi is expanding with growing TVL, new protocols, and increasing capital efficiency. The ecosystem is maturing from simple swaps to complex structured products.",
			BuildIdeas: []domain.BuildIdea{
				{
					Title:           "Intent-Based DEX Aggregator",
					Description:     "Users express trade intents in natural language ('swap $500 to the best performing Solana DeFi token this week'). AI resolves the intent, finds optimal routes, and executes.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "3-4 weeks",
					TargetAudience:  "Retail DeFi users, crypto newcomers",
					Integration:     "Jupiter aggregation, versioned transactions, priority fees optimization",
				},
				{
					Title:           "DeFi Risk Dashboard with ML Scoring",
					Description:     "Real-time risk scores for every Solana DeFi protocol based on TVL trends, smart contract analysis, team activity, and market conditions.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "3-5 weeks",
					TargetAudience:  "DeFi investors, fund managers, DAOs",
					Integration:     "On-chain TVL tracking, program account monitoring, historical transaction analysis",
				},
				{
					Title:           "Automated Yield Strategy Builder",
					Description:     "Visual builder for composable DeFi strategies on Solana. Drag-and-drop yield farming, leveraged positions, and hedging strategies that compile to executable transactions.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "6-8 weeks",
					TargetAudience:  "Active DeFi farmers, treasury managers",
					Integration:     "Cross-program invocations, atomic transaction bundles, Jito MEV protection",
				},
			},
		},
		{
			ID:          "token-security",
			Title:       "Token Security & Rug Prevention",
			Keywords:    []string{"security", "rug", "scam", "audit", "vulnerability", "scanner", "honeypot"},
			Categories:  []string{"Security", "Risk"},
			MinSignals:  1,
			Description: "With 98.6% of pump.fun tokens being rugs, security tooling is a critical gap. New approaches using ML, behavioral analysis, and wallet forensics are emerging to protect traders.",
			BuildIdeas: []domain.BuildIdea{
				{
					Title:           "Pre-Swap Risk Interception Layer",
					Description:     "Browser extension or Jupiter plugin that intercepts swap transactions, runs real-time risk analysis, and shows a risk report BEFORE the user confirms. Saves users from rugs at the moment of decision.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "2-3 weeks",
					TargetAudience:  "Every Solana trader, especially pump.fun users",
					Integration:     "Transaction simulation, Jupiter quote API, token account inspection, mint authority checks",
				},
				{
					Title:           "Wallet DNA Forensics Tool",
					Description:     "Graph-based analysis tool that maps wallet relationships, identifies Sybil networks, and traces funds from known rug operations across the Solana ecosystem.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "4-6 weeks",
					TargetAudience:  "Security researchers, law enforcement, advanced traders",
					Integration:     "Transaction history indexing, token transfer graph construction, PDA relationship mapping",
				},
				{
					Title:           "Community-Powered Rug Insurance Pool",
					Description:     "Decentralized insurance pool where users stake SOL against rug risk. If an AI-verified rug occurs, affected users get compensated automatically.",
					Feasibility:     domain.FeasibilityLow,
					EstimatedEffort: "8-12 weeks",
					TargetAudience:  "Risk-averse traders, DeFi protocols",
					Integration:     "Insurance pool program, oracle-verified rug events, automated claim settlement",
				},
			},
		},
		{
			ID:          "depin-growth",
			Title:       "DePIN Infrastructure on Solana",
			Keywords:    []string{"depin", "physical", "infrastructure", "iot", "sensor", "network", "helium", "render", "hivemapper"},
			Categories:  []string{"DePIN", "Infrastructure"},
			MinSignals:  1,
			Description: "Decentralized Physical Infrastructure Networks are finding product-market fit on Solana, with projects like Helium, Render, and Hivemapper demonstrating real-world utility.",
			BuildIdeas: []domain.BuildIdea{
				{
					Title:           "DePIN Node Health Monitor",
					Description:     "Dashboard and alerting system for DePIN node operators across multiple networks (Helium, Hivemapper, etc). Uptime tracking, reward optimization, and predictive maintenance.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "3-4 weeks",
					TargetAudience:  "DePIN node operators, infrastructure investors",
					Integration:     "Compressed NFT node credentials, reward token tracking, staking position monitoring",
				},
				{
					Title:           "Cross-DePIN Data Marketplace",
					Description:     "Aggregation layer that lets developers buy compute, bandwidth, mapping data, and sensor readings from multiple DePIN networks through a single API, settled on Solana.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "6-8 weeks",
					TargetAudience:  "Web3 developers, data scientists, IoT companies",
					Integration:     "Payment channels, data access NFTs, multi-token settlement",
				},
				{
					Title:           "DePIN Yield Optimizer",
					Description:     "Automatically allocates capital across DePIN staking and delegation opportunities based on real-time yield, risk, and network demand signals.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "4-6 weeks",
					TargetAudience:  "DePIN investors, yield farmers",
					Integration:     "Cross-protocol staking, automated rebalancing transactions, yield tracking",
				},
			},
		},
		{
			ID:          "developer-tooling",
			Title:       "Developer Experience Revolution",
			Keywords:    []string{"sdk", "cli", "tool", "framework", "developer", "anchor", "testing"},
			Categories:  []string{"Tooling", "Ecosystem"},
			MinSignals:  1,
			Description: "The Solana developer experience is rapidly improving with new frameworks, testing tools, and SDKs. Lower barriers to entry are attracting web2 developers to build on Solana.",
			BuildIdeas: []domain.BuildIdea{
				{
					Title:           "AI-Powered Solana Program Generator",
					Description:     "Natural language to Anchor program compiler. Describe what you want your program to do, get tested, audited Rust code with security best practices baked in.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "6-8 weeks",
					TargetAudience:  "Web2 developers entering Solana, rapid prototypers",
					Integration:     "Anchor framework generation, automated test suite, devnet deployment pipeline",
				},
				{
					Title:           "Solana Transaction Debugger",
					Description:     "Visual debugger that replays any Solana transaction step-by-step, showing account state changes, CPI calls, and compute unit consumption in a clean UI.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "3-4 weeks",
					TargetAudience:  "Solana developers, program auditors",
					Integration:     "Transaction simulation, account state diffing, program log parsing",
				},
				{
					Title:           "One-Click Solana Starter Kits",
					Description:     "Opinionated project templates for common Solana use cases (token launch, NFT collection, DeFi pool, DAO). Full stack: Anchor program + Next.js frontend + tests + deployment.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "2-3 weeks",
					TargetAudience:  "New Solana developers, hackathon participants",
					Integration:     "Anchor scaffolding, wallet adapter setup, devnet auto-deploy",
				},
			},
		},
		{
			ID:          "market-momentum",
			Title:       "Solana Ecosystem Market Momentum",
			Keywords:    []string{"price", "volume", "market", "cap", "surge", "gain", "momentum"},
			Categories:  []string{"Market", "Momentum"},
			MinSignals:  1,
			Description: "Price action and trading volume across Solana ecosystem tokens are showing directional momentum, signaling shifting capital allocation and narrative attention.",
			BuildIdeas: []domain.BuildIdea{
				{
					Title:           "Solana Smart Money Tracker",
					Description:     "Identify and track wallets with consistently profitable trading histories. Surface what smart money is accumulating before it becomes mainstream narrative.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "3-5 weeks",
					TargetAudience:  "Active traders, research analysts",
					Integration:     "Wallet transaction history, token balance snapshots, DEX trade reconstruction",
				},
				{
					Title:           "Narrative-Weighted Portfolio Builder",
					Description:     "Portfolio construction tool that allocates based on narrative strength signals rather than market cap. Overweight emerging narratives, underweight declining ones.",
					Feasibility:     domain.FeasibilityMedium,
					EstimatedEffort: "4-6 weeks",
					TargetAudience:  "Crypto fund managers, sophisticated retail",
					Integration:     "Jupiter swap execution, portfolio rebalancing programs, on-chain position tracking",
				},
				{
					Title:           "Real-Time Solana Alpha Feed",
					Description:     "Aggregated feed of alpha signals: unusual volume, whale movements, new pool creation, governance proposals, airdrop indicators. Delivered via Telegram bot and web dashboard.",
					Feasibility:     domain.FeasibilityHigh,
					EstimatedEffort: "2-3 weeks",
					TargetAudience:  "Active traders, alpha hunters",
					Integration:     "WebSocket monitoring, DEX pool creation events, token transfer tracking",
				},
			},
		},
	}
}
