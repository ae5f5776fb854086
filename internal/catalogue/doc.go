// Package catalogue holds the narrative pattern table.
//
// The built-in table ships with the binary. An alternative table can be
// loaded from a TOML file at startup:
//
//	[[patterns]]
//	id          = "ai-agents"
//	title       = "AI Agents on Solana"
//	keywords    = ["agent", "llm"]
//	categories  = ["AI Agents"]
//	min_signals = 1
//	description = "Autonomous AI agents interacting with Solana."
//
//	  [[patterns.build_ideas]]
//	  title            = "Agent Bounty Marketplace"
//	  description      = "..."
//	  feasibility      = "medium"
//	  estimated_effort = "6-8 weeks"
//	  target_audience  = "Agent operators"
//	  integration      = "Escrow programs"
//
// A Catalogue is immutable after construction and safe for concurrent reads.
// Live wraps a pattern file and swaps in a new Catalogue when the file
// changes, so long-running commands pick up edits without a restart.
package catalogue
