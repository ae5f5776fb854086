package onchain

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
)

const (
	solanaChain = "Solana"

	// maxProtocols caps the protocol list after sorting by TVL.
	maxProtocols = 20
)

// chainTVL is an entry of DeFi Llama's /v2/chains.
type chainTVL struct {
	Name string  `json:"name"`
	TVL  float64 `json:"tvl"`
}

// protocol is an entry of DeFi Llama's /protocols.
// Change fields are null for newly listed protocols.
type protocol struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Category string   `json:"category"`
	Chains   []string `json:"chains"`
	TVL      float64  `json:"tvl"`
	Change1d *float64 `json:"change_1d"`
	Change7d *float64 `json:"change_7d"`
}

func (p *protocol) change1d() float64 {
	if p.Change1d == nil {
		return 0
	}
	return *p.Change1d
}

func (p *protocol) change7d() float64 {
	if p.Change7d == nil {
		return 0
	}
	return *p.Change7d
}

// fetchSolanaTVL returns the total Solana TVL in USD.
func (s *Source) fetchSolanaTVL(ctx context.Context) (float64, error) {
	var chains []chainTVL
	if err := s.client.GetJSON(ctx, s.defiLlamaURL+"/v2/chains", &chains); err != nil {
		return 0, fmt.Errorf("defillama chains: %w", err)
	}
	for _, c := range chains {
		if strings.EqualFold(c.Name, solanaChain) {
			return c.TVL, nil
		}
	}
	return 0, nil
}

// fetchProtocols returns the largest Solana protocols above the TVL floor,
// sorted by TVL descending.
func (s *Source) fetchProtocols(ctx context.Context) ([]protocol, error) {
	var all []protocol
	if err := s.client.GetJSON(ctx, s.defiLlamaURL+"/protocols", &all); err != nil {
		return nil, fmt.Errorf("defillama protocols: %w", err)
	}

	solana := make([]protocol, 0, maxProtocols)
	for _, p := range all {
		if slices.Contains(p.Chains, solanaChain) && p.TVL > s.minProtocolTVL {
			solana = append(solana, p)
		}
	}
	sort.SliceStable(solana, func(i, j int) bool {
		return solana[i].TVL > solana[j].TVL
	})
	if len(solana) > maxProtocols {
		solana = solana[:maxProtocols]
	}
	return solana, nil
}
