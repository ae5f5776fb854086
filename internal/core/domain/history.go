package domain

import "time"

// DefaultHistoryRuns is how many analysis runs the history keeps.
const DefaultHistoryRuns = 100

// RunSummary is the listing form of a recorded analysis run.
type RunSummary struct {
	RunID           string    `json:"runId"`
	AnalyzedAt      time.Time `json:"analyzedAt"`
	TotalSignals    int       `json:"totalSignals"`
	NarrativeCount  int       `json:"narrativeCount"`
	DataSourcesUsed []string  `json:"dataSourcesUsed"`
	AgentVersion    string    `json:"agentVersion"`

	// TopNarrative is the ID of the most confident narrative, if any.
	TopNarrative string `json:"topNarrative,omitempty"`
}

// NarrativePoint is one narrative's score in one recorded run.
type NarrativePoint struct {
	RunID       string    `json:"runId"`
	AnalyzedAt  time.Time `json:"analyzedAt"`
	Confidence  int       `json:"confidence"`
	Trend       Trend     `json:"trend"`
	SignalCount int       `json:"signalCount"`
}

// Summarise builds the listing form of a result.
func (r *AnalysisResult) Summarise() RunSummary {
	s := RunSummary{
		RunID:           r.RunID,
		AnalyzedAt:      r.AnalyzedAt,
		TotalSignals:    r.TotalSignals,
		NarrativeCount:  len(r.Narratives),
		DataSourcesUsed: r.DataSourcesUsed,
		AgentVersion:    r.AgentVersion,
	}
	if len(r.Narratives) > 0 {
		s.TopNarrative = r.Narratives[0].ID
	}
	return s
}

// NarrativeChange describes how one narrative moved between two runs.
type NarrativeChange struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Delta is the confidence change; zero for new or dropped narratives.
	Delta int `json:"delta"`

	// Confidence is the current confidence, or the last one for dropped narratives.
	Confidence int `json:"confidence"`

	New     bool `json:"new,omitempty"`
	Dropped bool `json:"dropped,omitempty"`
}

// Compare lists narrative changes from prev to r: current narratives in
// rank order, then narratives that disappeared. A nil prev marks everything new.
func (r *AnalysisResult) Compare(prev *AnalysisResult) []NarrativeChange {
	before := make(map[string]*Narrative)
	if prev != nil {
		for i := range prev.Narratives {
			before[prev.Narratives[i].ID] = &prev.Narratives[i]
		}
	}

	changes := make([]NarrativeChange, 0, len(r.Narratives))
	seen := make(map[string]bool, len(r.Narratives))
	for i := range r.Narratives {
		n := &r.Narratives[i]
		seen[n.ID] = true
		c := NarrativeChange{ID: n.ID, Title: n.Title, Confidence: n.Confidence}
		if old, ok := before[n.ID]; ok {
			c.Delta = n.Confidence - old.Confidence
		} else {
			c.New = true
		}
		changes = append(changes, c)
	}

	if prev != nil {
		for i := range prev.Narratives {
			n := &prev.Narratives[i]
			if !seen[n.ID] {
				changes = append(changes, NarrativeChange{
					ID: n.ID, Title: n.Title, Confidence: n.Confidence, Dropped: true,
				})
			}
		}
	}
	return changes
}
