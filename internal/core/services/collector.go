package services

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/logger"
)

// CollectedSignals is the merged output of one collection pass.
type CollectedSignals struct {
	// Signals are sorted by strength, strongest first.
	// Equal strengths keep source registration order.
	Signals []domain.Signal

	// Sources lists the labels of every source that returned at least one signal.
	Sources []string
}

// Collector fans out to every signal source and joins the results.
type Collector struct {
	sources []driven.SignalSource
}

// NewCollector creates a collector over the given sources.
// Registration order decides tie-breaks in the merged signal list.
func NewCollector(sources ...driven.SignalSource) *Collector {
	filtered := make([]driven.SignalSource, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &Collector{sources: filtered}
}

// Sources returns the registered sources in order.
func (c *Collector) Sources() []driven.SignalSource {
	return c.sources
}

// Collect runs every source concurrently and waits for all of them.
// A source that panics is treated as having returned nothing.
func (c *Collector) Collect(ctx context.Context) CollectedSignals {
	results := make([][]domain.Signal, len(c.sources))

	var wg sync.WaitGroup
	for i, src := range c.sources {
		wg.Add(1)
		go func(i int, src driven.SignalSource) {
			defer wg.Done()
			results[i] = collectOne(ctx, src)
		}(i, src)
	}
	wg.Wait()

	out := CollectedSignals{
		Signals: []domain.Signal{},
		Sources: []string{},
	}
	for i, src := range c.sources {
		logger.Debug("collector: %s returned %d signals", src.Kind(), len(results[i]))
		if len(results[i]) == 0 {
			continue
		}
		out.Signals = append(out.Signals, results[i]...)
		out.Sources = append(out.Sources, src.Labels()...)
	}

	sort.SliceStable(out.Signals, func(a, b int) bool {
		return out.Signals[a].Strength > out.Signals[b].Strength
	})

	return out
}

func collectOne(ctx context.Context, src driven.SignalSource) (signals []domain.Signal) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("collector: %s source panicked: %v", src.Kind(), r)
			signals = nil
		}
	}()
	return src.Collect(ctx)
}
