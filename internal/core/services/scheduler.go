package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
	"github.com/custodia-labs/ronin/internal/logger"
)

// SchedulerConfig configures periodic analysis.
type SchedulerConfig struct {
	// Interval is the time between the end of one run and the start of the next.
	Interval time.Duration

	// RunTimeout bounds each run. Zero means no bound beyond the scheduler's context.
	RunTimeout time.Duration

	// MaxRuns stops the scheduler after this many runs. Zero means unlimited.
	MaxRuns int
}

// RunHandler receives the outcome of each scheduled run.
type RunHandler func(result *domain.AnalysisResult, err error)

// Scheduler runs analysis passes on a fixed interval.
type Scheduler struct {
	config   SchedulerConfig
	analysis driving.AnalysisService
	onRun    RunHandler

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
	runs    int
}

// NewScheduler creates a scheduler. onRun may be nil.
func NewScheduler(config SchedulerConfig, analysis driving.AnalysisService, onRun RunHandler) *Scheduler {
	return &Scheduler{
		config:   config,
		analysis: analysis,
		onRun:    onRun,
	}
}

// Start runs the first pass immediately, then one per interval. It blocks
// until Stop is called, the context ends, or MaxRuns passes have run.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.analysis == nil {
		return errors.New("scheduler: analysis service is required")
	}
	if s.config.Interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.wg.Add(1)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		s.wg.Done()
	}()

	return s.run(ctx, stopCh)
}

// Stop ends the loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// Runs returns how many passes have completed.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-timer.C:
		}

		s.runOnce(ctx)

		if s.config.MaxRuns > 0 && s.Runs() >= s.config.MaxRuns {
			return nil
		}
		timer.Reset(s.config.Interval)
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx := ctx
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	started := time.Now()
	result, err := s.analysis.Analyze(runCtx)
	if err != nil {
		logger.Warn("scheduler: run failed after %s: %v", time.Since(started).Round(time.Millisecond), err)
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	if s.onRun != nil {
		s.onRun(result, err)
	}
}
