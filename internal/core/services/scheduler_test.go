package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// countingAnalysis is an AnalysisService that counts calls.
type countingAnalysis struct {
	mu    sync.Mutex
	calls int
	err   error
	block bool
}

func (c *countingAnalysis) Analyze(ctx context.Context) (*domain.AnalysisResult, error) {
	c.mu.Lock()
	c.calls++
	n := c.calls
	c.mu.Unlock()

	if c.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.err != nil {
		return nil, c.err
	}
	return &domain.AnalysisResult{TotalSignals: n}, nil
}

func (c *countingAnalysis) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestScheduler_RunsUntilMaxRuns(t *testing.T) {
	analysis := &countingAnalysis{}
	var seen []int
	s := NewScheduler(SchedulerConfig{Interval: time.Millisecond, MaxRuns: 3}, analysis,
		func(r *domain.AnalysisResult, err error) {
			require.NoError(t, err)
			seen = append(seen, r.TotalSignals)
		})

	err := s.Start(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, analysis.Calls())
	assert.Equal(t, 3, s.Runs())
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestScheduler_ReportsErrorsAndContinues(t *testing.T) {
	analysis := &countingAnalysis{err: errors.New("upstream")}
	failures := 0
	s := NewScheduler(SchedulerConfig{Interval: time.Millisecond, MaxRuns: 2}, analysis,
		func(r *domain.AnalysisResult, err error) {
			assert.Nil(t, r)
			if err != nil {
				failures++
			}
		})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 2, failures)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	analysis := &countingAnalysis{}
	s := NewScheduler(SchedulerConfig{Interval: time.Hour}, analysis, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return analysis.Calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_Stop(t *testing.T) {
	analysis := &countingAnalysis{}
	s := NewScheduler(SchedulerConfig{Interval: time.Hour}, analysis, nil)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()
	require.Eventually(t, func() bool { return analysis.Calls() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.NoError(t, s.Stop(), "second stop is a no-op")
}

func TestScheduler_RunTimeout(t *testing.T) {
	analysis := &countingAnalysis{block: true}
	var got error
	s := NewScheduler(SchedulerConfig{Interval: time.Millisecond, RunTimeout: 10 * time.Millisecond, MaxRuns: 1},
		analysis, func(_ *domain.AnalysisResult, err error) { got = err })

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestScheduler_InvalidConfig(t *testing.T) {
	assert.Error(t, NewScheduler(SchedulerConfig{Interval: time.Second}, nil, nil).Start(context.Background()))
	assert.Error(t, NewScheduler(SchedulerConfig{}, &countingAnalysis{}, nil).Start(context.Background()))
}
