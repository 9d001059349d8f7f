package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *int64
	fail    bool
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	if j.fail {
		return &countResult{err: errors.New("job failed")}
	}
	return &countResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var executed int64
	pool := NewPool(4)
	pool.Start()

	for i := 0; i < 20; i++ {
		pool.Submit(&countJob{counter: &executed})
	}
	results := pool.Wait()

	if got := atomic.LoadInt64(&executed); got != 20 {
		t.Errorf("executed %d jobs, want 20", got)
	}
	if len(results) != 20 {
		t.Errorf("collected %d results, want 20", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("unexpected error: %v", r.GetError())
		}
	}
}

func TestPool_ReportsJobErrors(t *testing.T) {
	var executed int64
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&countJob{counter: &executed})
	pool.Submit(&countJob{counter: &executed, fail: true})
	results := pool.Wait()

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

func TestPool_ZeroWorkers(t *testing.T) {
	var executed int64
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &executed})
	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("a zero-worker pool should still run with one worker, got %d results", len(results))
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submissions after shutdown are dropped, not deadlocked
	var executed int64
	pool.Submit(&countJob{counter: &executed})
	if got := atomic.LoadInt64(&executed); got != 0 {
		t.Errorf("job ran after shutdown")
	}
}
