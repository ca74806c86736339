package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	id    int
	delay time.Duration
	fail  bool
	runs  *atomic.Int32
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) Err() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	if j.runs != nil {
		j.runs.Add(1)
	}
	if j.delay > 0 {
		select {
		case <-ctx.Done():
			return &testResult{id: j.id, err: ctx.Err()}
		case <-time.After(j.delay):
		}
	}
	if j.fail {
		return &testResult{id: j.id, err: errors.New("job failed")}
	}
	return &testResult{id: j.id}
}

func TestPoolRunsAllJobs(t *testing.T) {
	var runs atomic.Int32

	pool := NewPool(3)
	pool.Start()
	for i := 0; i < 10; i++ {
		pool.Submit(&testJob{id: i, runs: &runs})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Fatalf("got %d results, want 10", len(results))
	}
	if got := runs.Load(); got != 10 {
		t.Errorf("executed %d jobs, want 10", got)
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Submit(&testJob{id: 1})
	pool.Submit(&testJob{id: 2, fail: true})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	var failed int
	for _, res := range results {
		if res.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("got %d failed results, want 1", failed)
	}
}

func TestPoolClampsWorkerCount(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&testJob{id: 1})

	results := pool.Wait()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestPoolShutdownStopsWorkers(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&testJob{id: 1, delay: 5 * time.Second})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return in time")
	}
}
