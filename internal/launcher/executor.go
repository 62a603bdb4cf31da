package launcher

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Workers is the fixed parallelism of the install task pool.
const Workers = 64

// taskQueue is a mutex-guarded slice drained from the back (last task
// first) under concurrent access from worker goroutines.
type taskQueue struct {
	mu    sync.Mutex
	tasks []Task
}

func newTaskQueue(tasks []Task) *taskQueue {
	cp := make([]Task, len(tasks))
	copy(cp, tasks)
	return &taskQueue{tasks: cp}
}

func (q *taskQueue) pop() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return Task{}, false
	}
	last := len(q.tasks) - 1
	t := q.tasks[last]
	q.tasks = q.tasks[:last]
	return t, true
}

// mutexSink wraps a ProgressSink so every Advance/SetLabel call acquires a
// mutex, since sink implementations are not assumed to be safe for
// concurrent use.
type mutexSink struct {
	mu    sync.Mutex
	inner ProgressSink
}

func (s *mutexSink) AdvanceOne() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.AdvanceOne()
}

func (s *mutexSink) SetCurrentLabel(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.SetCurrentLabel(text)
}

// noopSink discards progress reports, used when a caller has no interest in
// progress (e.g. a non-interactive mod install).
type noopSink struct{}

func (noopSink) AdvanceOne()          {}
func (noopSink) SetCurrentLabel(string) {}

// RunPool drains tasks across Workers goroutines, reporting every
// completion (including cache hits) through sink. The first fatal task
// error is returned; other in-flight workers are allowed to finish rather
// than being cooperatively aborted, since tasks are independent and
// idempotent.
func RunPool(ctx context.Context, tasks []Task, sink ProgressSink, client *http.Client) error {
	if len(tasks) == 0 {
		return nil
	}
	if client == nil {
		client = NewDefaultHTTPClient()
	}
	if sink == nil {
		sink = noopSink{}
	}

	queue := newTaskQueue(tasks)
	guarded := &mutexSink{inner: sink}

	// A plain errgroup.Group (no WithContext) joins the worker goroutines
	// and propagates the first fatal error without cancelling the shared
	// ctx, so other in-flight workers are allowed to run to completion
	// rather than being cooperatively aborted.
	eg := new(errgroup.Group)
	for i := 0; i < Workers; i++ {
		eg.Go(func() error {
			for {
				task, ok := queue.pop()
				if !ok {
					return nil
				}
				if err := task.Execute(ctx, client); err != nil {
					return err
				}
				task.Report(guarded)
			}
		})
	}
	return eg.Wait()
}
