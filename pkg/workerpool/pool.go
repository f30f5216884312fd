// Package workerpool runs a fixed number of concurrent tasks and
// collects every result, never short-circuiting on the first failure
// — the "all-settled" fan-out semantics §5 and §9 require for the
// market-run (C8) and nutrition-resolver (C5) phases. Grounded on the
// teacher's pkg/concurrency.DynamicWorkerPool, simplified to a static
// pool size since this engine scales per-request, not per-process.
package workerpool

import (
	"context"
	"sync"
)

// Outcome is the sum type described in spec.md §9: every task returns
// either a value or a reason, never a bare error that could be
// mistaken for "no result".
type Outcome[T any] struct {
	Value   T
	Err     error
	Success bool
}

// Task is one unit of work submitted to the pool.
type Task[T any] func(ctx context.Context) Outcome[T]

// Run executes tasks with at most `workers` running concurrently and
// returns one Outcome per task, in the same order as the input. A
// panicking task is recovered and surfaces as a Failure outcome so one
// bad ingredient can never take down its peers.
func Run[T any](ctx context.Context, workers int, tasks []Task[T]) []Outcome[T] {
	results := make([]Outcome[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, task Task[T]) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					results[i] = Outcome[T]{Success: false, Err: panicError{r}}
				}
			}()
			results[i] = task(ctx)
		}(i, task)
	}

	wg.Wait()
	return results
}

type panicError struct{ v interface{} }

func (p panicError) Error() string { return "task panicked" }
