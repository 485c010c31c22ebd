// Package parallel provides the fork-join execution primitive used by the
// build pipeline: ordered fan-out over independent work items, with per-item
// outcome capture and a deterministic aggregation fold.
package parallel

import "sync"

// Outcome is the tagged result of one unit of work: success with an optional
// value, or failure with an error. A successful unit that produces nothing
// leaves HasValue false.
type Outcome[T any] struct {
	Value    T
	HasValue bool
	Err      error
}

// Ok returns a success outcome carrying a value.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, HasValue: true}
}

// Done returns a success outcome carrying no value.
func Done[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Fail returns a failure outcome.
func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{Err: err}
}

// Map executes fn over all items concurrently and returns one outcome per
// item, in input order regardless of completion order. A failing item never
// aborts its siblings; its failure is captured in that item's slot.
//
// concurrency bounds the number of simultaneously running items; 0 or a
// negative value means one goroutine per item.
func Map[T any, R any](items []T, concurrency int, fn func(T) (R, error)) []Outcome[R] {
	if len(items) == 0 {
		return nil
	}
	if concurrency <= 0 || concurrency > len(items) {
		concurrency = len(items)
	}

	sem := make(chan struct{}, concurrency)
	results := make([]Outcome[R], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			v, err := fn(item)
			if err != nil {
				results[i] = Fail[R](err)
				return
			}
			results[i] = Ok(v)
		}(i, item)
	}
	wg.Wait()
	return results
}

// Each is Map for side-effecting work that produces no value. Successful
// items yield value-less outcomes.
func Each[T any](items []T, concurrency int, fn func(T) error) []Outcome[struct{}] {
	if len(items) == 0 {
		return nil
	}
	if concurrency <= 0 || concurrency > len(items) {
		concurrency = len(items)
	}

	sem := make(chan struct{}, concurrency)
	results := make([]Outcome[struct{}], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if err := fn(item); err != nil {
				results[i] = Fail[struct{}](err)
				return
			}
			results[i] = Done[struct{}]()
		}(i, item)
	}
	wg.Wait()
	return results
}
