// Package settle runs independent tasks concurrently and waits for every one
// of them to finish, collecting each outcome instead of stopping at the first
// error.
package settle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one task.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// All runs fn for every input concurrently, at most limit at a time when
// limit > 0, and returns one Result per input in input order. A panicking
// task is reported as an error for its index only.
func All[In, Out any](ctx context.Context, inputs []In, limit int, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(inputs))

	// tasks never return an error to the group, so ctx is never cancelled
	// on behalf of a sibling
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, in := range inputs {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result[Out]{Err: fmt.Errorf("task %d panicked: %v", i, r)}
				}
			}()
			v, err := fn(ctx, in)
			results[i] = Result[Out]{Value: v, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
