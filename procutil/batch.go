// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one query in a QueryMany call.
type Result struct {
	PID  int
	Info *ProcessInfo
	Err  error
}

// QueryMany queries every pid with at most concurrency queries in flight
// (unbounded when concurrency <= 0). Results are returned in the order of
// pids. Cancelling ctx stops new queries from starting; those pids get
// ctx.Err(). Queries already running finish normally.
func QueryMany(ctx context.Context, pids []int, maxPathCapacity, concurrency int) []Result {
	return defaultQuerier.QueryMany(ctx, pids, maxPathCapacity, concurrency)
}

// QueryMany implements the package-level QueryMany against q's back end.
func (q *Querier) QueryMany(ctx context.Context, pids []int, maxPathCapacity, concurrency int) []Result {
	results := make([]Result, len(pids))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, pid := range pids {
		results[i].PID = pid
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			// Go may have blocked on the limit while ctx was cancelled.
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			info, err := q.Query(pid, maxPathCapacity)
			results[i].Info = info
			results[i].Err = err
			return nil
		})
	}

	_ = g.Wait()
	return results
}
