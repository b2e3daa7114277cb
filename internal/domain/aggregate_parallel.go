package domain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps small inputs on the single-pass path
const minChunk = 4096

// AggregateParallel splits records into one chunk per worker, accumulates
// each chunk concurrently and merges the partial results. The output is
// identical to AggregateRecords.
func AggregateParallel(ctx context.Context, records []CanonicalRecord, workers int) (map[PairKey]Aggregate, error) {
	if workers <= 1 || len(records) < minChunk {
		return AggregateRecords(records)
	}

	chunk := (len(records) + workers - 1) / workers
	partials := make([]*Accumulator, 0, workers)
	g, ctx := errgroup.WithContext(ctx)

	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		acc := NewAccumulator()
		partials = append(partials, acc)
		part := records[start:end]

		g.Go(func() error {
			for i, rec := range part {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := acc.AddCanonical(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := partials[0]
	for _, p := range partials[1:] {
		total.Merge(p)
	}
	return total.Result(), nil
}
