package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"cdrlink/internal/domain"
	"cdrlink/internal/filter"
	"cdrlink/internal/layout"
)

// Job is a background filter run. Seq grows with every submission; only the
// result of the latest job is ever applied.
type Job struct {
	Seq  uint64
	done chan Result
}

// Done delivers the result exactly once
func (j *Job) Done() <-chan Result { return j.done }

// Wait blocks for the result or until ctx ends
func (j *Job) Wait(ctx context.Context) (Result, error) {
	select {
	case r := <-j.done:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Result carries a finished view and the positions computed for it
type Result struct {
	Seq    uint64
	View   *filter.FilteredGraph
	Layout layout.Result
	Err    error
}

// SubmitFilter records spec as the requested filter and starts a job over a
// copy of the graph and registry taken now. Later mutations do not affect it.
func (w *Workspace) SubmitFilter(ctx context.Context, spec filter.Spec) *Job {
	w.mu.Lock()
	w.spec = spec
	g := w.graph.Clone()
	owners := w.registry.Owners()
	seq := w.latest.Add(1)
	w.mu.Unlock()

	job := &Job{Seq: seq, done: make(chan Result, 1)}
	go func() {
		res := Result{Seq: seq}
		defer func() { job.done <- res }()

		if err := ctx.Err(); err != nil {
			res.Err = err
			return
		}
		fg, err := filter.ApplyContext(ctx, g, owners, spec, w.opts.Workers)
		if err != nil {
			res.Err = err
			return
		}
		res.View = fg
		if plan := w.layout.Prepare(fg.NodeIDs(), fg.Pairs(), false); plan.Needed() {
			res.Layout = plan.Compute()
		}
	}()
	return job
}

// ApplyResult swaps in the job's view and positions. Results of superseded
// jobs are dropped with a *StaleResultError and change nothing.
func (w *Workspace) ApplyResult(r Result) error {
	w.applyMu.Lock()
	defer w.applyMu.Unlock()

	if latest := w.latest.Load(); r.Seq != latest {
		w.log.Debug("discarding stale filter result", zap.Uint64("seq", r.Seq), zap.Uint64("latest", latest))
		return &domain.StaleResultError{Seq: r.Seq, Latest: latest}
	}
	if r.Err != nil {
		return r.Err
	}
	w.current.Store(r.View)
	w.layout.Apply(r.Layout)
	return nil
}

// SetFilter validates and applies a new filter, waiting for the result
func (w *Workspace) SetFilter(ctx context.Context, spec filter.Spec) (*filter.FilteredGraph, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return w.run(ctx, spec)
}

// Refresh re-applies the current filter after a mutation
func (w *Workspace) Refresh(ctx context.Context) (*filter.FilteredGraph, error) {
	return w.run(ctx, w.Spec())
}

func (w *Workspace) run(ctx context.Context, spec filter.Spec) (*filter.FilteredGraph, error) {
	job := w.SubmitFilter(ctx, spec)
	r, err := job.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.ApplyResult(r); err != nil {
		if errors.Is(err, domain.ErrStaleResult) {
			// a newer job owns the view now
			return w.Current(), nil
		}
		return nil, err
	}
	return r.View, nil
}
