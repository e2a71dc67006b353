package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/dpsim/internal/pendulum"
)

// Ensemble runs independent simulations from several initial states in
// parallel. Each member gets its own Runner and State; the integrator is
// shared read-only.
type Ensemble struct {
	states     []*pendulum.State
	integrator *pendulum.Integrator
	metrics    func() []Metric
	logger     *slog.Logger
	workers    int
}

func NewEnsemble(states []*pendulum.State, integrator *pendulum.Integrator) *Ensemble {
	return &Ensemble{
		states:     states,
		integrator: integrator,
		logger:     slog.Default(),
		workers:    runtime.GOMAXPROCS(0),
	}
}

// WithMetrics sets a factory called once per member.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) WithLogger(l *slog.Logger) *Ensemble {
	if l != nil {
		e.logger = l
	}
	return e
}

func (e *Ensemble) WithWorkers(n int) *Ensemble {
	if n > 0 {
		e.workers = n
	}
	return e
}

// Run returns one result per state, in input order. A member that halts
// keeps its partial result; all member errors are joined.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	results := make([]*Result, len(e.states))
	errs := make([]error, len(e.states))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, s := range e.states {
		i, s := i, s
		g.Go(func() error {
			r := New(s, e.integrator)
			r.SetLogger(e.logger.With("member", i))
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}
			res, err := r.Run(ctx, cfg)
			results[i] = res
			if err != nil {
				errs[i] = fmt.Errorf("member %d: %w", i, err)
			}
			// errors are kept per member in errs; the group only bounds concurrency
			return nil
		})
	}
	g.Wait()

	return results, errors.Join(errs...)
}

// Divergence returns, per member, the distance between its final lower
// bob position and that of member 0, in metres.
func Divergence(results []*Result, p pendulum.Params) []float64 {
	out := make([]float64, len(results))
	if len(results) == 0 || results[0] == nil {
		return out
	}
	ref := finalLower(results[0], p)
	for i, res := range results {
		if res == nil {
			continue
		}
		b := finalLower(res, p)
		dx, dy := b.X-ref.X, b.Y-ref.Y
		out[i] = math.Hypot(dx, dy)
	}
	return out
}

func finalLower(res *Result, p pendulum.Params) pendulum.Point {
	f := res.Final()
	snap := pendulum.Snapshot{Params: p, Theta1: f.Theta1, Theta2: f.Theta2}
	return pendulum.SnapshotPositions(snap, 1).Lower
}
