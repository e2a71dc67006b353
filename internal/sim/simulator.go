package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/rs/xid"

	"github.com/san-kum/dpsim/internal/pendulum"
)

// Runner is the driving loop. It is the single writer of its State.
type Runner struct {
	id         string
	state      *pendulum.State
	integrator *pendulum.Integrator
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
	validate   bool
	energy0    float64
}

func New(state *pendulum.State, integrator *pendulum.Integrator) *Runner {
	return &Runner{
		id:         xid.New().String(),
		state:      state,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     slog.Default(),
		validate:   true,
		energy0:    pendulum.Energy(state, integrator.Gravity),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// ID identifies this run in logs and summaries.
func (r *Runner) ID() string { return r.id }

// Snapshot returns a copy of the current state.
func (r *Runner) Snapshot() pendulum.Snapshot { return r.state.Snapshot() }

func (r *Runner) Gravity() float64 { return r.integrator.Gravity }

// Step advances the state by one frame and notifies metrics and
// observers. On error the state is unchanged.
func (r *Runner) Step() (pendulum.Snapshot, error) {
	if r.validate {
		next := r.state.Clone()
		if err := r.integrator.Step(next); err != nil {
			return r.state.Snapshot(), r.halt(err)
		}
		if !next.IsFinite() {
			return r.state.Snapshot(), r.halt(ErrDiverged)
		}
		*r.state = *next
	} else if err := r.integrator.Step(r.state); err != nil {
		return r.state.Snapshot(), r.halt(err)
	}

	snap := r.state.Snapshot()
	for _, m := range r.metrics {
		m.Observe(snap)
	}
	for _, o := range r.observers {
		o.OnStep(snap)
	}
	r.logger.Debug("step", "run", r.id, "frame", snap.Steps, "t", snap.Time,
		"theta1", snap.Theta1, "theta2", snap.Theta2)
	return snap, nil
}

func (r *Runner) halt(err error) error {
	snap := r.state.Snapshot()
	r.logger.Warn("simulation halted", "run", r.id, "frame", snap.Steps+1, "t", snap.Time, "err", err)
	return &SimulationError{
		Frame:   snap.Steps + 1,
		Time:    snap.Time,
		State:   snap,
		Wrapped: err,
	}
}

// Run advances cfg.Frames frames and records each one. When a step fails
// or ctx is canceled, the frames recorded so far are returned with the
// error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	r.validate = cfg.ValidateState

	result := &Result{
		ID:      r.id,
		Frames:  make([]Frame, 0, cfg.Frames+1),
		Metrics: make(map[string]float64),
	}
	g := r.integrator.Gravity
	start := r.state.Snapshot()
	r.resetMetrics(start)
	result.Frames = append(result.Frames, toFrame(start, g))
	r.energy0 = pendulum.SnapshotEnergy(start, g)

	r.logger.Info("simulation started", "run", r.id, "frames", cfg.Frames,
		"dt", r.integrator.Dt, "scheme", r.integrator.Scheme.String())

	var runErr error
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		snap, err := r.Step()
		if err != nil {
			runErr = err
			break
		}
		result.Frames = append(result.Frames, toFrame(snap, g))
		result.StepsTaken++
	}

	r.finish(result)
	if runErr != nil {
		return result, runErr
	}
	r.logger.Info("simulation finished", "run", r.id, "steps", result.StepsTaken,
		"energy_drift", result.EnergyDrift)
	return result, nil
}

// RunWithCallback streams snapshots to fn instead of recording them.
// Returning false from fn stops the run without error.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, fn func(pendulum.Snapshot) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	r.validate = cfg.ValidateState

	start := r.state.Snapshot()
	r.resetMetrics(start)
	r.energy0 = pendulum.SnapshotEnergy(start, r.integrator.Gravity)
	if !fn(start) {
		return nil
	}
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		snap, err := r.Step()
		if err != nil {
			return err
		}
		if !fn(snap) {
			return nil
		}
	}
	return nil
}

// resetMetrics clears every metric and shows it the starting state, so
// metrics that compare against the first frame see the true start.
func (r *Runner) resetMetrics(start pendulum.Snapshot) {
	for _, m := range r.metrics {
		m.Reset()
		m.Observe(start)
	}
}

// EnergyDrift is the relative change in total energy since the run began.
func (r *Runner) EnergyDrift() float64 {
	e := pendulum.Energy(r.state, r.integrator.Gravity)
	return relativeDrift(r.energy0, e)
}

func (r *Runner) finish(result *Result) {
	result.EnergyDrift = r.EnergyDrift()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	return nil
}

func toFrame(s pendulum.Snapshot, g float64) Frame {
	return Frame{
		Time:   s.Time,
		Theta1: s.Theta1, Theta2: s.Theta2,
		Omega1: s.Omega1, Omega2: s.Omega2,
		Accel1: s.Accel1, Accel2: s.Accel2,
		Energy: pendulum.SnapshotEnergy(s, g),
	}
}

func relativeDrift(e0, e float64) float64 {
	if e0 == 0 {
		return math.Abs(e - e0)
	}
	return math.Abs(e-e0) / math.Abs(e0)
}
