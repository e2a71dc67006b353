package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/dpsim/internal/pendulum"
)

var (
	// ErrDiverged indicates a step produced NaN or Inf.
	ErrDiverged = errors.New("sim: state diverged (NaN or Inf)")

	ErrInvalidConfig = errors.New("sim: invalid config")
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(s pendulum.Snapshot)
	Value() float64
	Reset()
}

// Observer is notified after every successful step. The live view's
// scene and energy trace implement it.
//
//go:generate mockgen -destination=mock_observer_test.go -package=sim github.com/san-kum/dpsim/internal/sim Observer
type Observer interface {
	OnStep(s pendulum.Snapshot)
}

type Config struct {
	Frames        int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Frames:        1000,
		ValidateState: true,
	}
}

// Frame is one recorded point of a trajectory.
type Frame struct {
	Time   float64 `json:"time"`
	Theta1 float64 `json:"theta1"`
	Theta2 float64 `json:"theta2"`
	Omega1 float64 `json:"omega1"`
	Omega2 float64 `json:"omega2"`
	Accel1 float64 `json:"accel1"`
	Accel2 float64 `json:"accel2"`
	Energy float64 `json:"energy"`
}

type Result struct {
	ID          string
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last recorded frame.
func (r *Result) Final() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// SimulationError wraps the error that halted a run with the frame it
// happened on. The snapshot is the last good state.
type SimulationError struct {
	Frame   int
	Time    float64
	State   pendulum.Snapshot
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
