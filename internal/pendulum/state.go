package pendulum

import "math"

// Params are the physical constants of the two arms.
type Params struct {
	L1 float64 `json:"l1"` // arm lengths (m)
	L2 float64 `json:"l2"`
	M1 float64 `json:"m1"` // bob masses (kg)
	M2 float64 `json:"m2"`
}

// Conditions are initial angles (rad) and angular velocities (rad/s).
type Conditions struct {
	Theta1, Theta2 float64
	Omega1, Omega2 float64
}

// State is the full instantaneous configuration of the double pendulum.
// Constants are fixed at construction; the kinematic fields are written
// only by an Integrator.
type State struct {
	l1, l2 float64
	m1, m2 float64

	t1, t2 float64
	w1, w2 float64
	a1, a2 float64

	time  float64
	steps int
}

// Snapshot is a value copy of a State, safe to hand to other goroutines.
type Snapshot struct {
	Params
	Theta1, Theta2 float64
	Omega1, Omega2 float64
	Accel1, Accel2 float64
	Time           float64
	Steps          int
}

// New builds a State from lengths, masses and initial conditions already
// in radians. Lengths and masses must be positive.
func New(l1, l2, m1, m2, t1, t2, w1, w2 float64) (*State, error) {
	return NewFromParams(
		Params{L1: l1, L2: l2, M1: m1, M2: m2},
		Conditions{Theta1: t1, Theta2: t2, Omega1: w1, Omega2: w2},
	)
}

func NewFromParams(p Params, c Conditions) (*State, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &State{
		l1: p.L1, l2: p.L2,
		m1: p.M1, m2: p.M2,
		t1: c.Theta1, t2: c.Theta2,
		w1: c.Omega1, w2: c.Omega2,
	}, nil
}

// Validate reports the first non-positive or non-finite constant.
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"l1", p.L1},
		{"l2", p.L2},
		{"m1", p.M1},
		{"m2", p.M2},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return &ParameterError{Name: c.name, Value: c.value}
		}
	}
	return nil
}

func (c Conditions) validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"t1", c.Theta1},
		{"t2", c.Theta2},
		{"w1", c.Omega1},
		{"w2", c.Omega2},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ParameterError{Name: c.name, Value: c.value}
		}
	}
	return nil
}

func (s *State) L1() float64 { return s.l1 }
func (s *State) L2() float64 { return s.l2 }
func (s *State) M1() float64 { return s.m1 }
func (s *State) M2() float64 { return s.m2 }

func (s *State) Theta1() float64 { return s.t1 }
func (s *State) Theta2() float64 { return s.t2 }
func (s *State) Omega1() float64 { return s.w1 }
func (s *State) Omega2() float64 { return s.w2 }
func (s *State) Accel1() float64 { return s.a1 }
func (s *State) Accel2() float64 { return s.a2 }

// Time is the elapsed simulation time in seconds.
func (s *State) Time() float64 { return s.time }

// Steps is the number of successful integration steps taken.
func (s *State) Steps() int { return s.steps }

func (s *State) Params() Params {
	return Params{L1: s.l1, L2: s.l2, M1: s.m1, M2: s.m2}
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Params: s.Params(),
		Theta1: s.t1, Theta2: s.t2,
		Omega1: s.w1, Omega2: s.w2,
		Accel1: s.a1, Accel2: s.a2,
		Time:  s.time,
		Steps: s.steps,
	}
}

// Clone returns an independent copy with the same history counters.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// IsFinite reports whether every kinematic field is a finite number.
func (s *State) IsFinite() bool {
	for _, v := range [...]float64{s.t1, s.t2, s.w1, s.w2, s.a1, s.a2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
