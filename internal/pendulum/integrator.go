package pendulum

import (
	"fmt"
	"math"
)

const (
	DefaultGravity = 9.8
	DefaultDt      = 0.01

	// SingularTolerance bounds |det| relative to the product of the
	// diagonal of the mass matrix. With positive lengths and masses the
	// ratio never drops below m1/(m1+m2).
	SingularTolerance = 1e-12
)

// Scheme selects the order in which angles and velocities are advanced.
type Scheme int

const (
	// SchemeExplicit advances angles with the previous velocities, then
	// velocities with the new accelerations.
	SchemeExplicit Scheme = iota
	// SchemeSemiImplicit advances velocities first and moves the angles
	// with the updated velocities.
	SchemeSemiImplicit
)

func (s Scheme) String() string {
	switch s {
	case SchemeExplicit:
		return "explicit"
	case SchemeSemiImplicit:
		return "semi-implicit"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseScheme accepts the names produced by Scheme.String.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "", "explicit", "euler":
		return SchemeExplicit, nil
	case "semi-implicit", "symplectic-euler":
		return SchemeSemiImplicit, nil
	default:
		return 0, fmt.Errorf("%w: unknown scheme %q", ErrInvalidParameter, name)
	}
}

// Integrator advances a State by one fixed step. It holds no kinematic
// state of its own.
type Integrator struct {
	Gravity float64
	Dt      float64
	Scheme  Scheme
}

func NewIntegrator() *Integrator {
	return &Integrator{
		Gravity: DefaultGravity,
		Dt:      DefaultDt,
		Scheme:  SchemeExplicit,
	}
}

// NewIntegratorWith returns an integrator with explicit constants.
func NewIntegratorWith(gravity, dt float64, scheme Scheme) (*Integrator, error) {
	in := &Integrator{Gravity: gravity, Dt: dt, Scheme: scheme}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *Integrator) Validate() error {
	if !(in.Dt > 0) || math.IsInf(in.Dt, 0) {
		return &ParameterError{Name: "dt", Value: in.Dt}
	}
	if !(in.Gravity >= 0) || math.IsInf(in.Gravity, 0) {
		return &ParameterError{Name: "gravity", Value: in.Gravity}
	}
	if in.Scheme != SchemeExplicit && in.Scheme != SchemeSemiImplicit {
		return fmt.Errorf("%w: unknown scheme %d", ErrInvalidParameter, int(in.Scheme))
	}
	return nil
}

// ComputeAccelerations solves the coupled Euler-Lagrange equations
// M·[a1 a2]ᵀ = b for the current configuration of s. It does not modify s.
func (in *Integrator) ComputeAccelerations(s *State) (a1, a2 float64, err error) {
	l1, l2, m1, m2, g := s.l1, s.l2, s.m1, s.m2, in.Gravity

	delta := s.t1 - s.t2
	sinD, cosD := math.Sin(delta), math.Cos(delta)
	coupling := m2 * l1 * l2

	m00 := (m1 + m2) * l1 * l1
	m01 := coupling * cosD
	m10 := m01
	m11 := m2 * l2 * l2

	b0 := -(m1+m2)*g*l1*math.Sin(s.t1) - coupling*s.w2*s.w2*sinD
	b1 := coupling*s.w1*s.w1*sinD - m2*g*l2*math.Sin(s.t2)

	det := m00*m11 - m01*m10
	if math.IsNaN(det) || math.IsInf(det, 0) || math.Abs(det) <= SingularTolerance*math.Abs(m00*m11) {
		return 0, 0, &SingularError{Det: det, Theta1: s.t1, Theta2: s.t2}
	}

	a1 = (m11*b0 - m01*b1) / det
	a2 = (m00*b1 - m10*b0) / det
	return a1, a2, nil
}

// Step advances s by one time step. Every delta is computed before any
// field is written, so on error s is left untouched.
func (in *Integrator) Step(s *State) error {
	a1, a2, err := in.ComputeAccelerations(s)
	if err != nil {
		return err
	}

	dt := in.Dt
	dw1, dw2 := a1*dt, a2*dt

	var dt1, dt2 float64
	switch in.Scheme {
	case SchemeSemiImplicit:
		dt1 = (s.w1 + dw1) * dt
		dt2 = (s.w2 + dw2) * dt
	default:
		dt1 = s.w1 * dt
		dt2 = s.w2 * dt
	}

	s.a1, s.a2 = a1, a2
	s.t1 += dt1
	s.t2 += dt2
	s.w1 += dw1
	s.w2 += dw2
	s.time += dt
	s.steps++
	return nil
}

// Advance calls Step n times and stops at the first error.
func (in *Integrator) Advance(s *State, n int) error {
	for i := 0; i < n; i++ {
		if err := in.Step(s); err != nil {
			return fmt.Errorf("step %d: %w", s.steps, err)
		}
	}
	return nil
}
