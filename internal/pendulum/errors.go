package pendulum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a non-positive length or mass, a
	// non-finite initial condition, or an unusable integrator setting.
	ErrInvalidParameter = errors.New("pendulum: invalid parameter")

	// ErrSingularConfiguration indicates the mass matrix of the equations
	// of motion could not be inverted.
	ErrSingularConfiguration = errors.New("pendulum: singular configuration")
)

// ParameterError names the offending parameter.
type ParameterError struct {
	Name  string
	Value float64
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s = %g", ErrInvalidParameter, e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// SingularError records the determinant and angles at which the
// acceleration solve failed.
type SingularError struct {
	Det    float64
	Theta1 float64
	Theta2 float64
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("%v: det=%g at t1=%.6f t2=%.6f", ErrSingularConfiguration, e.Det, e.Theta1, e.Theta2)
}

func (e *SingularError) Unwrap() error {
	return ErrSingularConfiguration
}
