package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/dpsim/internal/pendulum"
)

// RenormEvery is how many steps pass between renormalisations of the
// perturbed trajectory.
const RenormEvery = 10

// Lyapunov estimates the largest Lyapunov exponent (1/s) of the motion
// starting at s, over the given number of steps.
//
// A companion trajectory starts d0 away in theta2. Every RenormEvery
// steps the separation in (theta1, theta2, omega1, omega2) is measured,
// its log growth accumulated, and the companion pulled back to distance
// d0 along the same direction. s itself is not modified.
func Lyapunov(s *pendulum.State, integ *pendulum.Integrator, steps int, d0 float64) (float64, error) {
	if steps < RenormEvery {
		return 0, fmt.Errorf("need at least %d steps, got %d", RenormEvery, steps)
	}
	if !(d0 > 0) {
		return 0, fmt.Errorf("perturbation must be positive, got %g", d0)
	}

	ref := s.Clone()
	p := ref.Params()
	pert, err := pendulum.NewFromParams(p, pendulum.Conditions{
		Theta1: ref.Theta1(),
		Theta2: ref.Theta2() + d0,
		Omega1: ref.Omega1(),
		Omega2: ref.Omega2(),
	})
	if err != nil {
		return 0, err
	}

	sumLog, elapsed := 0.0, 0.0
	for done := 0; done+RenormEvery <= steps; done += RenormEvery {
		if err := integ.Advance(ref, RenormEvery); err != nil {
			return 0, err
		}
		if err := integ.Advance(pert, RenormEvery); err != nil {
			return 0, err
		}
		elapsed += float64(RenormEvery) * integ.Dt

		d := [4]float64{
			pert.Theta1() - ref.Theta1(),
			pert.Theta2() - ref.Theta2(),
			pert.Omega1() - ref.Omega1(),
			pert.Omega2() - ref.Omega2(),
		}
		sep := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2] + d[3]*d[3])
		if !(sep > 0) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)

		k := d0 / sep
		pert, err = pendulum.NewFromParams(p, pendulum.Conditions{
			Theta1: ref.Theta1() + d[0]*k,
			Theta2: ref.Theta2() + d[1]*k,
			Omega1: ref.Omega1() + d[2]*k,
			Omega2: ref.Omega2() + d[3]*k,
		})
		if err != nil {
			return 0, err
		}
	}
	return sumLog / elapsed, nil
}
