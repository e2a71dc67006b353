// Package pendulum implements the physics core of the double pendulum.
//
// A [State] holds the arm lengths, bob masses and the current kinematic
// configuration. An [Integrator] advances a State by one fixed time step
// using explicit Euler integration of the Euler-Lagrange equations:
//
//	s, err := pendulum.New(1, 1, 1, 1, math.Pi/2, math.Pi/2, 0, 0)
//	integ := pendulum.NewIntegrator()
//	for i := 0; i < 1000; i++ {
//	    if err := integ.Step(s); err != nil {
//	        break
//	    }
//	    bobs := pendulum.Positions(s, pendulum.DefaultScale)
//	}
//
// # Angles
//
// Angles are measured from the downward vertical, counter-clockwise
// positive, and are never wrapped. A State at t1 = t2 = 0 with zero
// velocity is the stable equilibrium.
//
// # Concurrency
//
// A State has exactly one owner. Neither State nor Integrator does any
// locking; run independent simulations on independent States.
package pendulum
