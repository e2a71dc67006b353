package pendulum

import "math"

// KineticEnergy of both bobs, in joules.
func KineticEnergy(s *State) float64 {
	return kinetic(s.Params(), s.t1, s.t2, s.w1, s.w2)
}

// PotentialEnergy with the pivot as the zero level and y pointing up.
func PotentialEnergy(s *State, gravity float64) float64 {
	return potential(s.Params(), gravity, s.t1, s.t2)
}

// Energy is the total mechanical energy of s.
func Energy(s *State, gravity float64) float64 {
	return KineticEnergy(s) + PotentialEnergy(s, gravity)
}

// SnapshotEnergy computes the total energy of a recorded snapshot.
func SnapshotEnergy(snap Snapshot, gravity float64) float64 {
	return kinetic(snap.Params, snap.Theta1, snap.Theta2, snap.Omega1, snap.Omega2) +
		potential(snap.Params, gravity, snap.Theta1, snap.Theta2)
}

func kinetic(p Params, t1, t2, w1, w2 float64) float64 {
	// v1² = l1²w1², v2² = v1² + l2²w2² + 2 l1 l2 w1 w2 cos(t1-t2)
	return 0.5*(p.M1+p.M2)*p.L1*p.L1*w1*w1 +
		0.5*p.M2*p.L2*p.L2*w2*w2 +
		p.M2*p.L1*p.L2*w1*w2*math.Cos(t1-t2)
}

func potential(p Params, g, t1, t2 float64) float64 {
	return -(p.M1+p.M2)*g*p.L1*math.Cos(t1) - p.M2*g*p.L2*math.Cos(t2)
}
