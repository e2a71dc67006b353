package pendulum

import "math"

// DefaultScale is the display scale in pixels per metre.
const DefaultScale = 100.0

// Point is a position in the plane, pivot at the origin, y up.
type Point struct {
	X, Y float64
}

// Bobs holds the positions of the two bobs.
type Bobs struct {
	Upper Point
	Lower Point
}

// Positions returns the Cartesian bob positions of s multiplied by scale.
func Positions(s *State, scale float64) Bobs {
	return bobPositions(s.l1, s.l2, s.t1, s.t2, scale)
}

// SnapshotPositions is Positions for a recorded snapshot.
func SnapshotPositions(snap Snapshot, scale float64) Bobs {
	return bobPositions(snap.L1, snap.L2, snap.Theta1, snap.Theta2, scale)
}

func bobPositions(l1, l2, t1, t2, scale float64) Bobs {
	x1 := l1 * math.Sin(t1) * scale
	y1 := -l1 * math.Cos(t1) * scale
	x2 := x1 + l2*math.Sin(t2)*scale
	y2 := y1 - l2*math.Cos(t2)*scale
	return Bobs{
		Upper: Point{X: x1, Y: y1},
		Lower: Point{X: x2, Y: y2},
	}
}
