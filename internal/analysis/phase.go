package analysis

import (
	"math"

	"github.com/san-kum/dpsim/internal/pendulum"
	"github.com/san-kum/dpsim/internal/sim"
)

// Arm selects the upper (1) or lower (2) arm.
type Arm int

const (
	Upper Arm = 1
	Lower Arm = 2
)

// Phase returns (theta, omega) for the chosen arm at every frame, with
// theta wrapped to (-pi, pi].
func Phase(frames []sim.Frame, arm Arm) []pendulum.Point {
	pts := make([]pendulum.Point, len(frames))
	for i, f := range frames {
		theta, omega := f.Theta1, f.Omega1
		if arm == Lower {
			theta, omega = f.Theta2, f.Omega2
		}
		pts[i] = pendulum.Point{X: Wrap(theta), Y: omega}
	}
	return pts
}

// Poincare records (theta2, omega2) each time the upper arm swings up
// through the downward vertical, interpolating linearly between frames.
func Poincare(frames []sim.Frame) []pendulum.Point {
	pts := make([]pendulum.Point, 0)
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		a, b := Wrap(prev.Theta1), Wrap(cur.Theta1)
		if !(a < 0 && b >= 0) || b-a > math.Pi {
			continue
		}
		frac := -a / (b - a)
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		pts = append(pts, pendulum.Point{
			X: Wrap(prev.Theta2 + frac*(cur.Theta2-prev.Theta2)),
			Y: prev.Omega2 + frac*(cur.Omega2-prev.Omega2),
		})
	}
	return pts
}

// Wrap maps an angle to (-pi, pi].
func Wrap(theta float64) float64 {
	if theta > -math.Pi && theta <= math.Pi {
		return theta
	}
	w := math.Mod(theta+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}
