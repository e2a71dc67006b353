package render

import (
	"math"

	"github.com/san-kum/dpsim/internal/pendulum"
)

const (
	DefaultWidth    = 60
	DefaultHeight   = 24
	DefaultTrailLen = 200
	bobRadius       = 1
)

// Scene draws the pendulum onto a canvas. The pivot sits in the centre
// and the full reach l1+l2 fits inside the shorter canvas side.
type Scene struct {
	canvas   *Canvas
	trail    []pendulum.Point
	trailLen int
}

func NewScene(width, height int) *Scene {
	return &Scene{
		canvas:   NewCanvas(width, height),
		trail:    make([]pendulum.Point, 0, DefaultTrailLen),
		trailLen: DefaultTrailLen,
	}
}

func (s *Scene) Canvas() *Canvas { return s.canvas }

// ResetTrail forgets the lower bob's path.
func (s *Scene) ResetTrail() { s.trail = s.trail[:0] }

// Draw clears the canvas and draws snap. The lower bob is appended to the
// trail before drawing.
func (s *Scene) Draw(snap pendulum.Snapshot) {
	bobs := pendulum.SnapshotPositions(snap, 1)
	s.trail = append(s.trail, bobs.Lower)
	if len(s.trail) > s.trailLen {
		s.trail = s.trail[len(s.trail)-s.trailLen:]
	}

	c := s.canvas
	c.Clear()
	ppm, cx, cy := s.project(snap.L1 + snap.L2)
	at := func(p pendulum.Point) (int, int) {
		return cx + int(math.Round(p.X*ppm)), cy - int(math.Round(p.Y*ppm))
	}

	for _, p := range s.trail {
		x, y := at(p)
		c.Mark(x, y, InkTrail)
	}

	ux, uy := at(bobs.Upper)
	lx, ly := at(bobs.Lower)
	c.DrawLine(cx, cy, ux, uy, InkArm)
	c.DrawLine(ux, uy, lx, ly, InkArm)
	c.Disc(ux, uy, bobRadius, InkUpper)
	c.Disc(lx, ly, bobRadius, InkLower)
}

// OnStep redraws the scene for each step the runner takes.
func (s *Scene) OnStep(snap pendulum.Snapshot) { s.Draw(snap) }

// PivotPixel returns the sub-pixel position of the pivot.
func (s *Scene) PivotPixel() (int, int) {
	_, cx, cy := s.project(1)
	return cx, cy
}

// project returns sub-pixels per metre and the pivot position for a
// pendulum of the given reach.
func (s *Scene) project(reach float64) (ppm float64, cx, cy int) {
	cw, ch := s.canvas.Width*2, s.canvas.Height*4
	cx, cy = cw/2, ch/2
	half := math.Min(float64(cx), float64(cy)) - bobRadius - 1
	if half < 1 {
		half = 1
	}
	return half / reach, cx, cy
}
