package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/dpsim/internal/pendulum"
)

// PlotPoints scatters pts on a braille canvas of width x height cells,
// with 10% padding around their bounds and axes where zero is in view.
func PlotPoints(pts []pendulum.Point, width, height int, caption string) string {
	if len(pts) == 0 {
		return ""
	}

	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	c := NewCanvas(width, height)
	cw, ch := width*2, height*4
	col := func(x float64) int { return int((x - minX) / rangeX * float64(cw-1)) }
	row := func(y float64) int { return ch - 1 - int((y-minY)/rangeY*float64(ch-1)) }

	if minX <= 0 && maxX >= 0 {
		x := col(0)
		c.DrawLine(x, 0, x, ch-1, InkTrail)
	}
	if minY <= 0 && maxY >= 0 {
		y := row(0)
		c.DrawLine(0, y, cw-1, y, InkTrail)
	}
	for _, p := range pts {
		c.Mark(col(p.X), row(p.Y), InkLower)
	}

	var sb strings.Builder
	sb.WriteString(c.String())
	fmt.Fprintf(&sb, "%s  x: [%.2f, %.2f]  y: [%.2f, %.2f]\n", caption, minX, maxX, minY, maxY)
	return sb.String()
}
