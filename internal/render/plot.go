package render

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dpsim/internal/sim"
)

const (
	PlotWidth  = 80
	PlotHeight = 10
)

// PlotAngles charts theta1 (red) and theta2 (blue) in radians.
func PlotAngles(frames []sim.Frame, width, height int) string {
	if len(frames) < 2 {
		return ""
	}
	t1 := make([]float64, len(frames))
	t2 := make([]float64, len(frames))
	for i, f := range frames {
		t1[i] = f.Theta1
		t2[i] = f.Theta2
	}
	return asciigraph.PlotMany([][]float64{t1, t2},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("theta1 (red), theta2 (blue) [rad]"))
}

func PlotEnergy(frames []sim.Frame, width, height int) string {
	if len(frames) < 2 {
		return ""
	}
	e := make([]float64, len(frames))
	for i, f := range frames {
		e[i] = f.Energy
	}
	return asciigraph.Plot(e,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("Total energy [J]"))
}
