package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/dpsim/internal/pendulum"
	"github.com/san-kum/dpsim/internal/sim"
)

// TraceSVG draws the path of the lower bob over frames, with the arms and
// bobs of the last frame on top. The view is centred on the pivot and
// sized to the full reach l1+l2.
func TraceSVG(frames []sim.Frame, l1, l2 float64, width, height int) string {
	if len(frames) == 0 {
		return ""
	}

	reach := (l1 + l2) * 1.1
	if !(reach > 0) {
		reach = 1
	}
	px := func(p pendulum.Point) (float64, float64) {
		x := (p.X + reach) / (2 * reach) * float64(width)
		y := (reach - p.Y) / (2 * reach) * float64(height)
		return x, y
	}
	bobsAt := func(f sim.Frame) pendulum.Bobs {
		return pendulum.SnapshotPositions(pendulum.Snapshot{
			Params: pendulum.Params{L1: l1, L2: l2},
			Theta1: f.Theta1,
			Theta2: f.Theta2,
		}, 1)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if len(frames) > 1 {
		sb.WriteString(`<path fill="none" stroke="#3366ff" stroke-opacity="0.6" stroke-width="1" d="M`)
		for i, f := range frames {
			x, y := px(bobsAt(f).Lower)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	last := bobsAt(frames[len(frames)-1])
	ox, oy := px(pendulum.Point{})
	ux, uy := px(last.Upper)
	lx, ly := px(last.Lower)
	fmt.Fprintf(&sb, `<polyline fill="none" stroke="#dddddd" stroke-width="2" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>
<circle cx="%.1f" cy="%.1f" r="6" fill="#ff3333"/>
<circle cx="%.1f" cy="%.1f" r="6" fill="#3366ff"/>
</svg>`, ox, oy, ux, uy, lx, ly, ux, uy, lx, ly)

	return sb.String()
}
