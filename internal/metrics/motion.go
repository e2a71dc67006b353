package metrics

import (
	"math"

	"github.com/san-kum/dpsim/internal/pendulum"
	"github.com/san-kum/dpsim/internal/sim"
)

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s pendulum.Snapshot) {
	m.max = math.Max(m.max, math.Max(math.Abs(s.Omega1), math.Abs(s.Omega2)))
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// Flips counts how often the lower arm passes over the top, i.e. how
// often theta2 crosses an odd multiple of pi.
type Flips struct {
	name   string
	count  int
	last   float64
	primed bool
}

func NewFlips() *Flips {
	return &Flips{name: "flips"}
}

func (f *Flips) Name() string { return f.name }

func (f *Flips) Observe(s pendulum.Snapshot) {
	turn := revolution(s.Theta2)
	if f.primed && turn != f.last {
		f.count += int(math.Abs(turn - f.last))
	}
	f.last = turn
	f.primed = true
}

func (f *Flips) Value() float64 { return float64(f.count) }

func (f *Flips) Reset() {
	f.count = 0
	f.last = 0
	f.primed = false
}

func revolution(theta float64) float64 {
	return math.Floor((theta + math.Pi) / (2 * math.Pi))
}

// Default returns the metrics reported by the CLI.
func Default(gravity float64) []sim.Metric {
	return []sim.Metric{
		NewEnergy(gravity),
		NewEnergyDrift(gravity),
		NewMaxSpeed(),
		NewFlips(),
	}
}
