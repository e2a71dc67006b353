package render

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/pendulum"
	"github.com/san-kum/dpsim/internal/sim"
)

const energyHistory = 300

// EnergyTrace keeps the total energy of the most recent steps.
type EnergyTrace struct {
	gravity float64
	limit   int
	values  []float64
}

func NewEnergyTrace(gravity float64, limit int) *EnergyTrace {
	return &EnergyTrace{gravity: gravity, limit: limit, values: make([]float64, 0, limit)}
}

func (e *EnergyTrace) OnStep(snap pendulum.Snapshot) {
	e.values = append(e.values, pendulum.SnapshotEnergy(snap, e.gravity))
	if len(e.values) > e.limit {
		e.values = e.values[len(e.values)-e.limit:]
	}
}

// Values returns the recorded energies, oldest first.
func (e *EnergyTrace) Values() []float64 { return e.values }

func (e *EnergyTrace) Reset() { e.values = e.values[:0] }

type TickMsg time.Time

type LiveOptions struct {
	Title  string
	Frames int
	FPS    int
	Width  int
	Height int
	Logger *slog.Logger
}

// Live is the bubbletea model that animates one pendulum, one step per
// tick, until Frames steps have been taken or a step fails.
type Live struct {
	opts       LiveOptions
	initial    *pendulum.State
	integrator *pendulum.Integrator
	runner     *sim.Runner
	scene      *Scene
	energy     *EnergyTrace
	snap       pendulum.Snapshot
	running    bool
	done       bool
	err        error
}

func NewLive(state *pendulum.State, integ *pendulum.Integrator, opts LiveOptions) Live {
	if opts.Frames <= 0 {
		opts.Frames = config.DefaultFrames
	}
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Title == "" {
		opts.Title = "double pendulum"
	}

	m := Live{
		opts:       opts,
		initial:    state.Clone(),
		integrator: integ,
		scene:      NewScene(opts.Width, opts.Height),
		energy:     NewEnergyTrace(integ.Gravity, energyHistory),
		running:    true,
	}
	m.reset()
	return m
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Init() tea.Cmd {
	return m.tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			wasDone := m.done || m.err != nil
			m.reset()
			if wasDone {
				return m, m.tick()
			}
		}
	case TickMsg:
		if m.done || m.err != nil {
			return m, nil
		}
		if m.running {
			m.step()
		}
		if m.done || m.err != nil {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one frame. The scene and energy trace are registered
// observers of the runner and redraw themselves.
func (m *Live) step() {
	snap, err := m.runner.Step()
	if err != nil {
		m.err = err
		return
	}
	m.snap = snap
	if snap.Steps >= m.opts.Frames {
		m.done = true
	}
}

func (m *Live) reset() {
	m.runner = sim.New(m.initial.Clone(), m.integrator)
	m.runner.SetLogger(m.opts.Logger)
	m.runner.AddObserver(m.scene)
	m.runner.AddObserver(m.energy)
	m.scene.ResetTrail()
	m.energy.Reset()
	m.done = false
	m.err = nil

	m.snap = m.runner.Snapshot()
	m.scene.OnStep(m.snap)
	m.energy.OnStep(m.snap)
}

// Snapshot returns the state currently on screen.
func (m Live) Snapshot() pendulum.Snapshot { return m.snap }

// Err returns the error that halted the animation, if any.
func (m Live) Err() error { return m.err }

func (m Live) View() string {
	canvasView := canvasStyle.Render(m.scene.Canvas().Render(inkStyles))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.opts.Title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	energy := m.energy.Values()
	if len(energy) > 1 {
		chart := asciigraph.Plot(energy, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d / %d", m.snap.Steps, m.opts.Frames))
	row("Time", fmt.Sprintf("%.2fs", m.snap.Time))
	row("Theta 1", fmt.Sprintf("%.1f°", config.Degrees(m.snap.Theta1)))
	row("Theta 2", fmt.Sprintf("%.1f°", config.Degrees(m.snap.Theta2)))
	row("Omega 1", fmt.Sprintf("%.2f rad/s", m.snap.Omega1))
	row("Omega 2", fmt.Sprintf("%.2f rad/s", m.snap.Omega2))
	if len(energy) > 0 {
		row("Energy", fmt.Sprintf("%.3f J", energy[len(energy)-1]))
	}
	row("Scheme", m.integrator.Scheme.String())

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render("halted: "+m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SPACE:Pause R:Reset Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (m Live) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("HALTED")
	case m.done:
		return statusPaused.Render("DONE")
	case !m.running:
		return statusPaused.Render("PAUSED")
	}
	return statusRunning.Render("RUNNING")
}

// RunLive runs the live view until the user quits.
func RunLive(state *pendulum.State, integ *pendulum.Integrator, opts LiveOptions) (pendulum.Snapshot, error) {
	final, err := tea.NewProgram(NewLive(state, integ, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return pendulum.Snapshot{}, err
	}
	m := final.(Live)
	return m.Snapshot(), m.Err()
}
