package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/pendulum"
	"github.com/san-kum/dpsim/internal/sim"
)

var csvHeader = []string{
	"time", "theta1", "theta2", "omega1", "omega2", "accel1", "accel2",
	"energy", "x1", "y1", "x2", "y2",
}

// frameCSV writes one row per snapshot. Angles are in radians and bob
// positions are in display units (cfg.Scale per metre).
type frameCSV struct {
	w       *csv.Writer
	gravity float64
	scale   float64
	row     []string
	err     error
}

func newFrameCSV(out io.Writer, cfg *config.Config) (*frameCSV, error) {
	c := &frameCSV{
		w:       csv.NewWriter(out),
		gravity: cfg.Gravity,
		scale:   cfg.Scale,
		row:     make([]string, len(csvHeader)),
	}
	if err := c.w.Write(csvHeader); err != nil {
		return nil, err
	}
	return c, nil
}

// write reports false once a row fails, which stops a streaming run.
func (c *frameCSV) write(snap pendulum.Snapshot) bool {
	bobs := pendulum.SnapshotPositions(snap, c.scale)
	values := []float64{
		snap.Time, snap.Theta1, snap.Theta2, snap.Omega1, snap.Omega2, snap.Accel1, snap.Accel2,
		pendulum.SnapshotEnergy(snap, c.gravity),
		bobs.Upper.X, bobs.Upper.Y, bobs.Lower.X, bobs.Lower.Y,
	}
	for i, v := range values {
		c.row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	if err := c.w.Write(c.row); err != nil {
		c.err = err
		return false
	}
	return true
}

func (c *frameCSV) flush() error {
	c.w.Flush()
	if c.err != nil {
		return c.err
	}
	return c.w.Error()
}

// streamCSV runs cfg and writes each frame as soon as it is computed, so
// long runs never hold their trajectory in memory.
func streamCSV(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger) error {
	runner, err := newRunner(cfg, logger)
	if err != nil {
		return err
	}
	c, err := newFrameCSV(out, cfg)
	if err != nil {
		return err
	}
	runErr := runner.RunWithCallback(ctx, sim.Config{Frames: cfg.Frames, ValidateState: true}, c.write)
	if err := c.flush(); err != nil {
		return err
	}
	return runErr
}

type exportData struct {
	ID          string             `json:"id"`
	Scheme      string             `json:"scheme"`
	Gravity     float64            `json:"gravity"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Pendulum    pendulum.Params    `json:"pendulum"`
	Frames      []sim.Frame        `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
}

// writeJSON writes the whole result as one indented JSON document.
func writeJSON(out io.Writer, result *sim.Result, cfg *config.Config) error {
	data := exportData{
		ID:          result.ID,
		Scheme:      cfg.Scheme,
		Gravity:     cfg.Gravity,
		Dt:          cfg.Dt,
		Steps:       result.StepsTaken,
		Pendulum:    cfg.Params(),
		Frames:      result.Frames,
		Metrics:     result.Metrics,
		EnergyDrift: result.EnergyDrift,
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
