// Package prompt collects the pendulum's parameters and initial
// conditions interactively, one numeric answer per line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/dpsim/internal/config"
)

// MaxAttempts is how many unparsable answers a single question tolerates.
const MaxAttempts = 3

var ErrTooManyAttempts = errors.New("prompt: too many invalid answers")

// Questions are asked in this order; angles are in degrees.
var Questions = []string{
	"length 1 (m)",
	"length 2 (m)",
	"mass 1 (kg)",
	"mass 2 (kg)",
	"angle 1 (degree)",
	"angle 2 (degree)",
	"angular velocity 1 (degree / sec)",
	"angular velocity 2 (degree / sec)",
}

// Ask writes each question to w and reads one answer per line from r.
// Values are returned as entered, without unit conversion.
func Ask(r io.Reader, w io.Writer) (config.PendulumConfig, config.InitialConfig, error) {
	sc := bufio.NewScanner(r)
	answers := make([]float64, len(Questions))

	for i, q := range Questions {
		v, err := askOne(sc, w, q)
		if err != nil {
			return config.PendulumConfig{}, config.InitialConfig{}, err
		}
		answers[i] = v
	}

	p := config.PendulumConfig{L1: answers[0], L2: answers[1], M1: answers[2], M2: answers[3]}
	in := config.InitialConfig{Theta1: answers[4], Theta2: answers[5], Omega1: answers[6], Omega2: answers[7]}
	return p, in, nil
}

// Apply asks every question and stores the answers in cfg.
func Apply(r io.Reader, w io.Writer, cfg *config.Config) error {
	p, in, err := Ask(r, w)
	if err != nil {
		return err
	}
	cfg.Pendulum = p
	cfg.Initial = in
	return nil
}

func askOne(sc *bufio.Scanner, w io.Writer, question string) (float64, error) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if _, err := fmt.Fprintf(w, "%s: ", question); err != nil {
			return 0, err
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("read %s: %w", question, err)
			}
			return 0, fmt.Errorf("read %s: %w", question, io.ErrUnexpectedEOF)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
		fmt.Fprintf(w, "not a number: %q\n", sc.Text())
	}
	return 0, fmt.Errorf("%w: %s", ErrTooManyAttempts, question)
}
