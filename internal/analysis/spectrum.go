package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the one-sided amplitude spectrum (FFT magnitudes, not
// squared) of samples taken every dt seconds, after removing the mean and
// applying a Hann window. Bin k is at frequency k / (len(samples) * dt) Hz.
func Spectrum(samples []float64, dt float64) []float64 {
	n := len(samples)
	if n < 2 || !(dt > 0) {
		return nil
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	coeffs := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// BinWidth is the frequency resolution of Spectrum in Hz.
func BinWidth(n int, dt float64) float64 {
	return 1 / (float64(n) * dt)
}

// DominantFrequency returns the frequency in Hz of the strongest
// non-constant component, or 0 when there is none.
func DominantFrequency(samples []float64, dt float64) float64 {
	ps := Spectrum(samples, dt)
	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	return float64(idx) * BinWidth(len(samples), dt)
}
