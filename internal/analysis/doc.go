// Package analysis characterises recorded pendulum runs.
//
//   - [Spectrum] and [DominantFrequency]: amplitude spectrum of an angle series
//   - [Lyapunov]: largest Lyapunov exponent by trajectory separation
//   - [Phase]: (theta, omega) portrait of one arm
//   - [Poincare]: section of the lower arm taken as the upper arm passes
//     through the vertical
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic motion:
//
//	lambda, err := analysis.Lyapunov(state, integ, 1000, 1e-8)
//	if err == nil && lambda > 0 {
//	    // nearby starts separate exponentially
//	}
package analysis
