package pendulum_test

import (
	"testing"

	"github.com/san-kum/dpsim/internal/pendulum"
)

func benchStep(b *testing.B, scheme pendulum.Scheme) {
	integ, err := pendulum.NewIntegratorWith(pendulum.DefaultGravity, pendulum.DefaultDt, scheme)
	if err != nil {
		b.Fatal(err)
	}
	start, _ := pendulum.New(1, 1, 1, 1, 1.2, -0.4, 0, 0)
	s := start.Clone()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%10000 == 0 {
			s = start.Clone()
		}
		if err := integ.Step(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStepExplicit(b *testing.B)     { benchStep(b, pendulum.SchemeExplicit) }
func BenchmarkStepSemiImplicit(b *testing.B) { benchStep(b, pendulum.SchemeSemiImplicit) }

func BenchmarkComputeAccelerations(b *testing.B) {
	integ := pendulum.NewIntegrator()
	s, _ := pendulum.New(1, 1, 1, 1, 1.2, -0.4, 0.3, 0.7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := integ.ComputeAccelerations(s); err != nil {
			b.Fatal(err)
		}
	}
}
