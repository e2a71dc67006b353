package pendulum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpsim/internal/pendulum"
)

func drift(s *pendulum.State, in *pendulum.Integrator, steps int) float64 {
	e0 := pendulum.Energy(s, in.Gravity)
	Expect(in.Advance(s, steps)).To(Succeed())
	return math.Abs(pendulum.Energy(s, in.Gravity) - e0)
}

var _ = Describe("Energy", func() {
	It("is purely potential at rest", func() {
		s := mustState(1, 1, 1, 1, 0, 0, 0, 0)

		Expect(pendulum.KineticEnergy(s)).To(BeZero())
		Expect(pendulum.PotentialEnergy(s, 9.8)).To(BeNumerically("~", -29.4, 1e-12))
	})

	It("counts the coupled velocity term", func() {
		s := mustState(1, 2, 3, 4, 0.3, 0.3, 1, 1)

		// both arms aligned and spinning together: v1 = 1, v2 = 3
		want := 0.5*3*1 + 0.5*4*9
		Expect(pendulum.KineticEnergy(s)).To(BeNumerically("~", want, 1e-12))
	})

	It("agrees with the snapshot form", func() {
		s := mustState(1.1, 0.9, 2, 1, 0.4, -1.3, 2, -0.5)
		Expect(pendulum.SnapshotEnergy(s.Snapshot(), 9.8)).To(Equal(pendulum.Energy(s, 9.8)))
	})

	It("stays within a small bound over a short window", func() {
		in := pendulum.NewIntegrator()
		for _, start := range [][2]float64{{0.1, 0.1}, {0.3, -0.2}, {0.5, 0.5}} {
			s := mustState(1, 1, 1, 1, start[0], start[1], 0, 0)
			e0 := pendulum.Energy(s, in.Gravity)

			d := drift(s, in, 100)
			Expect(d / math.Abs(e0)).To(BeNumerically("<", 0.05), "start %v", start)
		}
	})

	It("drifts less with the semi-implicit scheme over a long run", func() {
		explicit := pendulum.NewIntegrator()
		semi := pendulum.NewIntegrator()
		semi.Scheme = pendulum.SchemeSemiImplicit

		de := drift(mustState(1, 1, 1, 1, 0.1, 0.1, 0, 0), explicit, 2000)
		ds := drift(mustState(1, 1, 1, 1, 0.1, 0.1, 0, 0), semi, 2000)
		Expect(ds).To(BeNumerically("<", de))
	})
})
