package pendulum_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpsim/internal/pendulum"
)

func mustState(l1, l2, m1, m2, t1, t2, w1, w2 float64) *pendulum.State {
	s, err := pendulum.New(l1, l2, m1, m2, t1, t2, w1, w2)
	Expect(err).NotTo(HaveOccurred())
	return s
}

// linearized solves the small-angle equations: cos(t1-t2) = 1,
// sin(x) = x and the velocity-squared terms dropped.
func linearized(p pendulum.Params, g, t1, t2 float64) (float64, float64) {
	m00 := (p.M1 + p.M2) * p.L1 * p.L1
	m01 := p.M2 * p.L1 * p.L2
	m11 := p.M2 * p.L2 * p.L2
	b0 := -(p.M1 + p.M2) * g * p.L1 * t1
	b1 := -p.M2 * g * p.L2 * t2
	det := m00*m11 - m01*m01
	return (m11*b0 - m01*b1) / det, (m00*b1 - m01*b0) / det
}

var _ = Describe("Integrator", func() {
	var integ *pendulum.Integrator

	BeforeEach(func() {
		integ = pendulum.NewIntegrator()
	})

	It("defaults to g = 9.8, dt = 0.01 and the explicit scheme", func() {
		Expect(integ.Gravity).To(Equal(9.8))
		Expect(integ.Dt).To(Equal(0.01))
		Expect(integ.Scheme).To(Equal(pendulum.SchemeExplicit))
	})

	Describe("ComputeAccelerations", func() {
		It("makes the inner bob free-fall when both arms are horizontal", func() {
			s := mustState(1, 1, 1, 1, math.Pi/2, math.Pi/2, 0, 0)

			a1, a2, err := integ.ComputeAccelerations(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(a1).To(BeNumerically("~", -9.8, 1e-9))
			Expect(a2).To(BeNumerically("~", 0.0, 1e-9))
		})

		It("does not modify the state", func() {
			s := mustState(1, 1, 1, 1, 0.7, -0.3, 1.1, 0.2)
			before := s.Snapshot()

			_, _, err := integ.ComputeAccelerations(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Snapshot()).To(Equal(before))
		})

		It("is zero at the hanging equilibrium", func() {
			s := mustState(1.3, 0.8, 2, 0.5, 0, 0, 0, 0)

			a1, a2, err := integ.ComputeAccelerations(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(a1).To(BeZero())
			Expect(a2).To(BeZero())
		})

		It("is odd under mirroring the configuration", func() {
			left := mustState(1, 1, 1, 1, 0.4, -0.2, 0.3, 0.1)
			right := mustState(1, 1, 1, 1, -0.4, 0.2, -0.3, -0.1)

			l1, l2, err := integ.ComputeAccelerations(left)
			Expect(err).NotTo(HaveOccurred())
			r1, r2, err := integ.ComputeAccelerations(right)
			Expect(err).NotTo(HaveOccurred())

			Expect(l1).To(BeNumerically("~", -r1, 1e-12))
			Expect(l2).To(BeNumerically("~", -r2, 1e-12))
		})

		It("reports a singular mass matrix", func() {
			s := mustState(1, 1, 1e-15, 1, 0.2, 0.2, 0, 0)

			_, _, err := integ.ComputeAccelerations(s)
			Expect(err).To(MatchError(pendulum.ErrSingularConfiguration))

			var se *pendulum.SingularError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Theta1).To(Equal(0.2))
		})
	})

	Describe("Step", func() {
		It("applies the explicit Euler update in order", func() {
			s := mustState(1, 1, 1, 1, 0.5, 0.1, 0.2, -0.3)
			a1, a2, err := integ.ComputeAccelerations(s)
			Expect(err).NotTo(HaveOccurred())

			Expect(integ.Step(s)).To(Succeed())

			Expect(s.Accel1()).To(Equal(a1))
			Expect(s.Accel2()).To(Equal(a2))
			Expect(s.Theta1()).To(BeNumerically("~", 0.502, 1e-15))
			Expect(s.Theta2()).To(BeNumerically("~", 0.097, 1e-15))
			Expect(s.Omega1()).To(BeNumerically("~", 0.2+a1*0.01, 1e-15))
			Expect(s.Omega2()).To(BeNumerically("~", -0.3+a2*0.01, 1e-15))
		})

		It("moves angles with the new velocities in the semi-implicit scheme", func() {
			integ.Scheme = pendulum.SchemeSemiImplicit
			s := mustState(1, 1, 1, 1, 0.5, 0.1, 0.2, -0.3)
			a1, a2, _ := integ.ComputeAccelerations(s)

			Expect(integ.Step(s)).To(Succeed())

			w1 := 0.2 + a1*0.01
			w2 := -0.3 + a2*0.01
			Expect(s.Omega1()).To(BeNumerically("~", w1, 1e-15))
			Expect(s.Theta1()).To(BeNumerically("~", 0.5+w1*0.01, 1e-15))
			Expect(s.Theta2()).To(BeNumerically("~", 0.1+w2*0.01, 1e-15))
		})

		It("advances time by dt per step", func() {
			s := mustState(1, 1, 1, 1, 1, 2, 0, 0)

			prev := s.Time()
			for i := 1; i <= 500; i++ {
				Expect(integ.Step(s)).To(Succeed())
				Expect(s.Time()).To(BeNumerically(">", prev))
				prev = s.Time()
			}
			Expect(s.Steps()).To(Equal(500))
			Expect(s.Time()).To(BeNumerically("~", 500*0.01, 1e-9))
		})

		It("keeps the hanging equilibrium fixed", func() {
			s := mustState(1, 1, 1, 1, 0, 0, 0, 0)

			Expect(integ.Advance(s, 1000)).To(Succeed())
			Expect(s.Theta1()).To(BeZero())
			Expect(s.Theta2()).To(BeZero())
			Expect(s.Omega1()).To(BeZero())
			Expect(s.Omega2()).To(BeZero())
		})

		DescribeTable("matches the linearised equations for small angles",
			func(p pendulum.Params) {
				s, err := pendulum.NewFromParams(p, pendulum.Conditions{Theta1: 0.01, Theta2: 0.01})
				Expect(err).NotTo(HaveOccurred())

				Expect(integ.Step(s)).To(Succeed())

				want1, want2 := linearized(p, integ.Gravity, 0.01, 0.01)
				Expect(s.Accel1()).To(BeNumerically("~", want1, 1e-4*math.Max(math.Abs(want1), 1e-2)))
				Expect(s.Accel2()).To(BeNumerically("~", want2, 1e-4*math.Max(math.Abs(want2), 1e-2)))
			},
			Entry("unit arms", pendulum.Params{L1: 1, L2: 1, M1: 1, M2: 1}),
			Entry("heavy upper bob", pendulum.Params{L1: 1.2, L2: 0.7, M1: 2, M2: 0.5}),
			Entry("long lower arm", pendulum.Params{L1: 0.5, L2: 2, M1: 1, M2: 3}),
		)

		It("is deterministic", func() {
			a := mustState(1, 1.5, 1, 2, 2.5, -1, 0.4, 0)
			b := mustState(1, 1.5, 1, 2, 2.5, -1, 0.4, 0)

			for i := 0; i < 2000; i++ {
				Expect(integ.Step(a)).To(Succeed())
				Expect(integ.Step(b)).To(Succeed())
			}
			Expect(a.Snapshot()).To(Equal(b.Snapshot()))
		})

		It("leaves the state untouched when the solve fails", func() {
			s := mustState(1, 1, 1e-15, 1, 0.2, 0.2, 1, -1)
			before := s.Snapshot()

			err := integ.Step(s)
			Expect(err).To(MatchError(pendulum.ErrSingularConfiguration))
			Expect(s.Snapshot()).To(Equal(before))
		})

		It("wraps errors from Advance with the step number", func() {
			s := mustState(1, 1, 1e-15, 1, 0, 0, 0, 0)

			err := integ.Advance(s, 10)
			Expect(err).To(MatchError(ContainSubstring("step 0")))
			Expect(errors.Is(err, pendulum.ErrSingularConfiguration)).To(BeTrue())
		})
	})

	Describe("NewIntegratorWith", func() {
		DescribeTable("rejects unusable settings",
			func(g, dt float64, scheme pendulum.Scheme) {
				_, err := pendulum.NewIntegratorWith(g, dt, scheme)
				Expect(err).To(MatchError(pendulum.ErrInvalidParameter))
			},
			Entry("zero dt", 9.8, 0.0, pendulum.SchemeExplicit),
			Entry("negative dt", 9.8, -0.01, pendulum.SchemeExplicit),
			Entry("NaN gravity", math.NaN(), 0.01, pendulum.SchemeExplicit),
			Entry("negative gravity", -1.0, 0.01, pendulum.SchemeExplicit),
			Entry("unknown scheme", 9.8, 0.01, pendulum.Scheme(7)),
		)

		It("accepts an alternate step size", func() {
			in, err := pendulum.NewIntegratorWith(1.62, 0.001, pendulum.SchemeSemiImplicit)
			Expect(err).NotTo(HaveOccurred())

			s := mustState(1, 1, 1, 1, 0.1, 0, 0, 0)
			Expect(in.Advance(s, 10)).To(Succeed())
			Expect(s.Time()).To(BeNumerically("~", 0.01, 1e-12))
		})
	})

	Describe("ParseScheme", func() {
		It("round-trips names", func() {
			for _, sc := range []pendulum.Scheme{pendulum.SchemeExplicit, pendulum.SchemeSemiImplicit} {
				got, err := pendulum.ParseScheme(sc.String())
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(sc))
			}
		})

		It("rejects unknown names", func() {
			_, err := pendulum.ParseScheme("rk4")
			Expect(err).To(MatchError(pendulum.ErrInvalidParameter))
		})
	})
})
