package pendulum_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpsim/internal/pendulum"
)

var _ = Describe("State", func() {
	It("starts with zero acceleration and time", func() {
		s, err := pendulum.New(1.5, 0.5, 2, 1, 0.3, -0.2, 0.1, 0.4)
		Expect(err).NotTo(HaveOccurred())

		Expect(s.L1()).To(Equal(1.5))
		Expect(s.L2()).To(Equal(0.5))
		Expect(s.M1()).To(Equal(2.0))
		Expect(s.M2()).To(Equal(1.0))
		Expect(s.Theta1()).To(Equal(0.3))
		Expect(s.Theta2()).To(Equal(-0.2))
		Expect(s.Omega1()).To(Equal(0.1))
		Expect(s.Omega2()).To(Equal(0.4))
		Expect(s.Accel1()).To(BeZero())
		Expect(s.Accel2()).To(BeZero())
		Expect(s.Time()).To(BeZero())
		Expect(s.Steps()).To(BeZero())
	})

	DescribeTable("rejects non-positive constants",
		func(l1, l2, m1, m2 float64, name string) {
			s, err := pendulum.New(l1, l2, m1, m2, 0, 0, 0, 0)
			Expect(s).To(BeNil())
			Expect(err).To(MatchError(pendulum.ErrInvalidParameter))

			var pe *pendulum.ParameterError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Name).To(Equal(name))
		},
		Entry("zero l1", 0.0, 1.0, 1.0, 1.0, "l1"),
		Entry("negative l2", 1.0, -1.0, 1.0, 1.0, "l2"),
		Entry("zero m1", 1.0, 1.0, 0.0, 1.0, "m1"),
		Entry("zero m2", 1.0, 1.0, 1.0, 0.0, "m2"),
		Entry("NaN length", math.NaN(), 1.0, 1.0, 1.0, "l1"),
		Entry("infinite mass", 1.0, 1.0, math.Inf(1), 1.0, "m1"),
	)

	It("rejects non-finite initial conditions", func() {
		_, err := pendulum.New(1, 1, 1, 1, math.NaN(), 0, 0, 0)
		Expect(err).To(MatchError(pendulum.ErrInvalidParameter))

		_, err = pendulum.New(1, 1, 1, 1, 0, 0, 0, math.Inf(-1))
		Expect(err).To(MatchError(pendulum.ErrInvalidParameter))
	})

	It("accepts unbounded angles and velocities", func() {
		s, err := pendulum.New(1, 1, 1, 1, 40*math.Pi, -13, 250, -900)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Theta1()).To(Equal(40 * math.Pi))
	})

	It("clones independently", func() {
		s, _ := pendulum.New(1, 1, 1, 1, 0.5, 0.5, 0, 0)
		c := s.Clone()
		Expect(pendulum.NewIntegrator().Step(c)).To(Succeed())

		Expect(s.Steps()).To(BeZero())
		Expect(c.Steps()).To(Equal(1))
	})

	It("snapshots every field", func() {
		s, _ := pendulum.New(1, 2, 3, 4, 0.1, 0.2, 0.3, 0.4)
		snap := s.Snapshot()
		Expect(snap.Params).To(Equal(pendulum.Params{L1: 1, L2: 2, M1: 3, M2: 4}))
		Expect(snap.Theta2).To(Equal(0.2))
		Expect(snap.Omega1).To(Equal(0.3))
	})
})
