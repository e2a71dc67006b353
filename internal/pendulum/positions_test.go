package pendulum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpsim/internal/pendulum"
)

var _ = Describe("Positions", func() {
	It("hangs both bobs below the pivot at rest", func() {
		s := mustState(1, 0.5, 1, 1, 0, 0, 0, 0)

		b := pendulum.Positions(s, pendulum.DefaultScale)
		Expect(b.Upper.X).To(BeZero())
		Expect(b.Upper.Y).To(BeNumerically("~", -100, 1e-9))
		Expect(b.Lower.X).To(BeZero())
		Expect(b.Lower.Y).To(BeNumerically("~", -150, 1e-9))
	})

	It("lays both arms out horizontally at 90 degrees", func() {
		s := mustState(1, 1, 1, 1, math.Pi/2, math.Pi/2, 0, 0)

		b := pendulum.Positions(s, 100)
		Expect(b.Upper.X).To(BeNumerically("~", 100, 1e-9))
		Expect(b.Upper.Y).To(BeNumerically("~", 0, 1e-9))
		Expect(b.Lower.X).To(BeNumerically("~", 200, 1e-9))
		Expect(b.Lower.Y).To(BeNumerically("~", 0, 1e-9))
	})

	It("keeps the arm lengths for any angle", func() {
		s := mustState(1.3, 0.4, 1, 1, 7.1, -2.6, 0, 0)

		b := pendulum.Positions(s, 1)
		Expect(math.Hypot(b.Upper.X, b.Upper.Y)).To(BeNumerically("~", 1.3, 1e-12))
		Expect(math.Hypot(b.Lower.X-b.Upper.X, b.Lower.Y-b.Upper.Y)).To(BeNumerically("~", 0.4, 1e-12))
		Expect(pendulum.SnapshotPositions(s.Snapshot(), 1)).To(Equal(b))
	})
})
