package trajectory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eigenmap/internal/linmap"
	"github.com/san-kum/eigenmap/internal/trajectory"
)

var _ = Describe("Trajectory", func() {
	var (
		p0 linmap.Vec2
		a  linmap.Mat2
		tr *trajectory.Trajectory
	)

	BeforeEach(func() {
		p0 = linmap.Vec2{X: 9, Y: 7}
		basis := linmap.RealBasis{Lambda1: 0.9, Lambda2: -0.95, V: [2][2]float64{{1.0, 0.45}, {0.2, 1.0}}}
		var err error
		a, err = basis.Matrix()
		Expect(err).NotTo(HaveOccurred())
		tr = trajectory.New(p0)
	})

	Describe("a zero-value trajectory", func() {
		It("is empty and refuses to step", func() {
			var empty trajectory.Trajectory
			Expect(empty.Phase()).To(Equal(trajectory.Empty))

			_, err := empty.Step(&a)
			Expect(err).To(MatchError(trajectory.ErrEmptyTrajectory))

			_, err = empty.Last()
			Expect(err).To(MatchError(trajectory.ErrEmptyTrajectory))
		})
	})

	Describe("Reset", func() {
		It("seeds exactly the initial point", func() {
			Expect(tr.Phase()).To(Equal(trajectory.Seeded))
			Expect(tr.Points()).To(Equal([]linmap.Vec2{p0}))
		})

		It("is idempotent regardless of prior length", func() {
			for _, n := range []int{0, 1, 5, 40} {
				_, err := tr.Advance(&a, n)
				Expect(err).NotTo(HaveOccurred())

				tr.Reset(p0)
				tr.Reset(p0)
				Expect(tr.Points()).To(Equal([]linmap.Vec2{p0}))
			}
		})

		It("replaces the seed when the initial point changes", func() {
			_, _ = tr.Step(&a)
			q := linmap.Vec2{X: -1, Y: 2}
			tr.Reset(q)
			Expect(tr.Points()).To(Equal([]linmap.Vec2{q}))
		})
	})

	Describe("Step", func() {
		It("appends A applied to the last point", func() {
			p1, err := tr.Step(&a)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Phase()).To(Equal(trajectory.Accumulating))

			want := a.Apply(p0)
			Expect(p1).To(Equal(want))
			Expect(p1.X).To(BeNumerically("~", 3.042/0.91, 1e-12))
			Expect(p1.Y).To(BeNumerically("~", -3.887/0.91, 1e-12))
		})

		It("yields n+1 points with p_i = A^i p_0", func() {
			const n = 25
			taken, err := tr.Advance(&a, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(Equal(n))

			points := tr.Points()
			Expect(points).To(HaveLen(n + 1))
			for i, p := range points {
				want := a.Pow(i).Apply(p0)
				Expect(p.X).To(BeNumerically("~", want.X, 1e-9))
				Expect(p.Y).To(BeNumerically("~", want.Y, 1e-9))
			}
		})

		It("rejects an undefined matrix without mutating", func() {
			_, _ = tr.Advance(&a, 3)
			before := tr.Points()

			_, err := tr.Step(nil)
			Expect(err).To(MatchError(trajectory.ErrUndefinedMatrix))
			Expect(err).To(MatchError(linmap.ErrSingularBasis))
			Expect(tr.Points()).To(Equal(before))
		})

		It("stops when the orbit overflows", func() {
			huge := linmap.Mat2{{1e200, 0}, {0, 1e200}}
			taken, err := tr.Advance(&huge, 5)
			Expect(err).To(MatchError(trajectory.ErrDiverged))
			Expect(taken).To(Equal(1))
			Expect(tr.Len()).To(Equal(2))
		})
	})

	Describe("Points", func() {
		It("returns a copy", func() {
			pts := tr.Points()
			pts[0] = linmap.Vec2{X: 100, Y: 100}
			first, err := tr.Initial()
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(p0))
		})
	})
})
