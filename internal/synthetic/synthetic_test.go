package synthetic_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tslab/internal/dynamo"
	"github.com/san-kum/tslab/internal/integrators"
	"github.com/san-kum/tslab/internal/synthetic"
)

var _ = Describe("MackeyGlass", func() {
	DescribeTable("returns n values inside (-1, 1)",
		func(n, tau, deltaT int, seed uint64) {
			xs, err := synthetic.MackeyGlass(n, tau, deltaT, synthetic.NewSource(seed))
			Expect(err).NotTo(HaveOccurred())
			Expect(xs).To(HaveLen(n))
			for _, v := range xs {
				Expect(v).To(BeNumerically(">", -1))
				Expect(v).To(BeNumerically("<", 1))
			}
		},
		Entry("single sample", 1, 1, 1, uint64(0)),
		Entry("small", 5, 2, 2, uint64(42)),
		Entry("classic mg17", 500, 17, 10, uint64(7)),
		Entry("long delay mg30", 300, 30, 10, uint64(3)),
	)

	It("reproduces output for an identical seed", func() {
		a, err := synthetic.MackeyGlass(200, 17, 10, synthetic.NewSource(42))
		Expect(err).NotTo(HaveOccurred())
		b, err := synthetic.MackeyGlass(200, 17, 10, synthetic.NewSource(42))
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("differs across seeds", func() {
		a, _ := synthetic.MackeyGlass(200, 17, 10, synthetic.NewSource(1))
		b, _ := synthetic.MackeyGlass(200, 17, 10, synthetic.NewSource(2))
		Expect(a).NotTo(Equal(b))
	})

	It("runs unseeded with a nil source", func() {
		xs, err := synthetic.MackeyGlass(10, 17, 10, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs).To(HaveLen(10))
	})

	It("rejects non-positive arguments", func() {
		_, err := synthetic.MackeyGlass(0, 17, 10, nil)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})
})

type countingRK45 struct {
	*integrators.RK45
	calls int
}

func (c *countingRK45) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	c.calls++
	return c.RK45.StepAdaptive(sys, x, t, dt, tol)
}

var _ = Describe("Lorenz", func() {
	It("starts at the initial state and returns n rows", func() {
		p := synthetic.DefaultLorenzParams()
		states, err := synthetic.Lorenz(1000, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(states).To(HaveLen(1000))
		Expect(states[0]).To(Equal(dynamo.State{-13, -14, 47}))
		for _, s := range states {
			Expect(s.IsValid()).To(BeTrue())
			Expect(s).To(HaveLen(3))
		}
	})

	It("stays on the attractor", func() {
		states, err := synthetic.Lorenz(2000, synthetic.DefaultLorenzParams())
		Expect(err).NotTo(HaveOccurred())
		for _, s := range states[500:] {
			Expect(math.Abs(s[0])).To(BeNumerically("<", 30))
			Expect(s[2]).To(BeNumerically(">", 0))
			Expect(s[2]).To(BeNumerically("<", 60))
		}
	})

	It("agrees between RK4 and RK45 over a short horizon", func() {
		p := synthetic.DefaultLorenzParams()
		a, err := synthetic.Lorenz(50, p)
		Expect(err).NotTo(HaveOccurred())

		p.Integrator = integrators.NewRK45()
		p.Tol = 1e-10
		b, err := synthetic.Lorenz(50, p)
		Expect(err).NotTo(HaveOccurred())

		for i := range a {
			Expect(a[i].Sub(b[i]).Norm()).To(BeNumerically("<", 1e-4))
		}
	})

	It("follows the step proposals of an adaptive integrator", func() {
		p := synthetic.DefaultLorenzParams()
		p.Substeps = 1000
		fixed, err := synthetic.Lorenz(50, p)
		Expect(err).NotTo(HaveOccurred())

		counter := &countingRK45{RK45: integrators.NewRK45()}
		p.Integrator = counter
		adaptive, err := synthetic.Lorenz(50, p)
		Expect(err).NotTo(HaveOccurred())

		Expect(counter.calls).To(BeNumerically("<", 49*p.Substeps/10))
		Expect(counter.calls).To(BeNumerically(">=", 49))
		for i := range fixed {
			Expect(fixed[i].Sub(adaptive[i]).Norm()).To(BeNumerically("<", 1e-2))
		}
	})

	It("reports divergence from an adaptive integrator as a simulation error", func() {
		p := synthetic.DefaultLorenzParams()
		p.Rho = math.Inf(1)
		p.Integrator = integrators.NewRK45()
		_, err := synthetic.Lorenz(10, p)
		Expect(err).To(MatchError(dynamo.ErrUnstable))
		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Step).To(Equal(1))
	})

	It("returns the initial state alone for n=1", func() {
		states, err := synthetic.Lorenz(1, synthetic.DefaultLorenzParams())
		Expect(err).NotTo(HaveOccurred())
		Expect(states).To(HaveLen(1))
	})

	It("splits states into columns", func() {
		states, _ := synthetic.Lorenz(10, synthetic.DefaultLorenzParams())
		s := synthetic.LorenzSeries(states)
		Expect(s.Names).To(Equal([]string{"X", "Y", "Z"}))
		Expect(s.Column("Z")[0]).To(Equal(47.0))
	})

	It("rejects invalid parameters", func() {
		p := synthetic.DefaultLorenzParams()
		p.Dt = 0
		_, err := synthetic.Lorenz(10, p)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))

		_, err = synthetic.Lorenz(0, synthetic.DefaultLorenzParams())
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})

	It("reports divergence as ErrUnstable", func() {
		p := synthetic.DefaultLorenzParams()
		p.Dt = 10
		p.Substeps = 1
		p.Integrator = integrators.NewEuler()
		_, err := synthetic.Lorenz(50, p)
		Expect(err).To(MatchError(dynamo.ErrUnstable))
	})
})

var _ = Describe("MSO", func() {
	It("is bounded by the sum of two unit sines", func() {
		xs, err := synthetic.MSO(1000, synthetic.NewSource(5))
		Expect(err).NotTo(HaveOccurred())
		Expect(xs).To(HaveLen(1000))
		for _, v := range xs {
			Expect(math.Abs(v)).To(BeNumerically("<=", 2))
		}
	})

	It("starts at 2*sin(phase)", func() {
		src := synthetic.NewSource(9)
		phase := synthetic.NewSource(9).Float64()
		xs, err := synthetic.MSO(3, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs[0]).To(BeNumerically("~", 2*math.Sin(phase), 1e-12))
	})

	It("rejects n < 1", func() {
		_, err := synthetic.MSO(0, nil)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})
})
