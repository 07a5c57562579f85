package quantum_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qwalk/internal/quantum"
)

var _ = Describe("StateVector", func() {
	It("starts in the all-zero basis state", func() {
		sv, err := quantum.NewStateVector(3)
		Expect(err).NotTo(HaveOccurred())
		p := sv.Probabilities()
		Expect(p).To(HaveLen(8))
		Expect(p[0]).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("treats qubit 0 as the most significant bit", func() {
		sv, _ := quantum.NewStateVector(3)
		sv.Apply(quantum.X(0))
		Expect(sv.Probabilities()[4]).To(BeNumerically("~", 1.0, 1e-12))
		Expect(sv.Marginal([]quantum.Qubit{0, 1})[2]).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("splits evenly under H", func() {
		sv, _ := quantum.NewStateVector(1)
		sv.Apply(quantum.H(0))
		p := sv.Probabilities()
		Expect(p[0]).To(BeNumerically("~", 0.5, 1e-12))
		Expect(p[1]).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("undoes H with a second H", func() {
		sv, _ := quantum.NewStateVector(1)
		sv.Apply(quantum.H(0))
		sv.Apply(quantum.H(0))
		Expect(sv.Probabilities()[0]).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("applies a phase of i with S", func() {
		sv, _ := quantum.NewStateVector(1)
		sv.Apply(quantum.X(0))
		sv.Apply(quantum.S(0))
		Expect(sv.Amplitudes()[1]).To(Equal(complex(0, 1)))
	})

	It("fires controlled X only when every control is set", func() {
		sv, _ := quantum.NewStateVector(3)
		sv.Apply(quantum.X(2).ControlledBy(0, 1))
		Expect(sv.Probabilities()[0]).To(BeNumerically("~", 1.0, 1e-12))

		sv.Apply(quantum.X(0))
		sv.Apply(quantum.X(1))
		sv.Apply(quantum.X(2).ControlledBy(0, 1))
		Expect(sv.Probabilities()[7]).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("preserves the norm across many gates", func() {
		sv, _ := quantum.NewStateVector(4)
		for i := 0; i < 50; i++ {
			sv.Apply(quantum.H(quantum.Qubit(i % 4)))
			sv.Apply(quantum.X(quantum.Qubit((i + 1) % 4)).ControlledBy(quantum.Qubit(i % 4)))
			sv.Apply(quantum.S(quantum.Qubit((i + 2) % 4)))
		}
		Expect(sv.Norm()).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("rejects oversized registers", func() {
		_, err := quantum.NewStateVector(quantum.MaxQubits + 1)
		Expect(errors.Is(err, quantum.ErrTooManyQubits)).To(BeTrue())
	})
})

var _ = Describe("Circuit", func() {
	It("renders one numbered line per operation", func() {
		c := quantum.NewCircuit(3)
		c.Append(quantum.H(2), quantum.X(1).ControlledBy(2), quantum.Measure("x", 0, 1))
		Expect(c.String()).To(Equal("0: H(q2)\n1: X(q1) ctrl[q2]\n2: M[x](q0,q1)\n"))
	})

	It("counts gates by kind", func() {
		c := quantum.NewCircuit(3)
		c.Append(quantum.H(2), quantum.X(0), quantum.X(1).ControlledBy(2, 0), quantum.Measure("x", 0))
		st := c.Stats()
		Expect(st.Gates).To(Equal(map[string]int{"H": 1, "X": 2}))
		Expect(st.Controlled).To(Equal(1))
		Expect(st.MaxControls).To(Equal(2))
		Expect(st.Measurements).To(Equal(1))
	})

	DescribeTable("validation",
		func(build func(c *quantum.Circuit), want error) {
			c := quantum.NewCircuit(2)
			build(c)
			Expect(errors.Is(c.Validate(), want)).To(BeTrue())
		},
		Entry("target out of range", func(c *quantum.Circuit) { c.Append(quantum.X(2)) }, quantum.ErrQubitRange),
		Entry("control out of range", func(c *quantum.Circuit) { c.Append(quantum.X(0).ControlledBy(-1)) }, quantum.ErrQubitRange),
		Entry("control equals target", func(c *quantum.Circuit) { c.Append(quantum.X(0).ControlledBy(0)) }, quantum.ErrInvalidOperation),
		Entry("duplicate key", func(c *quantum.Circuit) {
			c.Append(quantum.Measure("m", 0), quantum.Measure("m", 1))
		}, quantum.ErrDuplicateKey),
		Entry("gate after measurement", func(c *quantum.Circuit) {
			c.Append(quantum.Measure("m", 0), quantum.H(1))
		}, quantum.ErrNonTerminal),
		Entry("empty measurement", func(c *quantum.Circuit) { c.Append(quantum.Measure("m")) }, quantum.ErrInvalidOperation),
	)
})

var _ = Describe("Simulator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	bell := func() *quantum.Circuit {
		c := quantum.NewCircuit(2)
		c.Append(quantum.H(0), quantum.X(1).ControlledBy(0))
		c.Append(quantum.Measure("m", 0, 1))
		return c
	}

	It("returns counts summing to the repetitions", func() {
		res, err := quantum.NewSimulator(1).Run(ctx, bell(), 2000)
		Expect(err).NotTo(HaveOccurred())
		hist, err := res.Histogram("m")
		Expect(err).NotTo(HaveOccurred())
		total := 0
		for _, n := range hist {
			total += n
		}
		Expect(total).To(Equal(2000))
	})

	It("only produces correlated outcomes for a Bell pair", func() {
		res, _ := quantum.NewSimulator(7).Run(ctx, bell(), 4000)
		hist, _ := res.Histogram("m")
		Expect(hist).To(HaveLen(2))
		Expect(hist).To(HaveKey(uint64(0)))
		Expect(hist).To(HaveKey(uint64(3)))
		Expect(hist[0]).To(BeNumerically("~", 2000, 200))
	})

	It("keeps correlations across measurement keys", func() {
		c := quantum.NewCircuit(2)
		c.Append(quantum.H(0), quantum.X(1).ControlledBy(0))
		c.Append(quantum.Measure("a", 0), quantum.Measure("b", 1))
		res, err := quantum.NewSimulator(3).Run(ctx, c, 1000)
		Expect(err).NotTo(HaveOccurred())
		a, _ := res.Histogram("a")
		b, _ := res.Histogram("b")
		Expect(a).To(Equal(b))
		Expect(res.Keys()).To(Equal([]string{"a", "b"}))
	})

	It("is deterministic for a fixed seed", func() {
		r1, _ := quantum.NewSimulator(99).Run(ctx, bell(), 500)
		r2, _ := quantum.NewSimulator(99).Run(ctx, bell(), 500)
		h1, _ := r1.Histogram("m")
		h2, _ := r2.Histogram("m")
		Expect(h1).To(Equal(h2))
	})

	It("rejects circuits without measurements", func() {
		c := quantum.NewCircuit(1)
		c.Append(quantum.H(0))
		_, err := quantum.NewSimulator(1).Run(ctx, c, 10)
		Expect(err).To(MatchError(quantum.ErrNoMeasurement))
	})

	It("rejects non-positive repetitions", func() {
		_, err := quantum.NewSimulator(1).Run(ctx, bell(), 0)
		Expect(errors.Is(err, quantum.ErrRepetitions)).To(BeTrue())
	})

	It("reports unknown keys", func() {
		res, _ := quantum.NewSimulator(1).Run(ctx, bell(), 10)
		_, err := res.Histogram("nope")
		Expect(errors.Is(err, quantum.ErrUnknownKey)).To(BeTrue())
	})

	It("stops on a canceled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := quantum.NewSimulator(1).Run(cctx, bell(), 10)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})
