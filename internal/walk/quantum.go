package walk

import (
	"context"
	"fmt"

	"github.com/san-kum/qwalk/internal/quantum"
)

// MeasureKey is the measurement key of the position register.
const MeasureKey = "x"

// DefaultStart is the initial position of the register: X on qubit 1, i.e.
// 2^(n-3) for n qubits including the coin.
func DefaultStart(qubits int) int {
	return 1 << (qubits - 3)
}

// BuildQuantumCircuit lays out qubits 0..n-2 as the position register
// (qubit 0 most significant) and qubit n-1 as the coin, prepares the initial
// position and coin, appends p.Steps walk steps and measures the register.
func BuildQuantumCircuit(p Params) (*quantum.Circuit, error) {
	p.Kind = KindQuantum
	if err := p.validateQuantum(); err != nil {
		return nil, err
	}
	n := p.Qubits
	qubits := quantum.LineQubits(n)
	register, coin := qubits[:n-1], qubits[n-1]

	c := quantum.NewCircuit(n)

	start := DefaultStart(n)
	if p.Start != nil {
		start = *p.Start
	}
	c.Append(prepare(register, start)...)

	switch p.Coin {
	case CoinOne:
		c.Append(quantum.X(coin))
	case CoinSymmetric:
		// (|0⟩ + i|1⟩)/√2
		c.Append(quantum.H(coin), quantum.S(coin))
	}

	for i := 0; i < p.Steps; i++ {
		QuantumStep(c, qubits)
	}

	c.Append(quantum.Measure(MeasureKey, register...))
	return c, nil
}

// prepare flips the register qubits whose bit is set in start.
func prepare(register []quantum.Qubit, start int) []quantum.Operation {
	var ops []quantum.Operation
	width := len(register)
	for j, q := range register {
		if start>>(width-1-j)&1 == 1 {
			ops = append(ops, quantum.X(q))
		}
	}
	return ops
}

// QuantumStep appends one coin flip and conditional shift: coin |1⟩ moves the
// walker one position down, coin |0⟩ one position up, both cyclic over the
// register. qubits lists the register followed by the coin; with fewer than
// two qubits there is nothing to walk and no gates are appended.
func QuantumStep(c *quantum.Circuit, qubits []quantum.Qubit) {
	n := len(qubits)
	if n < 2 {
		return
	}
	coin := qubits[n-1]

	c.Append(quantum.H(coin))

	// Decrement for coin |1⟩, borrowing from the least significant register qubit upward.
	for i := n - 1; i > 0; i-- {
		c.Append(quantum.X(qubits[i-1]).ControlledBy(controlChain(qubits, i)...))
	}

	// Increment, active for coin |0⟩: the X gates flip the coin and the
	// already-processed bits so the same control chain detects carries.
	for i := n - 1; i > 0; i-- {
		c.Append(quantum.X(qubits[i]))
		c.Append(quantum.X(qubits[i-1]).ControlledBy(controlChain(qubits, i)...))
	}

	for i := 1; i < n; i++ {
		c.Append(quantum.X(qubits[i]))
	}
}

// controlChain returns qubits n-1 down to i.
func controlChain(qubits []quantum.Qubit, i int) []quantum.Qubit {
	n := len(qubits)
	chain := make([]quantum.Qubit, 0, n-i)
	for v := n - 1; v >= i; v-- {
		chain = append(chain, qubits[v])
	}
	return chain
}

// Quantum samples the quantum walk p.Repetitions times.
func Quantum(ctx context.Context, p Params) (*Distribution, error) {
	c, err := BuildQuantumCircuit(p)
	if err != nil {
		return nil, err
	}

	res, err := quantum.NewSimulator(p.Seed).Run(ctx, c, p.Repetitions)
	if err != nil {
		return nil, fmt.Errorf("quantum walk: %w", err)
	}

	hist, err := res.Histogram(MeasureKey)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(hist))
	for outcome, n := range hist {
		counts[int(outcome)] = n
	}
	return FromCounts(KindQuantum, counts), nil
}

// QuantumExact returns the exact position probabilities of the walk, indexed
// by position, without sampling.
func QuantumExact(ctx context.Context, p Params) ([]float64, error) {
	c, err := BuildQuantumCircuit(p)
	if err != nil {
		return nil, err
	}
	sv, err := quantum.NewSimulator(p.Seed).Simulate(ctx, c)
	if err != nil {
		return nil, err
	}
	return sv.Marginal(quantum.LineQubits(p.Qubits - 1)), nil
}
