package quantum

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// MaxQubits bounds the dense state vector at 2^20 amplitudes.
const MaxQubits = 20

// StateVector holds 2^n amplitudes. Basis index bit (n-1-q) belongs to qubit q.
type StateVector struct {
	numQubits int
	amps      []complex128
}

// NewStateVector returns |0…0⟩ on n qubits.
func NewStateVector(n int) (*StateVector, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("%w: %d", ErrTooManyQubits, n)
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &StateVector{numQubits: n, amps: amps}, nil
}

func (s *StateVector) NumQubits() int { return s.numQubits }

// Amplitudes returns a copy of the amplitudes.
func (s *StateVector) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

func (s *StateVector) mask(q Qubit) int {
	return 1 << (s.numQubits - 1 - int(q))
}

func (s *StateVector) controlMask(controls []Qubit) int {
	m := 0
	for _, q := range controls {
		m |= s.mask(q)
	}
	return m
}

// Apply applies a unitary operation. Measurements are ignored.
func (s *StateVector) Apply(op Operation) {
	t := s.mask(op.Target)
	ctrl := s.controlMask(op.Controls)

	switch op.Gate {
	case GateX:
		for i := range s.amps {
			if i&t == 0 && i&ctrl == ctrl {
				j := i | t
				s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
			}
		}
	case GateH:
		for i := range s.amps {
			if i&t == 0 && i&ctrl == ctrl {
				j := i | t
				a, b := s.amps[i], s.amps[j]
				s.amps[i] = (a + b) * math.Sqrt2 / 2
				s.amps[j] = (a - b) * math.Sqrt2 / 2
			}
		}
	case GateS:
		for i := range s.amps {
			if i&t != 0 && i&ctrl == ctrl {
				s.amps[i] *= 1i
			}
		}
	}
}

// Probabilities returns |amp|² for every basis state.
func (s *StateVector) Probabilities() []float64 {
	p := make([]float64, len(s.amps))
	for i, a := range s.amps {
		r := cmplx.Abs(a)
		p[i] = r * r
	}
	return p
}

// Norm returns the total probability, 1 for a valid state.
func (s *StateVector) Norm() float64 {
	return floats.Sum(s.Probabilities())
}

// Marginal returns the outcome distribution of qs, indexed by the
// measurement key with qs[0] as the most significant bit.
func (s *StateVector) Marginal(qs []Qubit) []float64 {
	out := make([]float64, 1<<len(qs))
	for i, p := range s.Probabilities() {
		out[s.extract(i, qs)] += p
	}
	return out
}

func (s *StateVector) extract(index int, qs []Qubit) int {
	key := 0
	for _, q := range qs {
		key <<= 1
		if index&s.mask(q) != 0 {
			key |= 1
		}
	}
	return key
}
