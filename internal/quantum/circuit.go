package quantum

import (
	"fmt"
	"sort"
	"strings"
)

// Qubit is the index of a qubit on a 1×n line.
type Qubit int

func (q Qubit) String() string { return fmt.Sprintf("q%d", int(q)) }

// LineQubits returns qubits 0..n-1.
func LineQubits(n int) []Qubit {
	qs := make([]Qubit, n)
	for i := range qs {
		qs[i] = Qubit(i)
	}
	return qs
}

type GateKind int

const (
	GateX GateKind = iota
	GateH
	GateS
	GateMeasure
)

func (k GateKind) String() string {
	switch k {
	case GateX:
		return "X"
	case GateH:
		return "H"
	case GateS:
		return "S"
	case GateMeasure:
		return "M"
	}
	return "?"
}

// Operation is a single gate application. Measurements use Key and Qubits;
// all other gates use Target and optional Controls.
type Operation struct {
	Gate     GateKind
	Target   Qubit
	Controls []Qubit
	Key      string
	Qubits   []Qubit
}

func X(q Qubit) Operation { return Operation{Gate: GateX, Target: q} }
func H(q Qubit) Operation { return Operation{Gate: GateH, Target: q} }
func S(q Qubit) Operation { return Operation{Gate: GateS, Target: q} }

// Measure records the computational-basis value of qs under key, with qs[0]
// as the most significant bit.
func Measure(key string, qs ...Qubit) Operation {
	cp := make([]Qubit, len(qs))
	copy(cp, qs)
	return Operation{Gate: GateMeasure, Key: key, Qubits: cp}
}

// ControlledBy returns a copy of op that only acts when every control is |1⟩.
func (op Operation) ControlledBy(controls ...Qubit) Operation {
	cp := make([]Qubit, 0, len(op.Controls)+len(controls))
	cp = append(cp, op.Controls...)
	cp = append(cp, controls...)
	op.Controls = cp
	return op
}

func (op Operation) IsMeasurement() bool { return op.Gate == GateMeasure }

func (op Operation) String() string {
	if op.Gate == GateMeasure {
		return fmt.Sprintf("M[%s](%s)", op.Key, joinQubits(op.Qubits))
	}
	s := fmt.Sprintf("%s(%s)", op.Gate, op.Target)
	if len(op.Controls) > 0 {
		s += " ctrl[" + joinQubits(op.Controls) + "]"
	}
	return s
}

func joinQubits(qs []Qubit) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = q.String()
	}
	return strings.Join(parts, ",")
}

// Circuit is an ordered list of operations over a fixed number of qubits.
// Not safe for concurrent mutation.
type Circuit struct {
	numQubits int
	ops       []Operation
}

func NewCircuit(numQubits int) *Circuit {
	return &Circuit{numQubits: numQubits}
}

func (c *Circuit) NumQubits() int { return c.numQubits }

func (c *Circuit) Len() int { return len(c.ops) }

func (c *Circuit) Append(ops ...Operation) {
	c.ops = append(c.ops, ops...)
}

// Operations returns a copy of the operation list.
func (c *Circuit) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	copy(out, c.ops)
	return out
}

// Measurements returns the measurement operations in circuit order.
func (c *Circuit) Measurements() []Operation {
	var out []Operation
	for _, op := range c.ops {
		if op.IsMeasurement() {
			out = append(out, op)
		}
	}
	return out
}

// Validate checks qubit ranges, control/target overlap, key uniqueness and
// that measurements are terminal.
func (c *Circuit) Validate() error {
	if c.numQubits > MaxQubits {
		return fmt.Errorf("%w: %d > %d", ErrTooManyQubits, c.numQubits, MaxQubits)
	}
	keys := make(map[string]bool)
	measured := false
	for i, op := range c.ops {
		if op.IsMeasurement() {
			if keys[op.Key] {
				return &OperationError{Index: i, Op: op, Wrapped: ErrDuplicateKey}
			}
			keys[op.Key] = true
			if len(op.Qubits) == 0 {
				return &OperationError{Index: i, Op: op, Wrapped: ErrInvalidOperation}
			}
			for _, q := range op.Qubits {
				if !c.inRange(q) {
					return &OperationError{Index: i, Op: op, Wrapped: ErrQubitRange}
				}
			}
			measured = true
			continue
		}
		if measured {
			return &OperationError{Index: i, Op: op, Wrapped: ErrNonTerminal}
		}
		if !c.inRange(op.Target) {
			return &OperationError{Index: i, Op: op, Wrapped: ErrQubitRange}
		}
		for _, q := range op.Controls {
			if !c.inRange(q) {
				return &OperationError{Index: i, Op: op, Wrapped: ErrQubitRange}
			}
			if q == op.Target {
				return &OperationError{Index: i, Op: op, Wrapped: ErrInvalidOperation}
			}
		}
	}
	return nil
}

func (c *Circuit) inRange(q Qubit) bool {
	return q >= 0 && int(q) < c.numQubits
}

// Stats summarizes the gate content of a circuit.
type Stats struct {
	Qubits       int
	Operations   int
	Gates        map[string]int
	Controlled   int
	MaxControls  int
	Measurements int
}

func (c *Circuit) Stats() Stats {
	st := Stats{Qubits: c.numQubits, Operations: len(c.ops), Gates: make(map[string]int)}
	for _, op := range c.ops {
		if op.IsMeasurement() {
			st.Measurements++
			continue
		}
		st.Gates[op.Gate.String()]++
		if n := len(op.Controls); n > 0 {
			st.Controlled++
			if n > st.MaxControls {
				st.MaxControls = n
			}
		}
	}
	return st
}

func (s Stats) String() string {
	names := make([]string, 0, len(s.Gates))
	for name := range s.Gates {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, s.Gates[name])
	}
	return fmt.Sprintf("qubits=%d ops=%d gates{%s} controlled=%d max_controls=%d measurements=%d",
		s.Qubits, s.Operations, strings.Join(parts, " "), s.Controlled, s.MaxControls, s.Measurements)
}

// String renders one operation per line, numbered.
func (c *Circuit) String() string {
	var sb strings.Builder
	width := len(fmt.Sprint(len(c.ops)))
	for i, op := range c.ops {
		fmt.Fprintf(&sb, "%*d: %s\n", width, i, op)
	}
	return sb.String()
}
