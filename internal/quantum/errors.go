package quantum

import (
	"errors"
	"fmt"
)

var (
	// ErrQubitRange indicates an operation refers to a qubit outside the circuit.
	ErrQubitRange = errors.New("quantum: qubit index out of range")

	// ErrTooManyQubits indicates a register larger than the dense simulator supports.
	ErrTooManyQubits = errors.New("quantum: too many qubits for state vector simulation")

	// ErrNoMeasurement indicates a circuit was sampled without any measurement.
	ErrNoMeasurement = errors.New("quantum: circuit has no measurement")

	// ErrDuplicateKey indicates two measurements share a key.
	ErrDuplicateKey = errors.New("quantum: duplicate measurement key")

	// ErrUnknownKey indicates a histogram was requested for a key that was never measured.
	ErrUnknownKey = errors.New("quantum: unknown measurement key")

	// ErrNonTerminal indicates a gate acts after a measurement.
	ErrNonTerminal = errors.New("quantum: gate applied after measurement")

	// ErrInvalidOperation indicates a malformed operation (e.g. target used as control).
	ErrInvalidOperation = errors.New("quantum: invalid operation")

	// ErrRepetitions indicates a non-positive repetition count.
	ErrRepetitions = errors.New("quantum: repetitions must be positive")
)

// OperationError wraps a validation error with the offending operation.
type OperationError struct {
	Index   int
	Op      Operation
	Wrapped error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%v: op %d %s", e.Wrapped, e.Index, e.Op)
}

func (e *OperationError) Unwrap() error {
	return e.Wrapped
}
