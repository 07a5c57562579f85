// Package quantum provides a small gate-level circuit simulator.
//
// The package exposes the minimal surface needed to run textbook circuits:
//
//   - [Circuit]: ordered operations over a line of qubits
//   - [StateVector]: dense complex amplitudes for n qubits
//   - [Simulator]: applies a circuit and samples terminal measurements
//   - [Result]: per-key outcome histograms
//
// # Bit Order
//
// Qubit 0 is the most significant bit of every measurement key, so measuring
// qubits (q0, q1, q2) after X(q0) yields the key 0b100.
//
// # Example
//
//	c := quantum.NewCircuit(2)
//	c.Append(quantum.H(0), quantum.X(1).ControlledBy(0))
//	c.Append(quantum.Measure("m", 0, 1))
//	res, _ := quantum.NewSimulator(42).Run(ctx, c, 1000)
//	hist, _ := res.Histogram("m")
package quantum
