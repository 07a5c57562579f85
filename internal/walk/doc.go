// Package walk computes the position distribution of 1-D walks.
//
// Two kinds are provided:
//
//   - quantum: a discrete-time coined walk built as a gate circuit (Hadamard
//     coin, conditional cyclic shift) and sampled by [quantum.Simulator]
//   - random: a classical walk driven by a weighted coin
//
// Both return a [Distribution]: positions in ascending order with their
// sampled counts and normalized probabilities.
package walk
