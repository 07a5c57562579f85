package quantum

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// sampleChunk is how many repetitions are drawn between context checks.
const sampleChunk = 4096

// Simulator runs circuits on a dense state vector and samples terminal
// measurements. Not thread-safe: the random source is shared across runs.
type Simulator struct {
	src rand.Source
}

func NewSimulator(seed uint64) *Simulator {
	return &Simulator{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

// Simulate applies every unitary operation of c and returns the final state.
func (s *Simulator) Simulate(ctx context.Context, c *Circuit) (*StateVector, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	sv, err := NewStateVector(c.NumQubits())
	if err != nil {
		return nil, err
	}
	for _, op := range c.ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if op.IsMeasurement() {
			continue
		}
		sv.Apply(op)
	}
	return sv, nil
}

// Run simulates c once and draws repetitions joint samples of all
// measurements.
func (s *Simulator) Run(ctx context.Context, c *Circuit, repetitions int) (*Result, error) {
	if repetitions < 1 {
		return nil, fmt.Errorf("%w: %d", ErrRepetitions, repetitions)
	}
	measurements := c.Measurements()
	if len(measurements) == 0 {
		return nil, ErrNoMeasurement
	}

	sv, err := s.Simulate(ctx, c)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Repetitions: repetitions,
		histograms:  make(map[string]map[uint64]int, len(measurements)),
	}
	for _, m := range measurements {
		res.histograms[m.Key] = make(map[uint64]int)
	}

	// Sample full basis states so that correlations across keys survive.
	basis := make(map[int]int)
	cat := distuv.NewCategorical(sv.Probabilities(), s.src)
	for r := 0; r < repetitions; r++ {
		if r%sampleChunk == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		basis[int(cat.Rand())]++
	}

	for idx, n := range basis {
		for _, m := range measurements {
			res.histograms[m.Key][uint64(sv.extract(idx, m.Qubits))] += n
		}
	}
	return res, nil
}

// Result holds the sampled outcome counts of one run.
type Result struct {
	Repetitions int
	histograms  map[string]map[uint64]int
}

// Keys returns the measurement keys in lexical order.
func (r *Result) Keys() []string {
	keys := make([]string, 0, len(r.histograms))
	for k := range r.histograms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Histogram returns a copy of the outcome counts for key.
func (r *Result) Histogram(key string) (map[uint64]int, error) {
	h, ok := r.histograms[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	out := make(map[uint64]int, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out, nil
}
