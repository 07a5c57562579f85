package walk

import (
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Distribution is a histogram of final walker positions. Positions are
// strictly ascending and the three slices are parallel.
type Distribution struct {
	Kind          Kind      `json:"kind"`
	Positions     []int     `json:"positions"`
	Counts        []int     `json:"counts"`
	Probabilities []float64 `json:"probabilities"`
}

// FromCounts orders outcome counts by ascending position and normalizes them.
func FromCounts(kind Kind, counts map[int]int) *Distribution {
	positions := slices.Sorted(maps.Keys(counts))
	c := make([]int, len(positions))
	for i, pos := range positions {
		c[i] = counts[pos]
	}
	return &Distribution{
		Kind:          kind,
		Positions:     positions,
		Counts:        c,
		Probabilities: Normalize(c),
	}
}

// Normalize divides each count by the total. An all-zero input yields zeros.
func Normalize(counts []int) []float64 {
	p := make([]float64, len(counts))
	for i, n := range counts {
		p[i] = float64(n)
	}
	total := floats.Sum(p)
	if total == 0 {
		return p
	}
	floats.Scale(1/total, p)
	return p
}

func (d *Distribution) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Positions)
}

func (d *Distribution) Empty() bool { return d.Len() == 0 }

// Total is the number of samples behind the distribution.
func (d *Distribution) Total() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, n := range d.Counts {
		total += n
	}
	return total
}

// Dense fills every missing position between the first and last with a zero
// bin. Charts index by slot, so gaps would otherwise distort the x axis.
func (d *Distribution) Dense() *Distribution {
	if d.Empty() {
		return &Distribution{Kind: d.kind()}
	}
	lo, hi := d.Positions[0], d.Positions[len(d.Positions)-1]
	out := &Distribution{
		Kind:          d.Kind,
		Positions:     make([]int, hi-lo+1),
		Counts:        make([]int, hi-lo+1),
		Probabilities: make([]float64, hi-lo+1),
	}
	for i := range out.Positions {
		out.Positions[i] = lo + i
	}
	for i, pos := range d.Positions {
		out.Counts[pos-lo] = d.Counts[i]
		out.Probabilities[pos-lo] = d.Probabilities[i]
	}
	return out
}

func (d *Distribution) kind() Kind {
	if d == nil {
		return ""
	}
	return d.Kind
}

// Probability returns the probability at pos, zero when absent.
func (d *Distribution) Probability(pos int) float64 {
	if d.Empty() {
		return 0
	}
	if i, ok := slices.BinarySearch(d.Positions, pos); ok {
		return d.Probabilities[i]
	}
	return 0
}

// Summary holds moments of a distribution.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Mode   int     `json:"mode"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// Stats computes the sample mean and standard deviation of the positions,
// weighted by their counts.
func (d *Distribution) Stats() Summary {
	if d.Empty() {
		return Summary{}
	}
	x := make([]float64, len(d.Positions))
	w := make([]float64, len(d.Counts))
	for i := range d.Positions {
		x[i] = float64(d.Positions[i])
		w[i] = float64(d.Counts[i])
	}
	s := Summary{
		Mode: d.Positions[floats.MaxIdx(w)],
		Min:  d.Positions[0],
		Max:  d.Positions[len(d.Positions)-1],
	}
	if floats.Sum(w) == 0 {
		return s
	}
	s.Mean = stat.Mean(x, w)
	if floats.Sum(w) > 1 {
		s.StdDev = stat.StdDev(x, w)
	}
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	return s
}
