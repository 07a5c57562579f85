package walk

import (
	"context"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// cancelCheck is how many walks run between context checks.
const cancelCheck = 1024

// RandomWalk moves a walker from start for steps steps: +1 with probability
// bias, -1 otherwise.
func RandomWalk(src rand.Source, bias float64, steps, start int) int {
	coin := distuv.Bernoulli{P: bias, Src: src}
	pos := start
	for j := 0; j < steps; j++ {
		pos += 2*int(coin.Rand()) - 1
	}
	return pos
}

// Random runs p.Repetitions independent walks and bins the final positions
// over [start-steps, start+steps], empty bins included.
func Random(ctx context.Context, p Params) (*Distribution, error) {
	p.Kind = KindRandom
	if err := p.validateRandom(); err != nil {
		return nil, err
	}
	start := 0
	if p.Start != nil {
		start = *p.Start
	}

	src := rand.NewPCG(p.Seed, p.Seed^0x2545f4914f6cdd1d)
	lo := start - p.Steps
	instances := make([]int, 2*p.Steps+1)
	for k := 0; k < p.Repetitions; k++ {
		if k%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		instances[RandomWalk(src, p.Bias, p.Steps, start)-lo]++
	}

	positions := make([]int, len(instances))
	for i := range positions {
		positions[i] = lo + i
	}
	return &Distribution{
		Kind:          KindRandom,
		Positions:     positions,
		Counts:        instances,
		Probabilities: Normalize(instances),
	}, nil
}
