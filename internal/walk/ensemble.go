package walk

import (
	"context"
	"sync"
)

// RunAll runs every parameter set concurrently and returns the distributions
// in argument order. The first error in argument order wins.
func (r *Registry) RunAll(ctx context.Context, ps ...Params) ([]*Distribution, error) {
	results := make([]*Distribution, len(ps))
	errs := make([]error, len(ps))

	var wg sync.WaitGroup
	for i, p := range ps {
		wg.Add(1)
		go func(idx int, p Params) {
			defer wg.Done()
			results[idx], errs[idx] = r.Run(ctx, p)
		}(i, p)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
