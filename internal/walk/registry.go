package walk

import (
	"context"
	"fmt"
	"sort"
)

// Walker computes a distribution for validated parameters.
type Walker func(ctx context.Context, p Params) (*Distribution, error)

type Registry struct {
	walkers map[Kind]Walker
}

func NewRegistry() *Registry {
	r := &Registry{walkers: make(map[Kind]Walker)}
	r.walkers[KindQuantum] = Quantum
	r.walkers[KindRandom] = Random
	return r
}

// Register adds or replaces the walker for kind.
func (r *Registry) Register(kind Kind, w Walker) {
	r.walkers[kind] = w
}

// Get looks up a walker by case-insensitive name.
func (r *Registry) Get(name string) (Walker, error) {
	kind, err := ParseKind(name)
	if err != nil {
		if w, ok := r.walkers[Kind(name)]; ok {
			return w, nil
		}
		return nil, err
	}
	w, ok := r.walkers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWalk, name)
	}
	return w, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.walkers))
	for k := range r.walkers {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Run dispatches p to the walker registered for p.Kind.
func (r *Registry) Run(ctx context.Context, p Params) (*Distribution, error) {
	w, err := r.Get(string(p.Kind))
	if err != nil {
		return nil, err
	}
	return w(ctx, p)
}
