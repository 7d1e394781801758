package shapes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Library is the ordered list of shapes a morph walks through, one per section.
// Sets are shared; callers must not write into them.
type Library struct {
	Budget int
	Kinds  []string
	Sets   []ParticleSet
}

// Build generates every kind concurrently and checks that all sets share the
// budget length.
func Build(ctx context.Context, n int, kinds []string) (*Library, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBudget, n)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("shapes: empty kind list")
	}

	lib := &Library{
		Budget: n,
		Kinds:  append([]string(nil), kinds...),
		Sets:   make([]ParticleSet, len(kinds)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := Generate(kind, n)
			if err != nil {
				return fmt.Errorf("section %d: %w", i, err)
			}
			if err := set.Validate(n); err != nil {
				return fmt.Errorf("section %d (%s): %w", i, kind, err)
			}
			lib.Sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) Len() int { return len(l.Sets) }

// Shape returns the set at i, clamped to the valid range.
func (l *Library) Shape(i int) ParticleSet {
	if i < 0 {
		i = 0
	}
	if i >= len(l.Sets) {
		i = len(l.Sets) - 1
	}
	return l.Sets[i]
}

type cacheKey struct {
	budget int
	kinds  string
}

var (
	cacheMu sync.Mutex
	cache   = map[cacheKey]*Library{}
)

// Cached returns the library for (n, kinds), building it on first use.
func Cached(ctx context.Context, n int, kinds []string) (*Library, error) {
	key := cacheKey{budget: n, kinds: strings.Join(kinds, "\x00")}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if lib, ok := cache[key]; ok {
		return lib, nil
	}
	lib, err := Build(ctx, n, kinds)
	if err != nil {
		return nil, err
	}
	cache[key] = lib
	return lib, nil
}
