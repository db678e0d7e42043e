package chem

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled wraps a Searcher so that every oracle call first waits on
// the provided limiter. Useful for remote or license-metered chemistry
// backends; a nil limiter returns the Searcher unchanged.
func Throttled(s Searcher, limiter *rate.Limiter) Searcher {
	if limiter == nil {
		return s
	}
	return &throttledSearcher{inner: s, limiter: limiter}
}

type throttledSearcher struct {
	inner   Searcher
	limiter *rate.Limiter
}

func (t *throttledSearcher) Match(ctx context.Context, smiles, pattern string) (int, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return -1, err
	}
	return t.inner.Match(ctx, smiles, pattern)
}

func (t *throttledSearcher) MatchCount(ctx context.Context, smiles, pattern string) (int, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return -1, err
	}
	return t.inner.MatchCount(ctx, smiles, pattern)
}

func (t *throttledSearcher) MatchStereo(ctx context.Context, smiles, pattern string) (int, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return -1, err
	}
	return t.inner.MatchStereo(ctx, smiles, pattern)
}
