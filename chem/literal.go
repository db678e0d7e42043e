package chem

import (
	"context"
	"strings"
)

// ModuleLiteral is the name of the built-in literal matcher.
const ModuleLiteral = "literal"

func init() {
	Register(Module{
		Name:      ModuleLiteral,
		SmartsTag: "literal_smarts",
		New: func(opts Options) (Searcher, error) {
			return &LiteralSearcher{}, nil
		},
	})
}

// LiteralSearcher matches patterns by plain substring search on the
// SMILES text. It performs no chemistry at all and exists as a
// dependency-free oracle for tests, examples and pipeline smoke runs;
// its occurrence count is the number of non-overlapping occurrences.
type LiteralSearcher struct{}

var _ Searcher = (*LiteralSearcher)(nil)

// Match reports 1 if pattern occurs in smiles, else 0.
func (s *LiteralSearcher) Match(_ context.Context, smiles, pattern string) (int, error) {
	if strings.Contains(smiles, pattern) {
		return 1, nil
	}
	return 0, nil
}

// MatchCount returns the number of non-overlapping occurrences of
// pattern in smiles.
func (s *LiteralSearcher) MatchCount(_ context.Context, smiles, pattern string) (int, error) {
	if pattern == "" {
		return 0, nil
	}
	return strings.Count(smiles, pattern), nil
}

// MatchStereo is identical to Match; the literal matcher has no notion
// of stereochemistry.
func (s *LiteralSearcher) MatchStereo(ctx context.Context, smiles, pattern string) (int, error) {
	return s.Match(ctx, smiles, pattern)
}
