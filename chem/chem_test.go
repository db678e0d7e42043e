package chem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestResolveCaseInsensitive(t *testing.T) {
	for _, name := range []string{"literal", "LITERAL", "Literal"} {
		m, err := Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, ModuleLiteral, m.Name)
		assert.Equal(t, "literal_smarts", m.SmartsTag)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("nope")

	var unknown *ErrUnknownModule
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nope", unknown.Name)
	assert.Contains(t, err.Error(), ModuleLiteral)
}

func TestKnownContainsLiteral(t *testing.T) {
	assert.Contains(t, Known(), ModuleLiteral)
}

func TestLiteralSearcher(t *testing.T) {
	m, err := Resolve(ModuleLiteral)
	require.NoError(t, err)
	s, err := m.New(Options{})
	require.NoError(t, err)

	ctx := context.Background()
	smiles := "CC(=O)OC(=O)C"

	count, err := s.Match(ctx, smiles, "C(=O)")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = s.Match(ctx, smiles, "[#7]")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = s.MatchCount(ctx, smiles, "C(=O)")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = s.MatchCount(ctx, smiles, "")
	require.NoError(t, err)
	assert.Equal(t, 0, count, "empty pattern never counts")

	count, err = s.MatchStereo(ctx, smiles, "OC")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestThrottled(t *testing.T) {
	inner := &LiteralSearcher{}

	assert.Same(t, Searcher(inner), Throttled(inner, nil), "nil limiter is a no-op")

	s := Throttled(inner, rate.NewLimiter(rate.Inf, 1))
	count, err := s.Match(context.Background(), "CCO", "CO")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestThrottledHonorsContext(t *testing.T) {
	// Burst 1 with a tiny rate: the second call must block until the
	// canceled context aborts the wait.
	s := Throttled(&LiteralSearcher{}, rate.NewLimiter(rate.Limit(0.001), 1))

	ctx, cancel := context.WithCancel(context.Background())
	_, err := s.Match(ctx, "CCO", "CO")
	require.NoError(t, err)

	cancel()
	_, err = s.Match(ctx, "CCO", "CO")
	assert.Error(t, err)
}
