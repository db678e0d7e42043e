package ontology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConcepts() []Concept {
	return []Concept{
		{ID: "R"},
		{ID: "A", Parents: []string{"R"}, Expressions: []string{"P1"}},
		{ID: "B", Parents: []string{"R"}, Expressions: []string{"P2"}},
		{ID: "C", Parents: []string{"A", "B"}, Expressions: []string{"P3"}},
	}
}

func TestBuildRootDetection(t *testing.T) {
	g, err := Build(testConcepts())
	require.NoError(t, err)

	root := g.Root()
	assert.Equal(t, "R", g.Concept(root).ID)
	assert.Empty(t, g.Parents(root))
}

func TestBuildNoRoot(t *testing.T) {
	// Every concept has a parent; the cycle leaves no root.
	_, err := Build([]Concept{
		{ID: "A", Parents: []string{"B"}},
		{ID: "B", Parents: []string{"A"}},
	})
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestBuildMultipleRoots(t *testing.T) {
	_, err := Build([]Concept{
		{ID: "R1"},
		{ID: "R2"},
		{ID: "A", Parents: []string{"R1"}},
	})

	var multi *ErrMultipleRoots
	require.True(t, errors.As(err, &multi))
	assert.Equal(t, []string{"R1", "R2"}, multi.IDs)
}

func TestBuildDuplicateConcept(t *testing.T) {
	_, err := Build([]Concept{
		{ID: "R"},
		{ID: "A", Parents: []string{"R"}},
		{ID: "A", Parents: []string{"R"}},
	})

	var dup *ErrDuplicateConcept
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "A", dup.ID)
}

func TestChildAdjacencyDerivedFromParents(t *testing.T) {
	g, err := Build(testConcepts())
	require.NoError(t, err)
	require.True(t, g.HasChildAdjacency())

	root := g.Root()
	children := g.Children(root)
	require.Len(t, children, 2)

	ids := []string{g.Concept(children[0]).ID, g.Concept(children[1]).ID}
	assert.ElementsMatch(t, []string{"A", "B"}, ids)
}

func TestDeclaredChildAdjacencyWins(t *testing.T) {
	g, err := Build([]Concept{
		{ID: "R", Children: []string{"A"}},
		{ID: "A", Parents: []string{"R"}},
		{ID: "B", Parents: []string{"R"}},
	})
	require.NoError(t, err)

	// B is not declared as a child, so the declared adjacency is kept
	// as-is rather than re-derived.
	children := g.Children(g.Root())
	require.Len(t, children, 1)
	assert.Equal(t, "A", g.Concept(children[0]).ID)
}

func TestAncestorsClosure(t *testing.T) {
	g, err := Build(testConcepts())
	require.NoError(t, err)

	c, ok := g.IndexOf("C")
	require.True(t, ok)

	anc := g.Ancestors(c)
	assert.Equal(t, uint64(3), anc.GetCardinality())
	for _, id := range []string{"A", "B", "R"} {
		idx, ok := g.IndexOf(id)
		require.True(t, ok)
		assert.True(t, anc.Contains(uint32(idx)), "missing ancestor %s", id)
	}
	assert.False(t, anc.Contains(uint32(c)), "closure must exclude self")

	root := g.Root()
	assert.True(t, g.Ancestors(root).IsEmpty())
}

func TestDescendantsClosure(t *testing.T) {
	g, err := Build(testConcepts())
	require.NoError(t, err)

	desc := g.Descendants(g.Root())
	assert.Equal(t, uint64(3), desc.GetCardinality())

	c, _ := g.IndexOf("C")
	assert.True(t, g.Descendants(c).IsEmpty())
}

func TestUnknownReferencesIgnored(t *testing.T) {
	g, err := Build([]Concept{
		{ID: "R"},
		{ID: "A", Parents: []string{"R", "GONE"}},
	})
	require.NoError(t, err)

	a, _ := g.IndexOf("A")
	assert.Len(t, g.Parents(a), 1)
}
