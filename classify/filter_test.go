package classify

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chemont/ontology"
)

func filterGraph(t *testing.T) *ontology.Graph {
	t.Helper()
	return buildGraph(t, []ontology.Concept{
		{ID: "R"},
		{ID: "A", Parents: []string{"R"}, Expressions: []string{"P1"}},
		{ID: "B", Parents: []string{"A"}, Expressions: []string{"P2"}},
		{ID: "G", Parents: []string{"R"}},
		{ID: "D", Parents: []string{"G"}, Expressions: []string{"P3"}},
	})
}

func setOf(t *testing.T, g *ontology.Graph, ids ...string) *roaring.Bitmap {
	t.Helper()
	set := roaring.New()
	for _, id := range ids {
		idx, ok := g.IndexOf(id)
		require.True(t, ok, id)
		set.Add(uint32(idx))
	}
	return set
}

func idsOf(g *ontology.Graph, set *roaring.Bitmap) []string {
	var ids []string
	it := set.Iterator()
	for it.HasNext() {
		ids = append(ids, g.Concept(ontology.Index(it.Next())).ID)
	}
	return ids
}

func TestAncestorConsistent(t *testing.T) {
	g := filterGraph(t)
	f := NewFilter(g)

	// The parentless root and the pattern-less grouping node are
	// scaffolding, not classifications.
	got := f.AncestorConsistent(setOf(t, g, "R", "A", "B", "G", "D"))
	assert.ElementsMatch(t, []string{"A", "B", "D"}, idsOf(g, got))

	// A concept whose ancestor is missing from the set is dropped.
	got = f.AncestorConsistent(setOf(t, g, "R", "B"))
	assert.Empty(t, idsOf(g, got))

	assert.True(t, f.AncestorConsistent(roaring.New()).IsEmpty())
}

func TestLeaves(t *testing.T) {
	g := filterGraph(t)
	f := NewFilter(g)

	// A is shadowed by its pattern-bearing descendant B; D has no
	// reported descendant and survives.
	got := f.Leaves(setOf(t, g, "R", "A", "B", "G", "D"))
	assert.ElementsMatch(t, []string{"B", "D"}, idsOf(g, got))

	// Without B, A itself is the most specific concept.
	got = f.Leaves(setOf(t, g, "R", "A", "G", "D"))
	assert.ElementsMatch(t, []string{"A", "D"}, idsOf(g, got))
}

func TestApplyModes(t *testing.T) {
	g := filterGraph(t)
	f := NewFilter(g)
	raw := setOf(t, g, "R", "A", "B")

	assert.ElementsMatch(t, []string{"A", "B"}, idsOf(g, f.Apply(raw, ModeAll)))
	assert.ElementsMatch(t, []string{"B"}, idsOf(g, f.Apply(raw, ModeLeaves)))
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"all":     ModeAll,
		"ALL":     ModeAll,
		"leaves":  ModeLeaves,
		"parents": ModeLeaves,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("bogus")
	assert.Error(t, err)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "all", ModeAll.String())
	assert.Equal(t, "leaves", ModeLeaves.String())
}
