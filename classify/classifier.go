// Package classify implements the hierarchical classification engine:
// the per-compound top-down traversal of the ontology graph, the
// bounded worker pool that fans it out across a batch, and the
// leaf-reduction post-filter applied before reporting.
package classify

import (
	"context"
	"io"
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/chemont/ontology"
	"github.com/hupe1980/chemont/smarts"
)

// Classifier assigns one compound to ontology concepts by walking the
// graph top-down, one hierarchy level per round. The graph and the
// evaluator's oracle are shared read-only state; a single Classifier is
// safe for concurrent use across compounds.
type Classifier struct {
	graph *ontology.Graph
	eval  *smarts.Evaluator
	log   *slog.Logger
}

// NewClassifier creates a Classifier over the given graph and
// expression evaluator. A nil logger discards diagnostics.
func NewClassifier(graph *ontology.Graph, eval *smarts.Evaluator, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Classifier{graph: graph, eval: eval, log: log}
}

// Assign runs the level-synchronized traversal for one compound and
// returns the set of assigned concept indices.
//
// Each round visits the current frontier: a concept is skipped while
// any of its parents is unassigned (vacuously true for the root);
// concepts with expressions are evaluated against the compound;
// pattern-less concepts are auto-assigned as structural grouping nodes
// when the graph carries child adjacency. Children are always enqueued
// for the next round regardless of the assignment outcome - their own
// parent gate is what blocks propagation past a failed concept.
//
// Rounds are strictly sequential: round N+1 depends on round N's
// assignments. Context cancellation stops the walk after the current
// round; the partial set is returned.
func (c *Classifier) Assign(ctx context.Context, smiles string) *roaring.Bitmap {
	assigned := roaring.New()
	frontier := []ontology.Index{c.graph.Root()}

	for len(frontier) > 0 {
		if ctx.Err() != nil {
			return assigned
		}

		next := roaring.New()
		for _, idx := range frontier {
			if assigned.Contains(uint32(idx)) {
				continue
			}
			if !c.parentsAssigned(idx, assigned) {
				continue
			}

			concept := c.graph.Concept(idx)
			if concept.HasExpressions() {
				if c.eval.Match(ctx, smiles, concept.Expressions) {
					assigned.Add(uint32(idx))
				}
			} else if c.graph.HasChildAdjacency() {
				assigned.Add(uint32(idx))
			}

			for _, child := range c.graph.Children(idx) {
				next.Add(uint32(child))
			}
		}

		frontier = frontier[:0]
		it := next.Iterator()
		for it.HasNext() {
			frontier = append(frontier, ontology.Index(it.Next()))
		}
	}

	return assigned
}

// parentsAssigned is the traversal gate: every parent of idx must
// already be in the assigned set. Concepts without parents pass.
func (c *Classifier) parentsAssigned(idx ontology.Index, assigned *roaring.Bitmap) bool {
	for _, parent := range c.graph.Parents(idx) {
		if !assigned.Contains(uint32(parent)) {
			return false
		}
	}
	return true
}
