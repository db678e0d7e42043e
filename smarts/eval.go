package smarts

import (
	"context"
	"io"
	"log/slog"

	"github.com/hupe1980/chemont/chem"
)

// Evaluator decides match/no-match for one concept's expression list
// against one compound, delegating every structural query to the
// substructure-matching oracle.
//
// Oracle failures are recovered locally as "no match" for the failing
// clause and logged at debug level; they never abort the compound or
// the batch. An Evaluator is stateless apart from its collaborators and
// safe for concurrent use.
type Evaluator struct {
	searcher chem.Searcher
	log      *slog.Logger
}

// NewEvaluator creates an Evaluator backed by the given oracle. A nil
// logger discards diagnostics.
func NewEvaluator(searcher chem.Searcher, log *slog.Logger) *Evaluator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Evaluator{searcher: searcher, log: log}
}

// Match evaluates the ordered raw expression list of one concept
// against the compound given as SMILES.
//
// Each expression contributes its verdict (if any) to an OR-pool, or
// its complement to a NOT-pool when negated. The concept matches iff
// the NOT-pool is uniform and true (or empty) and, when the OR-pool is
// non-empty, at least one OR entry is true.
func (e *Evaluator) Match(ctx context.Context, smiles string, exprs []string) bool {
	var orPool, notPool []bool

	for _, raw := range exprs {
		expr := Parse(raw)
		v := e.evalExpression(ctx, smiles, expr)
		if v == VerdictNone {
			continue
		}
		value := v == VerdictTrue
		if expr.Negated {
			notPool = append(notPool, !value)
		} else {
			orPool = append(orPool, value)
		}
	}

	if len(notPool) > 0 {
		notVal, uniform := uniformValue(notPool)
		if !uniform || !notVal {
			return false
		}
		if len(orPool) == 0 {
			return true
		}
		return anyTrue(orPool)
	}

	return anyTrue(orPool)
}

// evalExpression applies the uniform-or-silent conjunction rule: the
// expression yields a verdict only when every clause segment evaluated
// to the same boolean, and that common value is the verdict.
func (e *Evaluator) evalExpression(ctx context.Context, smiles string, expr Expression) Verdict {
	if len(expr.Clauses) == 0 {
		return VerdictNone
	}

	results := make([]bool, len(expr.Clauses))
	for i, clause := range expr.Clauses {
		results[i] = e.evalClause(ctx, smiles, clause)
	}

	value, uniform := uniformValue(results)
	if !uniform {
		return VerdictNone
	}
	if value {
		return VerdictTrue
	}
	return VerdictFalse
}

// evalClause issues one oracle call and applies the clause's
// multiplicity comparison. Any oracle error or negative count is a
// non-match.
func (e *Evaluator) evalClause(ctx context.Context, smiles string, clause Clause) bool {
	if clause.Stereo {
		count, err := e.searcher.MatchStereo(ctx, smiles, clause.Pattern)
		if err != nil {
			e.log.Debug("stereo search failed", "pattern", clause.Pattern, "error", err)
			return false
		}
		return count > 0
	}

	switch clause.Multiplicity {
	case MultiplicityNone:
		count, err := e.searcher.Match(ctx, smiles, clause.Pattern)
		if err != nil {
			e.log.Debug("substructure search failed", "pattern", clause.Pattern, "error", err)
			return false
		}
		return count > 0

	default:
		if clause.Threshold < 0 {
			e.log.Debug("malformed multiplicity directive", "pattern", clause.Pattern)
			return false
		}
		count, err := e.searcher.MatchCount(ctx, smiles, clause.Pattern)
		if err != nil {
			e.log.Debug("occurrence count failed", "pattern", clause.Pattern, "error", err)
			return false
		}
		if count < 0 {
			return false
		}
		if clause.Multiplicity == MultiplicityExact {
			return count == clause.Threshold
		}
		return count >= clause.Threshold
	}
}

// uniformValue reports whether all entries are identical, returning the
// common value. Empty input is not uniform.
func uniformValue(values []bool) (value, uniform bool) {
	if len(values) == 0 {
		return false, false
	}
	first := values[0]
	for _, v := range values[1:] {
		if v != first {
			return false, false
		}
	}
	return first, true
}

func anyTrue(values []bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
