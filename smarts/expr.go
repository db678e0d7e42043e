// Package smarts parses and evaluates the boolean pattern-combinator
// language attached to ontology concepts.
//
// A concept carries an ordered list of raw expression strings. Each
// string is either an OR branch or, when prefixed with "!", a NOT
// branch. Within one expression, atomic clauses are conjoined either by
// "." or by the positional "XXX" separator, whose first segment is
// matched stereo-specifically. A clause may carry a multiplicity
// directive written threshold-first, e.g. "3MOREc1ccccc1" (at least 3
// occurrences) or "2EXACTC(=O)O" (exactly 2).
package smarts

import (
	"strconv"
	"strings"
)

// Expression separators and directive keywords.
const (
	negationPrefix  = "!"
	stereoSeparator = "XXX"
	andSeparator    = "."
	exactKeyword    = "EXACT"
	moreKeyword     = "MORE"
)

// Verdict is the tri-state outcome of evaluating one expression. The
// conjunction rule is uniform-or-silent: mixed segment results yield
// VerdictNone, which contributes to neither the OR- nor the NOT-pool.
type Verdict int

const (
	// VerdictNone means the expression contributed no verdict.
	VerdictNone Verdict = iota
	// VerdictTrue means all clause segments matched.
	VerdictTrue
	// VerdictFalse means no clause segment matched.
	VerdictFalse
)

func (v Verdict) String() string {
	switch v {
	case VerdictTrue:
		return "true"
	case VerdictFalse:
		return "false"
	default:
		return "none"
	}
}

// Multiplicity identifies the occurrence-count directive of a clause.
type Multiplicity int

const (
	// MultiplicityNone requires a plain match (count > 0).
	MultiplicityNone Multiplicity = iota
	// MultiplicityExact requires count == Threshold.
	MultiplicityExact
	// MultiplicityMore requires count >= Threshold.
	MultiplicityMore
)

// Clause is one atomic pattern query within an expression.
type Clause struct {
	// Pattern is the raw pattern string handed to the oracle.
	Pattern string

	// Stereo forces the stereo-specific oracle variant.
	Stereo bool

	// Multiplicity selects the occurrence-count comparison; Threshold
	// is its operand. Threshold is -1 for a malformed directive, which
	// evaluates to false (fail-closed).
	Multiplicity Multiplicity
	Threshold    int
}

// Expression is the parsed form of one raw pattern-expression string.
type Expression struct {
	// Negated marks a NOT branch: the expression's verdict is
	// complemented before entering the NOT-pool.
	Negated bool

	// Clauses are the conjoined atomic queries. Nil for an expression
	// that could not be segmented; such an expression never
	// contributes a verdict.
	Clauses []Clause
}

// Parse derives the structured form of one raw expression string. It is
// O(len(raw)) and called once per evaluation; no cache is kept.
func Parse(raw string) Expression {
	var expr Expression

	body, negated := strings.CutPrefix(raw, negationPrefix)
	expr.Negated = negated

	switch {
	case strings.Contains(body, stereoSeparator):
		segments := splitTrimmed(body, stereoSeparator)
		if len(segments) < 2 {
			// One side of the positional separator is empty; the
			// expression is unusable.
			return expr
		}
		expr.Clauses = append(expr.Clauses, Clause{Pattern: segments[0], Stereo: true})
		expr.Clauses = append(expr.Clauses, parseMultiplicity(segments[1]))

	case strings.Contains(body, andSeparator):
		for _, seg := range splitTrimmed(body, andSeparator) {
			expr.Clauses = append(expr.Clauses, parseMultiplicity(seg))
		}

	default:
		expr.Clauses = append(expr.Clauses, parseMultiplicity(body))
	}

	return expr
}

// parseMultiplicity detects an EXACT or MORE directive inside a clause
// segment. The numeric threshold precedes the keyword, the inner
// pattern follows it.
func parseMultiplicity(seg string) Clause {
	for _, kw := range []struct {
		token string
		kind  Multiplicity
	}{
		{exactKeyword, MultiplicityExact},
		{moreKeyword, MultiplicityMore},
	} {
		prefix, rest, found := strings.Cut(seg, kw.token)
		if !found {
			continue
		}
		threshold, err := strconv.Atoi(strings.TrimSpace(prefix))
		if err != nil || strings.TrimSpace(rest) == "" {
			return Clause{Pattern: seg, Multiplicity: kw.kind, Threshold: -1}
		}
		return Clause{
			Pattern:      strings.TrimSpace(rest),
			Multiplicity: kw.kind,
			Threshold:    threshold,
		}
	}
	return Clause{Pattern: seg}
}

// splitTrimmed splits s on sep, trims each part and drops empty parts.
func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
