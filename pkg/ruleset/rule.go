package ruleset

import "fmt"

// Rule pairs a normalized left-hand side with a normalized right-hand
// side. The only implementations are InwardRule and OutwardRule; the
// variant is fixed at construction from whether the right side declares
// a terminal key.
type Rule interface {
	// Lhs returns the rule's normalized left-hand side.
	Lhs() Lhs

	// eval computes the rule's results within b. Callers go through
	// b.resultsFor, which memoizes and guards against cycles; eval
	// itself is compute-only.
	eval(b *BoundRuleset) ([]any, error)
}

// NewRule builds a rule from left- and right-hand side specifications.
// Both are normalized immediately, so malformed operands surface at
// construction (via NewRuleset) rather than at query time. A right side
// with a terminal key yields an OutwardRule; anything else an
// InwardRule.
func NewRule(lhs LhsSource, rhs RhsSource) Rule {
	if lhs == nil || rhs == nil {
		return &invalidRule{reason: "nil operand"}
	}
	l := lhs.AsLhs()
	r := rhs.AsRhs()
	if l == nil || r == nil {
		return &invalidRule{reason: "operand normalized to nil"}
	}
	if key, ok := r.OutKey(); ok {
		return &OutwardRule{lhs: l, rhs: r, key: key}
	}
	return &InwardRule{lhs: l, rhs: r}
}

// invalidRule is what NewRule returns for unusable operands. It carries
// the problem to NewRuleset, which rejects it eagerly.
type invalidRule struct {
	reason string
}

func (r *invalidRule) Lhs() Lhs { return nil }

func (r *invalidRule) eval(*BoundRuleset) ([]any, error) {
	return nil, fmt.Errorf("%s: %w", r.reason, ErrInvalidRule)
}

// InwardRule derives facts and merges them back into the shared
// annotation graph, where later rules can build on them.
type InwardRule struct {
	lhs Lhs
	rhs Rhs
}

func (r *InwardRule) Lhs() Lhs { return r.lhs }

// eval runs the fact-merging algorithm: one fact per matched fnode,
// validated by the left side, merged into the target record, with the
// resulting records deduplicated by identity in first-touch order.
func (r *InwardRule) eval(b *BoundRuleset) ([]any, error) {
	left, err := r.lhs.Fnodes(b)
	if err != nil {
		return nil, err
	}
	merged := newFnodeSet()
	for _, leftFnode := range left {
		fact, err := r.rhs.Fact(leftFnode)
		if err != nil {
			return nil, err
		}
		if err := r.lhs.CheckFact(fact); err != nil {
			return nil, err
		}

		target := leftFnode
		if fact.Element != nil {
			target = b.FnodeForElement(fact.Element)
		}

		// The output type falls back to the left side's guaranteed input
		// type when the fact does not name one.
		outType := fact.Type
		if outType == "" {
			if g, ok := r.lhs.GuaranteedType(); ok {
				outType = g
			}
		}

		if fact.ConserveScore {
			srcType, ok := r.lhs.GuaranteedType()
			if !ok {
				return nil, fmt.Errorf("fact on %v: %w", leftFnode.Element(), ErrConservationSource)
			}
			target.ConserveScoreFrom(leftFnode, srcType, outType)
		}
		if fact.HasScore {
			if outType == "" {
				return nil, fmt.Errorf("fact on %v: %w", leftFnode.Element(), ErrScoreType)
			}
			target.MultiplyScore(outType, fact.Score)
		}
		if fact.Type != "" || fact.Note != nil {
			if outType == "" {
				return nil, fmt.Errorf("fact on %v: %w", leftFnode.Element(), ErrNoteType)
			}
			target.SetNote(outType, fact.Note)
		}

		merged.add(target)
	}
	out := make([]any, len(merged.items))
	for i, fn := range merged.items {
		out[i] = fn
	}
	return out, nil
}

// MightAdd reports whether this rule could associate typ with a node it
// did not already carry. Pure; used only to prune type-directed
// queries. A type the left side already guarantees on every input is
// never "added"; beyond that, an unbounded right side is conservatively
// assumed to emit anything.
func (r *InwardRule) MightAdd(typ string) bool {
	if g, ok := r.lhs.GuaranteedType(); ok && g == typ {
		return false
	}
	possible := r.rhs.PossibleTypes()
	if len(possible) == 0 {
		return true
	}
	for _, t := range possible {
		if t == typ {
			return true
		}
	}
	return false
}

// OutwardRule exposes its matched fnodes, passed through an optional
// transform, as a named terminal output. Its results leave the
// annotation graph.
type OutwardRule struct {
	lhs Lhs
	rhs Rhs
	key string
}

func (r *OutwardRule) Lhs() Lhs { return r.lhs }

// Key returns the terminal key this rule publishes under.
func (r *OutwardRule) Key() string { return r.key }

func (r *OutwardRule) eval(b *BoundRuleset) ([]any, error) {
	fnodes, err := r.lhs.Fnodes(b)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(fnodes))
	for i, fn := range fnodes {
		out[i] = r.rhs.Through(fn)
	}
	return out, nil
}
