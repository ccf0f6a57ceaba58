// Package ruleset is a lazy, memoized, forward-chaining rule engine.
// Declarative rules derive annotated facts -- category types, numeric
// scores, free-form notes -- on the nodes of an input tree. Inward
// rules feed derived facts back into a shared per-node annotation
// graph; outward rules expose subsets of it as named terminal outputs.
//
// Evaluation is pull-based: binding a Ruleset to a document yields a
// BoundRuleset, and queries against it force exactly the rules
// reachable through left-hand-side dependency resolution, each
// evaluated at most once per binding.
package ruleset

import (
	"fmt"

	"go.uber.org/zap"
)

// Ruleset is an unbound, immutable collection of rules, partitioned at
// construction into an ordered inward list and a keyed outward table.
// It performs no computation itself; bind it to a document with Against
// to query it.
type Ruleset struct {
	inRules  []*InwardRule
	outRules map[string]*OutwardRule
}

// NewRuleset collects rules into a Ruleset. Inward rules keep their
// given order; outward rules are keyed by their terminal key, and a
// later registration under an existing key overwrites the earlier one.
// Anything that is not a well-formed rule fails here, so configuration
// mistakes surface before the first query.
func NewRuleset(rules ...Rule) (*Ruleset, error) {
	rs := &Ruleset{
		outRules: make(map[string]*OutwardRule),
	}
	for i, r := range rules {
		switch r := r.(type) {
		case *InwardRule:
			rs.inRules = append(rs.inRules, r)
		case *OutwardRule:
			rs.outRules[r.Key()] = r
		case *invalidRule:
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.reason, ErrInvalidRule)
		default:
			return nil, fmt.Errorf("rule %d: %w", i, ErrInvalidRule)
		}
	}
	return rs, nil
}

// BindOption configures a BoundRuleset at binding time.
type BindOption func(*BoundRuleset)

// WithLogger attaches a logger for evaluation tracing. The default is a
// no-op logger.
func WithLogger(log *zap.Logger) BindOption {
	return func(b *BoundRuleset) {
		if log != nil {
			b.log = log
		}
	}
}

// Against binds the ruleset to one document, returning the sole entry
// point for querying results over it. The rule collections are shared
// with the Ruleset, not copied; the caches start empty and live as long
// as the binding.
func (rs *Ruleset) Against(doc any, opts ...BindOption) *BoundRuleset {
	b := &BoundRuleset{
		doc:          doc,
		inRules:      rs.inRules,
		outRules:     rs.outRules,
		ruleCache:    make(map[Rule]*ruleEntry),
		maxCache:     make(map[string][]*Fnode),
		typeCache:    make(map[string][]*Fnode),
		elementCache: make(map[Element]*Fnode),
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
