package ruleset

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BoundRuleset is a Ruleset attached to one document. It owns four
// caches -- per-rule results, per-type maxima, per-type membership, and
// per-element annotation records -- all append-only for the lifetime of
// the binding.
//
// A BoundRuleset is not safe for concurrent use: evaluation is a
// single-threaded cooperative recursion, and the first write to a cache
// entry would race with reads. Bind one per goroutine (or per document)
// instead.
type BoundRuleset struct {
	doc      any
	inRules  []*InwardRule
	outRules map[string]*OutwardRule

	ruleCache    map[Rule]*ruleEntry
	maxCache     map[string][]*Fnode
	typeCache    map[string][]*Fnode
	elementCache map[Element]*Fnode

	log *zap.Logger
}

// ruleEntry is a rule-cache slot. inFlight marks a rule currently being
// computed; re-entering one means the dependency graph has a cycle.
type ruleEntry struct {
	inFlight bool
	vals     []any
}

// Document returns the tree this ruleset was bound against.
func (b *BoundRuleset) Document() any {
	return b.doc
}

// Get is the polymorphic query entry point. The query selects the mode:
//
//   - ByKey(k): results of the outward rule registered under k.
//   - ByNode(el): evaluates every inward rule, then returns a
//     one-element sequence holding el's annotation record -- an empty
//     record if no rule ever touched el. Correctness-first and not
//     output-scoped; meant for small, audited rule sets.
//   - ByExpression(lhs): evaluates lhs as a synthetic, throwaway
//     outward rule. Repeated identical ad-hoc queries are not
//     deduplicated across calls, since each call builds a fresh rule;
//     a known inefficiency, not a defect.
//
// Anything else, including a nil query, is ErrUnsupportedQuery.
func (b *BoundRuleset) Get(q Query) ([]any, error) {
	switch q := q.(type) {
	case byKey:
		rule, ok := b.outRules[q.key]
		if !ok {
			return nil, fmt.Errorf("%q: %w", q.key, ErrNoSuchOutput)
		}
		vals, err := b.resultsFor(rule)
		return cloneResults(vals), err
	case byNode:
		if q.element == nil {
			return nil, fmt.Errorf("nil element: %w", ErrUnsupportedQuery)
		}
		for _, rule := range b.inRules {
			if _, err := b.resultsFor(rule); err != nil {
				return nil, err
			}
		}
		return []any{b.FnodeForElement(q.element)}, nil
	case byExpression:
		if q.lhs == nil {
			return nil, fmt.Errorf("nil expression: %w", ErrUnsupportedQuery)
		}
		synthetic := NewRule(q.lhs, Out("adhoc-"+uuid.NewString()))
		vals, err := b.resultsFor(synthetic)
		return cloneResults(vals), err
	default:
		return nil, ErrUnsupportedQuery
	}
}

// RulesWhichMightAdd returns the inward rules that cannot be proven to
// never emit typ. Left-hand-side resolution uses it to prune which
// rules must run to satisfy a type-directed query; that pruning is what
// keeps evaluation lazy in the presence of irrelevant rules.
func (b *BoundRuleset) RulesWhichMightAdd(typ string) []*InwardRule {
	var out []*InwardRule
	for _, rule := range b.inRules {
		if rule.MightAdd(typ) {
			out = append(out, rule)
		}
	}
	return out
}

// FnodeForElement returns the memoized annotation record for element,
// creating an empty one on first access. At most one record exists per
// element per binding.
func (b *BoundRuleset) FnodeForElement(element Element) *Fnode {
	if fn, ok := b.elementCache[element]; ok {
		return fn
	}
	fn := newFnode(element, b)
	b.elementCache[element] = fn
	return fn
}

// cloneResults copies a cached result slice before it leaves the
// binding, so callers mutating what Get returned cannot corrupt the
// rule cache for later queries.
func cloneResults(vals []any) []any {
	if vals == nil {
		return nil
	}
	return append([]any(nil), vals...)
}

// resultsFor memoizes rule evaluation: each rule computes at most once
// per binding, and re-entering a rule mid-computation fails with
// ErrCycleDetected instead of recursing forever.
func (b *BoundRuleset) resultsFor(rule Rule) ([]any, error) {
	if entry, ok := b.ruleCache[rule]; ok {
		if entry.inFlight {
			return nil, ErrCycleDetected
		}
		b.log.Debug("rule cache hit", zap.Int("results", len(entry.vals)))
		return entry.vals, nil
	}
	entry := &ruleEntry{inFlight: true}
	b.ruleCache[rule] = entry
	vals, err := rule.eval(b)
	if err != nil {
		// Leave no poisoned entry behind; a later query reports the same
		// error instead of a stale in-flight marker.
		delete(b.ruleCache, rule)
		return nil, err
	}
	entry.vals = vals
	entry.inFlight = false
	b.log.Debug("rule evaluated", zap.Int("results", len(vals)))
	return vals, nil
}

// fnodesOfType materializes every fnode carrying typ by running the
// rules that might add it, backed by the membership cache.
func (b *BoundRuleset) fnodesOfType(typ string) ([]*Fnode, error) {
	if cached, ok := b.typeCache[typ]; ok {
		return cached, nil
	}
	set := newFnodeSet()
	for _, rule := range b.RulesWhichMightAdd(typ) {
		vals, err := b.resultsFor(rule)
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			if fn, ok := v.(*Fnode); ok && fn.HasType(typ) {
				set.add(fn)
			}
		}
	}
	b.typeCache[typ] = set.items
	return set.items, nil
}
