package ruleset

// Shared test fixtures. The engine is tree-agnostic; these run it over
// plain in-memory nodes instead of a real document.

// testNode is a minimal identity-comparable document node.
type testNode struct {
	name string
}

func (n *testNode) String() string { return n.name }

// elementsLhs matches a fixed set of elements, like a raw selector
// would. It guarantees no type.
type elementsLhs struct {
	elements []Element
}

func selectElements(elements ...Element) *elementsLhs {
	return &elementsLhs{elements: elements}
}

func (l *elementsLhs) AsLhs() Lhs { return l }

func (l *elementsLhs) Fnodes(b *BoundRuleset) ([]*Fnode, error) {
	out := make([]*Fnode, len(l.elements))
	for i, el := range l.elements {
		out[i] = b.FnodeForElement(el)
	}
	return out, nil
}

func (l *elementsLhs) CheckFact(Fact) error { return nil }

func (l *elementsLhs) GuaranteedType() (string, bool) { return "", false }

// countingRhs wraps another Rhs and counts Fact invocations, to verify
// rules are computed at most once per binding.
type countingRhs struct {
	inwardSide
	inner Rhs
	calls int
}

func counting(inner RhsSource) *countingRhs {
	return &countingRhs{inner: inner.AsRhs()}
}

func (r *countingRhs) AsRhs() Rhs { return r }

func (r *countingRhs) Fact(fn *Fnode) (Fact, error) {
	r.calls++
	return r.inner.Fact(fn)
}

func (r *countingRhs) PossibleTypes() []string { return r.inner.PossibleTypes() }
