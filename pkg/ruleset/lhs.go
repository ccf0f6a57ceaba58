package ruleset

// Lhs is the canonical left-hand side of a rule: it selects the fnodes
// a rule runs against and constrains the facts the rule may emit.
type Lhs interface {
	// Fnodes returns the annotation records this side matches within b.
	// Resolving them may recursively evaluate other rules; that
	// recursion, not a scheduler, is what realizes the forward-chaining
	// fixpoint.
	Fnodes(b *BoundRuleset) ([]*Fnode, error)

	// CheckFact rejects facts that are malformed for this matcher kind.
	CheckFact(f Fact) error

	// GuaranteedType returns the single fact type this side guarantees
	// every matched fnode to carry, if there is one.
	GuaranteedType() (string, bool)
}

// LhsSource is anything convertible to a canonical Lhs. Conversion
// happens once, at rule construction, so shorthand mistakes surface
// there rather than at query time. Every Lhs in this package is its own
// source.
type LhsSource interface {
	AsLhs() Lhs
}

// TypeLhs matches every fnode currently carrying a given fact type. It
// is the tree-agnostic half of the selector vocabulary; tree-specific
// selectors (tag matchers and the like) live with their document
// adapters.
type TypeLhs struct {
	typ string
}

// Type returns a left-hand side matching fnodes of the given type.
func Type(typ string) *TypeLhs {
	return &TypeLhs{typ: typ}
}

// AsLhs implements LhsSource.
func (l *TypeLhs) AsLhs() Lhs { return l }

// Max narrows the match to the highest-scoring fnode of the type.
func (l *TypeLhs) Max() *TypeMaxLhs {
	return &TypeMaxLhs{typ: l.typ}
}

// Fnodes materializes every fnode of the type by running each inward
// rule that might add it, consulting the bound ruleset's per-type
// membership cache first.
func (l *TypeLhs) Fnodes(b *BoundRuleset) ([]*Fnode, error) {
	return b.fnodesOfType(l.typ)
}

// CheckFact accepts any fact; a type matcher has no shape constraints
// of its own.
func (l *TypeLhs) CheckFact(Fact) error { return nil }

// GuaranteedType returns the matched type: by construction every fnode
// this side yields carries it.
func (l *TypeLhs) GuaranteedType() (string, bool) { return l.typ, true }

// TypeMaxLhs matches the highest-scoring fnodes of a type. All fnodes
// tied at the maximum are kept, in first-touch order. Results go
// through the bound ruleset's per-type maximum cache.
type TypeMaxLhs struct {
	typ string
}

// AsLhs implements LhsSource.
func (l *TypeMaxLhs) AsLhs() Lhs { return l }

func (l *TypeMaxLhs) Fnodes(b *BoundRuleset) ([]*Fnode, error) {
	if cached, ok := b.maxCache[l.typ]; ok {
		return cached, nil
	}
	all, err := b.fnodesOfType(l.typ)
	if err != nil {
		return nil, err
	}
	var best []*Fnode
	var bestScore float64
	for _, fn := range all {
		score := fn.ScoreFor(l.typ)
		switch {
		case len(best) == 0 || score > bestScore:
			best = []*Fnode{fn}
			bestScore = score
		case score == bestScore:
			best = append(best, fn)
		}
	}
	b.maxCache[l.typ] = best
	return best, nil
}

func (l *TypeMaxLhs) CheckFact(Fact) error { return nil }

func (l *TypeMaxLhs) GuaranteedType() (string, bool) { return l.typ, true }
