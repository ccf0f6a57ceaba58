package ruleset

import "sort"

// Element is an opaque node of the bound document. Values must be
// comparable and identity-stable -- pointers in practice -- because
// annotation caching and result deduplication key on them directly.
type Element any

// Fnode is the annotation record for one element: everything the rules
// have derived about it so far, grouped by fact type. Exactly one Fnode
// exists per (BoundRuleset, element) pair; BoundRuleset.FnodeForElement
// enforces that, so Fnode pointers can be compared for identity.
//
// Scores default to 1 and compose multiplicatively. Existing
// associations are never replaced or deleted; rules only add types,
// scale scores, and attach notes.
type Fnode struct {
	element Element
	bound   *BoundRuleset
	types   map[string]*typeRecord
}

type typeRecord struct {
	score   float64
	note    any
	hasNote bool
}

func newFnode(element Element, bound *BoundRuleset) *Fnode {
	return &Fnode{
		element: element,
		bound:   bound,
		types:   make(map[string]*typeRecord),
	}
}

// Element returns the document node this record annotates.
func (f *Fnode) Element() Element {
	return f.element
}

// HasType reports whether any rule has associated typ with this node.
func (f *Fnode) HasType(typ string) bool {
	_, ok := f.types[typ]
	return ok
}

// Types returns the fact types present on this node, sorted for
// determinism.
func (f *Fnode) Types() []string {
	out := make([]string, 0, len(f.types))
	for t := range f.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ScoreFor returns the node's score for typ. A type that no rule has
// scored yet reports 1, the multiplicative identity.
func (f *Fnode) ScoreFor(typ string) float64 {
	if rec, ok := f.types[typ]; ok {
		return rec.score
	}
	return 1
}

// NoteFor returns the note attached for typ, if any.
func (f *Fnode) NoteFor(typ string) (any, bool) {
	if rec, ok := f.types[typ]; ok && rec.hasNote {
		return rec.note, true
	}
	return nil, false
}

// ConserveScoreFrom propagates src's score for srcType onto this node's
// dstType, multiplicatively. Used when a rule re-types a node and wants
// the accumulated confidence to carry over instead of restarting at the
// default.
func (f *Fnode) ConserveScoreFrom(src *Fnode, srcType, dstType string) {
	f.touch(dstType).score *= src.ScoreFor(srcType)
}

// MultiplyScore scales this node's score for typ by factor.
func (f *Fnode) MultiplyScore(typ string, factor float64) {
	f.touch(typ).score *= factor
}

// SetNote associates typ with this node and, when note is non-nil,
// attaches it. An existing note is kept rather than replaced; a nil
// note only records the type.
func (f *Fnode) SetNote(typ string, note any) {
	rec := f.touch(typ)
	if note != nil && !rec.hasNote {
		rec.note = note
		rec.hasNote = true
	}
}

func (f *Fnode) touch(typ string) *typeRecord {
	rec, ok := f.types[typ]
	if !ok {
		rec = &typeRecord{score: 1}
		f.types[typ] = rec
	}
	return rec
}

// fnodeSet is an insertion-ordered set keyed on Fnode identity. Distinct
// input records can redirect to the same target, so merged results are
// deduplicated here; first-touch order is part of the result contract.
type fnodeSet struct {
	seen  map[*Fnode]struct{}
	items []*Fnode
}

func newFnodeSet() *fnodeSet {
	return &fnodeSet{seen: make(map[*Fnode]struct{})}
}

func (s *fnodeSet) add(f *Fnode) {
	if _, ok := s.seen[f]; ok {
		return
	}
	s.seen[f] = struct{}{}
	s.items = append(s.items, f)
}
