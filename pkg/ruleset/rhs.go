package ruleset

import "fmt"

// Rhs is the canonical right-hand side of a rule: the fact builder for
// inward rules, or the keyed output transform for outward ones.
type Rhs interface {
	// Fact produces the fact to merge for one matched fnode. Terminal
	// sides never produce facts and return an error if asked.
	Fact(fn *Fnode) (Fact, error)

	// PossibleTypes bounds the fact types this side can emit. Empty
	// means unknown, which scheduling treats as "could emit anything".
	PossibleTypes() []string

	// OutKey returns the terminal output key. ok is false for inward
	// sides; true marks the rule as outward.
	OutKey() (string, bool)

	// Through transforms a matched fnode into a terminal result value.
	// Identity for sides with no transform.
	Through(fn *Fnode) any
}

// RhsSource is anything convertible to a canonical Rhs, resolved once
// at rule construction. Every Rhs in this package is its own source.
type RhsSource interface {
	AsRhs() Rhs
}

// inwardSide supplies the terminal halves of the Rhs contract for
// fact-producing sides.
type inwardSide struct{}

func (inwardSide) OutKey() (string, bool) { return "", false }
func (inwardSide) Through(fn *Fnode) any  { return fn }

// EmitRhs is a static fact builder: the same type/score/note for every
// matched fnode.
type EmitRhs struct {
	inwardSide
	typ      string
	score    float64
	hasScore bool
	note     any
	conserve bool
}

// Emit returns a right-hand side assigning the given fact type to every
// matched fnode.
func Emit(typ string) *EmitRhs {
	return &EmitRhs{typ: typ}
}

// AsRhs implements RhsSource.
func (r *EmitRhs) AsRhs() Rhs { return r }

// Score sets an explicit score multiplier on the emitted facts.
func (r *EmitRhs) Score(factor float64) *EmitRhs {
	r.score = factor
	r.hasScore = true
	return r
}

// Note attaches a note to the emitted facts.
func (r *EmitRhs) Note(note any) *EmitRhs {
	r.note = note
	return r
}

// Conserve makes the emitted facts carry the matched fnode's score for
// the left side's guaranteed type over to the output type.
func (r *EmitRhs) Conserve() *EmitRhs {
	r.conserve = true
	return r
}

func (r *EmitRhs) Fact(*Fnode) (Fact, error) {
	return Fact{
		Type:          r.typ,
		Score:         r.score,
		HasScore:      r.hasScore,
		Note:          r.note,
		ConserveScore: r.conserve,
	}, nil
}

func (r *EmitRhs) PossibleTypes() []string {
	if r.typ == "" {
		return nil
	}
	return []string{r.typ}
}

// PropsRhs computes a fact per matched fnode with an arbitrary
// function. Its possible output types are unknown unless declared with
// Types, so scheduling must assume it could emit anything.
type PropsRhs struct {
	inwardSide
	fn    func(*Fnode) Fact
	types []string
}

// Props returns a right-hand side whose facts are computed by fn.
func Props(fn func(*Fnode) Fact) *PropsRhs {
	return &PropsRhs{fn: fn}
}

// AsRhs implements RhsSource.
func (r *PropsRhs) AsRhs() Rhs { return r }

// Types declares the finite set of fact types fn can emit, letting
// type-directed queries skip this rule for other types.
func (r *PropsRhs) Types(types ...string) *PropsRhs {
	r.types = types
	return r
}

func (r *PropsRhs) Fact(fn *Fnode) (Fact, error) {
	if r.fn == nil {
		return Fact{}, fmt.Errorf("props rhs has no fact function")
	}
	return r.fn(fn), nil
}

func (r *PropsRhs) PossibleTypes() []string { return r.types }

// OutRhs marks a rule as a terminal output: its results leave the
// annotation graph under a public key instead of being merged back.
type OutRhs struct {
	key     string
	through func(*Fnode) any
}

// Out returns a terminal right-hand side publishing results under key.
func Out(key string) *OutRhs {
	return &OutRhs{key: key}
}

// AsRhs implements RhsSource.
func (r *OutRhs) AsRhs() Rhs { return r }

// WithThrough sets the transform applied to each matched fnode when
// producing output values. Without one, the fnodes themselves are the
// output.
func (r *OutRhs) WithThrough(fn func(*Fnode) any) *OutRhs {
	r.through = fn
	return r
}

func (r *OutRhs) Fact(*Fnode) (Fact, error) {
	return Fact{}, fmt.Errorf("terminal rhs %q produces no facts", r.key)
}

func (r *OutRhs) PossibleTypes() []string { return nil }

func (r *OutRhs) OutKey() (string, bool) { return r.key, true }

func (r *OutRhs) Through(fn *Fnode) any {
	if r.through == nil {
		return fn
	}
	return r.through(fn)
}
