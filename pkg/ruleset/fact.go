package ruleset

// Fact is the ephemeral output of a right-hand side for one matched
// fnode: a description of what to merge into a target annotation
// record. Zero values mean "not specified" throughout; scores carry an
// explicit presence flag because 0 is a legal multiplier.
type Fact struct {
	// Type is the fact type to associate with the target, or "" to fall
	// back to the left side's guaranteed input type.
	Type string

	// Score multiplies the target's score for the resolved output type
	// when HasScore is set.
	Score    float64
	HasScore bool

	// Note is attached to the target under the resolved output type when
	// non-nil.
	Note any

	// Element redirects the fact's effect to a different node than the
	// one that matched. Nil means the matched node itself.
	Element Element

	// ConserveScore propagates the matched node's score for the left
	// side's guaranteed type onto the output type, instead of starting
	// from the default.
	ConserveScore bool
}
