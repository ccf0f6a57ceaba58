package ruleset

import "errors"

// Sentinel errors for ruleset construction and querying. All of them
// indicate a misconfigured or misused ruleset, not a runtime condition;
// callers generally test with errors.Is and abort.
var (
	// ErrInvalidRule is returned by NewRuleset when an argument is not a
	// usable rule (nil, or built from nil operands).
	ErrInvalidRule = errors.New("invalid rule definition")

	// ErrNoSuchOutput is returned by Get(ByKey(k)) when no outward rule
	// was registered under k.
	ErrNoSuchOutput = errors.New("no such outward rule")

	// ErrUnsupportedQuery is returned by Get for a nil or unrecognized
	// query value.
	ErrUnsupportedQuery = errors.New("query not recognized")

	// ErrConservationSource means a fact asked to conserve score but the
	// rule's left side has no single guaranteed input type to conserve
	// from.
	ErrConservationSource = errors.New("conserve score requires a guaranteed input type")

	// ErrScoreType means a fact carried an explicit score but no output
	// type could be resolved; scores are per-type.
	ErrScoreType = errors.New("score requires a resolvable output type")

	// ErrNoteType means a fact carried an explicit type or note but no
	// output type could be resolved; notes are per-type.
	ErrNoteType = errors.New("note requires a resolvable output type")

	// ErrCycleDetected means rule evaluation re-entered a rule that was
	// already being computed, i.e. the rule dependency graph has a cycle.
	ErrCycleDetected = errors.New("rule dependency cycle detected")
)
