package ruleset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMightAdd(t *testing.T) {
	a := &testNode{name: "a"}

	tests := []struct {
		name string
		rule Rule
		typ  string
		want bool
	}{
		{
			name: "guaranteed input type is never added",
			rule: NewRule(Type("t1"), Emit("t2")),
			typ:  "t1",
			want: false,
		},
		{
			name: "declared possible type",
			rule: NewRule(Type("t1"), Emit("t2")),
			typ:  "t2",
			want: true,
		},
		{
			name: "type outside the declared set",
			rule: NewRule(Type("t1"), Emit("t2")),
			typ:  "t3",
			want: false,
		},
		{
			name: "unbounded rhs could add anything",
			rule: NewRule(selectElements(a), Props(func(fn *Fnode) Fact { return Fact{Type: "x"} })),
			typ:  "whatever",
			want: true,
		},
		{
			name: "unbounded rhs still cannot add the guaranteed type",
			rule: NewRule(Type("t1"), Props(func(fn *Fnode) Fact { return Fact{Type: "x"} })),
			typ:  "t1",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ok := tt.rule.(*InwardRule)
			require.True(t, ok, "expected an inward rule")
			assert.Equal(t, tt.want, in.MightAdd(tt.typ))
		})
	}
}

func TestInwardMergeTypeAndScore(t *testing.T) {
	a := &testNode{name: "a"}
	b := &testNode{name: "b"}
	rs, err := NewRuleset(NewRule(selectElements(a, b), Emit("paragraph").Score(2)))
	require.NoError(t, err)
	bound := rs.Against(nil)

	results, err := bound.Get(ByNode(a))
	require.NoError(t, err)
	require.Len(t, results, 1)

	fn := results[0].(*Fnode)
	assert.True(t, fn.HasType("paragraph"))
	assert.Equal(t, 2.0, fn.ScoreFor("paragraph"))
	if diff := cmp.Diff([]string{"paragraph"}, fn.Types()); diff != "" {
		t.Errorf("Types() mismatch (-want +got):\n%s", diff)
	}
}

func TestConserveScorePropagates(t *testing.T) {
	n := &testNode{name: "n"}
	rs, err := NewRuleset(
		NewRule(selectElements(n), Emit("t1").Score(3)),
		NewRule(Type("t1"), Emit("t2").Conserve()),
		NewRule(Type("t2"), Out("final")),
	)
	require.NoError(t, err)

	results, err := rs.Against(nil).Get(ByKey("final"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	fn := results[0].(*Fnode)
	assert.Equal(t, 3.0, fn.ScoreFor("t2"), "score for t2 should reflect the score propagated from t1")
	assert.Equal(t, 3.0, fn.ScoreFor("t1"), "conservation must not disturb the source type")
}

func TestConservationWithoutGuaranteedType(t *testing.T) {
	a := &testNode{name: "a"}
	rs, err := NewRuleset(
		NewRule(selectElements(a), Props(func(fn *Fnode) Fact {
			return Fact{Type: "x", ConserveScore: true}
		})),
	)
	require.NoError(t, err)

	_, err = rs.Against(nil).Get(ByNode(a))
	assert.ErrorIs(t, err, ErrConservationSource)
}

func TestScoreWithoutResolvableType(t *testing.T) {
	a := &testNode{name: "a"}
	rs, err := NewRuleset(
		NewRule(selectElements(a), Props(func(fn *Fnode) Fact {
			return Fact{Score: 2, HasScore: true}
		})),
	)
	require.NoError(t, err)

	_, err = rs.Against(nil).Get(ByNode(a))
	assert.ErrorIs(t, err, ErrScoreType)
}

func TestNoteWithoutResolvableType(t *testing.T) {
	a := &testNode{name: "a"}
	rs, err := NewRuleset(
		NewRule(selectElements(a), Props(func(fn *Fnode) Fact {
			return Fact{Note: "orphan note"}
		})),
	)
	require.NoError(t, err)

	_, err = rs.Against(nil).Get(ByNode(a))
	assert.ErrorIs(t, err, ErrNoteType)
}

func TestNoteFallsBackToGuaranteedType(t *testing.T) {
	a := &testNode{name: "a"}
	rs, err := NewRuleset(
		NewRule(selectElements(a), Emit("t1")),
		NewRule(Type("t1"), Props(func(fn *Fnode) Fact {
			return Fact{Note: "annotated"}
		})),
	)
	require.NoError(t, err)
	bound := rs.Against(nil)

	results, err := bound.Get(ByNode(a))
	require.NoError(t, err)
	fn := results[0].(*Fnode)

	note, ok := fn.NoteFor("t1")
	require.True(t, ok, "note should land on the guaranteed input type")
	assert.Equal(t, "annotated", note)
}

func TestReplacementElementRedirectsAndDedups(t *testing.T) {
	a := &testNode{name: "a"}
	b := &testNode{name: "b"}
	target := &testNode{name: "target"}
	rs, err := NewRuleset(
		NewRule(selectElements(a, b), Props(func(fn *Fnode) Fact {
			return Fact{Type: "t", Score: 2, HasScore: true, Element: target}
		})),
		NewRule(Type("t"), Out("out")),
	)
	require.NoError(t, err)
	bound := rs.Against(nil)

	results, err := bound.Get(ByKey("out"))
	require.NoError(t, err)
	require.Len(t, results, 1, "both inputs redirect to one target; results dedup by identity")

	fn := results[0].(*Fnode)
	assert.Equal(t, Element(target), fn.Element())
	assert.Equal(t, 4.0, fn.ScoreFor("t"), "both facts should have multiplied the target's score")
	assert.Empty(t, bound.FnodeForElement(a).Types(), "matched node itself stays untouched")
}

func TestResultsKeepFirstTouchOrder(t *testing.T) {
	a := &testNode{name: "a"}
	b := &testNode{name: "b"}
	c := &testNode{name: "c"}
	rs, err := NewRuleset(
		NewRule(selectElements(b, a, c, a), Emit("t")),
		NewRule(Type("t"), Out("out")),
	)
	require.NoError(t, err)

	results, err := rs.Against(nil).Get(ByKey("out"))
	require.NoError(t, err)
	require.Len(t, results, 3)

	var order []string
	for _, r := range results {
		order = append(order, r.(*Fnode).Element().(*testNode).name)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, order); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}
}

func TestOutwardThroughTransform(t *testing.T) {
	a := &testNode{name: "a"}
	rs, err := NewRuleset(
		NewRule(selectElements(a), Emit("t")),
		NewRule(Type("t"), Out("names").WithThrough(func(fn *Fnode) any {
			return fn.Element().(*testNode).name
		})),
	)
	require.NoError(t, err)

	results, err := rs.Against(nil).Get(ByKey("names"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0])
}
