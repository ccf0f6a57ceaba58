package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestFnode(name string) *Fnode {
	return newFnode(&testNode{name: name}, nil)
}

func TestFnodeScoreDefaultsToOne(t *testing.T) {
	fn := newTestFnode("a")
	assert.Equal(t, 1.0, fn.ScoreFor("anything"))
	assert.False(t, fn.HasType("anything"))
}

func TestFnodeScoresCompose(t *testing.T) {
	fn := newTestFnode("a")
	fn.MultiplyScore("t", 2)
	fn.MultiplyScore("t", 3)
	assert.Equal(t, 6.0, fn.ScoreFor("t"))
	assert.True(t, fn.HasType("t"))
}

func TestFnodeConserveScoreFrom(t *testing.T) {
	src := newTestFnode("src")
	src.MultiplyScore("t1", 5)

	dst := newTestFnode("dst")
	dst.MultiplyScore("t2", 2)
	dst.ConserveScoreFrom(src, "t1", "t2")

	assert.Equal(t, 10.0, dst.ScoreFor("t2"), "conservation composes with the existing score")
	assert.Equal(t, 5.0, src.ScoreFor("t1"), "source is read-only under conservation")
}

func TestFnodeNotes(t *testing.T) {
	fn := newTestFnode("a")

	_, ok := fn.NoteFor("t")
	assert.False(t, ok)

	fn.SetNote("t", nil)
	assert.True(t, fn.HasType("t"), "a nil note still records the type")
	_, ok = fn.NoteFor("t")
	assert.False(t, ok)

	fn.SetNote("t", "first")
	fn.SetNote("t", "second")
	note, ok := fn.NoteFor("t")
	assert.True(t, ok)
	assert.Equal(t, "first", note, "existing notes are kept, never replaced")
}

func TestFnodeTypesSorted(t *testing.T) {
	fn := newTestFnode("a")
	fn.SetNote("zebra", nil)
	fn.SetNote("alpha", nil)
	fn.MultiplyScore("mid", 2)
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, fn.Types())
}
