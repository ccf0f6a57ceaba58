package dom

import (
	"fmt"

	"golang.org/x/net/html"

	"treesift/pkg/ruleset"
)

// TagLhs is a raw selector: it matches every element with a given tag
// name in the bound document. Raw selectors guarantee nothing about the
// types on their matches, so rules built on them must name their output
// types explicitly.
type TagLhs struct {
	name string
}

// Tag returns a left-hand side matching elements by tag name ("p",
// "div", ...).
func Tag(name string) *TagLhs {
	return &TagLhs{name: name}
}

// All returns a left-hand side matching every element in the document.
func All() *TagLhs {
	return &TagLhs{}
}

// AsLhs implements ruleset.LhsSource.
func (l *TagLhs) AsLhs() ruleset.Lhs { return l }

// Fnodes walks the bound document and returns an annotation record per
// matching element, in document order. The bound document must be an
// *html.Node.
func (l *TagLhs) Fnodes(b *ruleset.BoundRuleset) ([]*ruleset.Fnode, error) {
	root, ok := b.Document().(*html.Node)
	if !ok {
		return nil, fmt.Errorf("dom selector needs an *html.Node document, got %T", b.Document())
	}
	var fnodes []*ruleset.Fnode
	walkElements(root, func(n *html.Node) {
		if l.name == "" || n.Data == l.name {
			fnodes = append(fnodes, b.FnodeForElement(n))
		}
	})
	return fnodes, nil
}

// CheckFact rejects facts that would merge nothing: a raw selector
// match with no type, score, note, or conservation is a misconfigured
// rule, not a no-op.
func (l *TagLhs) CheckFact(f ruleset.Fact) error {
	if f.Type == "" && f.Note == nil && !f.HasScore && !f.ConserveScore {
		return fmt.Errorf("tag %q rule produced an empty fact", l.name)
	}
	return nil
}

// GuaranteedType reports no guarantee: the types present on a raw
// selector's matches are unpredictable.
func (l *TagLhs) GuaranteedType() (string, bool) { return "", false }
