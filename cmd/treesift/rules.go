package main

import (
	"math"

	"golang.org/x/net/html"

	"treesift/internal/config"
	"treesift/pkg/dom"
	"treesift/pkg/ruleset"
)

// buildRuleset assembles the built-in extraction ruleset. Coefficients
// from the config scale the individual scoring rules; with no config
// everything runs at 1, so the tool works out of the box.
//
// The ruleset scores paragraphs by text length, tracks headings, and
// publishes two outputs: "best" (the text of the highest-scoring
// paragraph) and "paragraphs" (every paragraph fnode).
func buildRuleset(cfg *config.Config) (*ruleset.Ruleset, error) {
	lengthCoeff := cfg.Coefficient("paragraph-length")
	headingCoeff := cfg.Coefficient("heading")

	return ruleset.NewRuleset(
		ruleset.NewRule(
			dom.Tag("p"),
			ruleset.Props(func(fn *ruleset.Fnode) ruleset.Fact {
				text := dom.Text(fn.Element().(*html.Node))
				return ruleset.Fact{
					Type:     "paragraph",
					Score:    lengthCoeff * math.Log1p(float64(len(text))),
					HasScore: true,
				}
			}).Types("paragraph"),
		),
		ruleset.NewRule(
			dom.Tag("h1"),
			ruleset.Emit("heading").Score(headingCoeff),
		),
		ruleset.NewRule(
			ruleset.Type("paragraph").Max(),
			ruleset.Out("best").WithThrough(func(fn *ruleset.Fnode) any {
				return dom.Text(fn.Element().(*html.Node))
			}),
		),
		ruleset.NewRule(
			ruleset.Type("paragraph"),
			ruleset.Out("paragraphs"),
		),
	)
}
