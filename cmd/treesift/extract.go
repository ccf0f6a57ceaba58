package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"treesift/internal/config"
	"treesift/internal/store"
	"treesift/pkg/dom"
	"treesift/pkg/ruleset"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Run the ruleset against HTML files and print a terminal output",
	Long: `Parses each HTML file, binds the configured ruleset to it, and queries
the configured output key. Documents are processed concurrently; each
one gets its own binding, so evaluations stay isolated.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	inputs := append(append([]string{}, cfg.Inputs...), args...)
	if len(inputs) == 0 {
		return fmt.Errorf("no input files (pass paths or set inputs in the config)")
	}

	rs, err := buildRuleset(cfg)
	if err != nil {
		return fmt.Errorf("failed to build ruleset: %w", err)
	}

	logger.Info("extracting",
		zap.Int("documents", len(inputs)),
		zap.String("output_key", cfg.Output.Key))

	// One binding per document; nothing mutable is shared across
	// workers, which is what makes the fan-out safe.
	perDoc := make([][]store.Extraction, len(inputs))
	var g errgroup.Group
	g.SetLimit(4)
	for i, path := range inputs {
		i, path := i, path
		g.Go(func() error {
			extractions, err := extractOne(rs, cfg.Output.Key, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			perDoc[i] = extractions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []store.Extraction
	for _, extractions := range perDoc {
		for _, e := range extractions {
			fmt.Printf("%s\t%s\t%s\n", e.Document, e.FactType, e.Content)
			all = append(all, e)
		}
	}

	if cfg.Output.DBPath != "" {
		st, err := store.Open(cfg.Output.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(cmd.Context(), all); err != nil {
			return err
		}
		logger.Info("persisted extractions",
			zap.Int("count", len(all)),
			zap.String("db", cfg.Output.DBPath))
	}
	return nil
}

// factTypeFor picks which of a node's fact types to persist: the
// queried key itself when the node carries it as a type, else the
// node's highest-scoring type. Ties fall to the alphabetically first
// type, since Types() is sorted.
func factTypeFor(fn *ruleset.Fnode, key string) string {
	types := fn.Types()
	if len(types) == 0 {
		return ""
	}
	if fn.HasType(key) {
		return key
	}
	best := types[0]
	for _, typ := range types[1:] {
		if fn.ScoreFor(typ) > fn.ScoreFor(best) {
			best = typ
		}
	}
	return best
}

// extractOne binds the ruleset to one parsed document and renders the
// results of the requested output key.
func extractOne(rs *ruleset.Ruleset, key, path string) ([]store.Extraction, error) {
	doc, err := dom.ParseFile(path)
	if err != nil {
		return nil, err
	}
	bound := rs.Against(doc, ruleset.WithLogger(logger.With(zap.String("document", path))))
	results, err := bound.Get(ruleset.ByKey(key))
	if err != nil {
		return nil, err
	}

	extractions := make([]store.Extraction, 0, len(results))
	for _, res := range results {
		e := store.Extraction{Document: path, OutputKey: key}
		switch res := res.(type) {
		case *ruleset.Fnode:
			if typ := factTypeFor(res, key); typ != "" {
				e.FactType = typ
				e.Score = res.ScoreFor(typ)
			}
			if n, ok := res.Element().(*html.Node); ok {
				e.Content = dom.Text(n)
			}
		default:
			e.Content = fmt.Sprint(res)
		}
		extractions = append(extractions, e)
	}
	return extractions, nil
}
