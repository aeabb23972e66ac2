package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genaidss/genaidss/internal/export"
	"github.com/genaidss/genaidss/internal/session"
	"github.com/genaidss/genaidss/pkg/catalog"
	"github.com/genaidss/genaidss/pkg/config"
	"github.com/genaidss/genaidss/pkg/surface"
	"github.com/genaidss/genaidss/pkg/wizard"
)

func newScoreCmd() *cobra.Command {
	var opts scoreOpts

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank the assistants and recommend one",
		Long: `Runs a full wizard session: loads a department preset or a weights file,
applies the reference ratings (optionally overridden by a ratings file), walks
every step and renders the ranking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			return runScore(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Path to a catalog YAML/JSON file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.department, "department", "", "Department weight preset (default: wizard.default_department)")
	cmd.Flags().StringVar(&opts.weightsPath, "weights", "", "Path to a weights YAML/JSON file; overrides --department")
	cmd.Flags().StringVar(&opts.ratingsPath, "ratings", "", "Path to a ratings YAML/JSON file (default: reference ratings)")
	cmd.Flags().StringVar(&opts.output, "output", "text", "Output format: text, json, csv or markdown")
	cmd.Flags().BoolVar(&opts.withRatings, "with-ratings", false, "Add raw ratings and the weight row to CSV output")
	cmd.Flags().BoolVar(&opts.export, "export", false, "Publish the results to the configured export sink")

	return cmd
}

type scoreOpts struct {
	catalogPath string
	department  string
	weightsPath string
	ratingsPath string
	output      string
	withRatings bool
	export      bool
	out         io.Writer
}

func runScore(ctx context.Context, opts scoreOpts) error {
	renderer, err := surface.ForFormat(opts.output, opts.withRatings)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	cfg.CatalogPath = firstNonEmpty(opts.catalogPath, cfg.CatalogPath)
	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	sess, err := newSession(cfg, opts.department, opts.weightsPath, logger)
	if err != nil {
		return err
	}
	if err := applyRatings(sess, opts.ratingsPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Scoring %d options against %d indicators", len(sess.Options()), len(sess.Catalog().Indicators))
	if d := sess.Department(); d != "" {
		fmt.Fprintf(os.Stderr, " (preset: %s)", d)
	}
	fmt.Fprintln(os.Stderr)

	for sess.Step() != wizard.StepResults {
		next := sess.Step().Next()
		if err := sess.Advance(next); err != nil {
			return fmt.Errorf("advancing to %s: %w", next, err)
		}
	}

	report, err := sess.Report()
	if err != nil {
		return err
	}
	if err := renderer.Render(opts.out, report); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}

	if opts.export {
		sink, err := export.NewSink(ctx, cfg)
		if err != nil {
			return err
		}
		receipt, err := export.NewService(sink, cfg.Export.Prefix, logger).Publish(ctx, sess.ID(), report)
		if err != nil {
			return err
		}
		for _, key := range receipt.Keys {
			fmt.Fprintf(os.Stderr, "Exported: %s\n", key)
		}
	}
	return nil
}

// newSession starts a session over the configured catalog and loads the
// weights: a weights file wins over a department, which wins over the
// configured default department.
func newSession(cfg *config.Config, department, weightsPath string, logger *zap.Logger) (*session.Session, error) {
	cat, err := config.LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	sess := session.New(cat, session.Options{
		RequireValidWeights: cfg.Wizard.RequireValidWeights,
		RequireFullRatings:  cfg.Wizard.RequireFullRatings,
	}, logger)

	if weightsPath != "" {
		w, err := catalog.LoadWeights(weightsPath)
		if err != nil {
			return nil, err
		}
		if err := sess.SetWeights(w); err != nil {
			return nil, fmt.Errorf("applying %s: %w", weightsPath, err)
		}
		return sess, nil
	}

	dept := firstNonEmpty(department, cfg.Wizard.DefaultDepartment)
	if dept == "" {
		return sess, nil
	}
	if _, ok := cat.Department(dept); !ok && department == "" {
		// A stale default should not break catalogs without that preset.
		fmt.Fprintf(os.Stderr, "Warning: default department %q not in catalog, using catalog weights\n", dept)
		return sess, nil
	}
	if err := sess.SelectDepartment(dept); err != nil {
		return nil, err
	}
	return sess, nil
}

// applyRatings loads the reference ratings of every option, then overlays
// the ratings file if one is given.
func applyRatings(sess *session.Session, path string) error {
	for _, o := range sess.Options() {
		if err := sess.ResetOption(o.ID); err != nil {
			return err
		}
	}
	if path == "" {
		return nil
	}

	ratings, err := catalog.LoadRatings(path)
	if err != nil {
		return err
	}
	optionIDs := make([]string, 0, len(ratings))
	for id := range ratings {
		optionIDs = append(optionIDs, id)
	}
	sort.Strings(optionIDs)

	for _, optID := range optionIDs {
		r := ratings[optID]
		indIDs := make([]string, 0, len(r))
		for id := range r {
			indIDs = append(indIDs, id)
		}
		sort.Strings(indIDs)
		for _, indID := range indIDs {
			if err := sess.SetRating(optID, indID, r[indID]); err != nil {
				return fmt.Errorf("applying %s: %w", path, err)
			}
		}
	}
	return nil
}
