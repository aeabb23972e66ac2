package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genaidss/genaidss/internal/session"
	"github.com/genaidss/genaidss/pkg/scoring"
)

func newValidateCmd() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a weight configuration sums to 100%",
		Long:  `Prints the weight total and exits non-zero when it is not within 1% of 100%.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			return runValidate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Path to a catalog YAML/JSON file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.department, "department", "", "Department weight preset to check")
	cmd.Flags().StringVar(&opts.weightsPath, "weights", "", "Path to a weights YAML/JSON file to check")

	return cmd
}

type validateOpts struct {
	catalogPath string
	department  string
	weightsPath string
	out         io.Writer
}

func runValidate(opts validateOpts) error {
	cfg := loadConfig()
	cfg.CatalogPath = firstNonEmpty(opts.catalogPath, cfg.CatalogPath)

	sess, err := newSession(cfg, opts.department, opts.weightsPath, zap.NewNop())
	if err != nil {
		return err
	}

	weights := sess.Weights()
	for _, ind := range sess.Catalog().Indicators {
		fmt.Fprintf(opts.out, "  %-16s %5.1f%%\n", ind.Name, weights[ind.ID]*100)
	}

	v := sess.Validation()
	fmt.Fprintf(opts.out, "Total: %.1f%%\n", v.Total*100)
	if len(v.Missing) > 0 {
		fmt.Fprintf(opts.out, "Missing: %s\n", strings.Join(v.Missing, ", "))
	}
	if !v.Valid {
		fmt.Fprintf(opts.out, "Status: invalid (must be within %.0f%% of 100%%)\n", scoring.WeightTolerance*100)
		return fmt.Errorf("%w: total is %.1f%%", session.ErrWeightsInvalid, v.Total*100)
	}
	fmt.Fprintln(opts.out, "Status: valid")
	return nil
}
