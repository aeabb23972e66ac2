package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/genaidss/genaidss/pkg/catalog"
	"github.com/genaidss/genaidss/pkg/config"
	"github.com/genaidss/genaidss/pkg/mining"
)

func newDeriveCmd() *cobra.Command {
	var opts deriveOpts

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive indicator weights from an attribute importance survey",
		Long: `Reads an attribute list and survey answers, computes per-attribute
importance, groups it by indicator and prints the resulting weights together
with a catalog weight preset that can be passed to score --weights.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			return runDerive(opts)
		},
	}

	cmd.Flags().StringVar(&opts.attributesPath, "attributes", "", "Attribute list CSV (attr_id, indicator_hint, ...)")
	cmd.Flags().StringVar(&opts.surveyPath, "survey", "", "Survey CSV, one column per attribute id")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Path to a catalog YAML/JSON file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.output, "output", "text", "Output format: text or yaml")
	cmd.Flags().IntVar(&opts.topPairs, "top-pairs", 5, "Number of most correlated attribute pairs to print (text output)")
	_ = cmd.MarkFlagRequired("attributes")
	_ = cmd.MarkFlagRequired("survey")

	return cmd
}

type deriveOpts struct {
	attributesPath string
	surveyPath     string
	catalogPath    string
	output         string
	topPairs       int
	out            io.Writer
}

// derivation is the yaml output of derive.
type derivation struct {
	Attributes []mining.Importance      `yaml:"attributes"`
	Indicators []mining.IndicatorWeight `yaml:"indicators"`
	Preset     catalog.Weights          `yaml:"preset"`
	Unmapped   []string                 `yaml:"unmapped,omitempty"`
	Pairs      []attributePair          `yaml:"correlated_pairs,omitempty"`
}

type attributePair struct {
	A string  `yaml:"a"`
	B string  `yaml:"b"`
	R float64 `yaml:"r"`
}

// strongestPairs returns up to n attribute pairs ordered by |r|, skipping
// undefined correlations.
func strongestPairs(m *mining.CorrelationMatrix, n int) []attributePair {
	var pairs []attributePair
	for i := range m.Labels {
		for j := i + 1; j < len(m.Labels); j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, attributePair{A: m.Labels[i], B: m.Labels[j], R: r})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	if n >= 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

func runDerive(opts deriveOpts) error {
	if opts.output != "" && opts.output != "text" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format %q (want text or yaml)", opts.output)
	}

	cfg := loadConfig()
	cfg.CatalogPath = firstNonEmpty(opts.catalogPath, cfg.CatalogPath)
	cat, err := config.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	af, err := os.Open(opts.attributesPath)
	if err != nil {
		return fmt.Errorf("opening attributes: %w", err)
	}
	defer af.Close()
	attrs, err := mining.ReadAttributes(af)
	if err != nil {
		return err
	}

	sf, err := os.Open(opts.surveyPath)
	if err != nil {
		return fmt.Errorf("opening survey: %w", err)
	}
	defer sf.Close()
	survey, err := mining.ReadSurvey(sf)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Deriving weights from %d attributes and %d respondents\n", len(attrs), survey.Respondents())

	importance, err := mining.AttributeImportance(attrs, survey)
	if err != nil {
		return err
	}
	weights := mining.IndicatorWeights(importance)
	preset, unmapped := mining.ToCatalogWeights(weights, cat)
	corr, err := mining.Correlation(attrs, survey)
	if err != nil {
		return err
	}
	pairs := strongestPairs(corr, opts.topPairs)

	if len(unmapped) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: no catalog indicator for %s\n", strings.Join(unmapped, ", "))
	}

	if opts.output == "yaml" {
		enc := yaml.NewEncoder(opts.out)
		enc.SetIndent(2)
		if err := enc.Encode(derivation{
			Attributes: importance,
			Indicators: weights,
			Preset:     preset,
			Unmapped:   unmapped,
			Pairs:      pairs,
		}); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintln(opts.out, "Indicator weights:")
	for _, w := range weights {
		fmt.Fprintf(opts.out, "  %-24s score %.2f  weight %5.1f%%\n", w.IndicatorHint, w.Score, w.WeightPercent)
	}
	if len(pairs) > 0 {
		fmt.Fprintln(opts.out)
		fmt.Fprintln(opts.out, "Most correlated attributes:")
		for _, p := range pairs {
			fmt.Fprintf(opts.out, "  %-8s %-8s r=%+.2f\n", p.A, p.B, p.R)
		}
	}
	fmt.Fprintln(opts.out)
	fmt.Fprintln(opts.out, "Catalog preset (use with score --weights):")
	enc := yaml.NewEncoder(opts.out)
	enc.SetIndent(2)
	if err := enc.Encode(preset); err != nil {
		return err
	}
	return enc.Close()
}
