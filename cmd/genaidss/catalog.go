package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/genaidss/genaidss/pkg/catalog"
	"github.com/genaidss/genaidss/pkg/config"
)

func newCatalogCmd() *cobra.Command {
	var opts catalogOpts

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show indicators, assistants, presets and attribute coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			return runCatalog(opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Path to a catalog YAML/JSON file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.output, "output", "text", "Output format: text or yaml")

	return cmd
}

type catalogOpts struct {
	catalogPath string
	output      string
	out         io.Writer
}

func runCatalog(opts catalogOpts) error {
	cfg := loadConfig()
	cfg.CatalogPath = firstNonEmpty(opts.catalogPath, cfg.CatalogPath)
	cat, err := config.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	switch opts.output {
	case "yaml":
		enc := yaml.NewEncoder(opts.out)
		enc.SetIndent(2)
		if err := enc.Encode(cat); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		return printCatalog(opts.out, cat)
	default:
		return fmt.Errorf("unknown output format %q (want text or yaml)", opts.output)
	}
}

func printCatalog(out io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "INDICATOR\tNAME\tWEIGHT\tDIRECTION")
	for _, ind := range cat.Indicators {
		fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%s\n", ind.ID, ind.Name, ind.Weight*100, ind.Direction)
	}
	fmt.Fprintln(tw)

	header := []string{"OPTION"}
	for _, ind := range cat.Indicators {
		header = append(header, ind.Name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, o := range cat.Options {
		row := []string{o.DisplayName}
		for _, ind := range cat.Indicators {
			row = append(row, fmt.Sprintf("%d", o.Ratings[ind.ID]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PRESET\tNAME\tWEIGHTS")
	for _, d := range cat.Departments {
		parts := make([]string, 0, len(cat.Indicators))
		for _, ind := range cat.Indicators {
			parts = append(parts, fmt.Sprintf("%s=%.0f%%", ind.ID, d.Weights[ind.ID]*100))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, strings.Join(parts, " "))
	}

	if len(cat.Attributes) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "COVERAGE\tATTRIBUTES\tLITERATURE\tINTERNAL\tUSER VOICE")
		for _, c := range cat.SourceCoverage() {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", c.IndicatorID, c.Attributes, c.Literature, c.Internal, c.UserVoice)
		}
	}

	return tw.Flush()
}
