// Package surface defines output rendering for genaidss results.
// Implementations handle different output targets: terminal, JSON, CSV export
// and Markdown summaries.
package surface

import (
	"fmt"
	"io"

	"github.com/genaidss/genaidss/pkg/scoring"
)

// Renderer produces formatted output from a scoring Report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, report *scoring.Report) error
}

// ForFormat returns the renderer for an output format name.
// withRatings adds raw rating columns and the weight row to CSV output.
func ForFormat(format string, withRatings bool) (Renderer, error) {
	switch format {
	case "", "text", "terminal":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "csv":
		return &CSVRenderer{WithRatings: withRatings, WithWeights: withRatings}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, csv or markdown)", format)
	}
}

// indicatorName returns the display name for an indicator id in the report.
func indicatorName(report *scoring.Report, id string) string {
	for _, ind := range report.Indicators {
		if ind.ID == id {
			if ind.Name != "" {
				return ind.Name
			}
			break
		}
	}
	return id
}

func displayName(r scoring.RankedResult) string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.OptionID
}
