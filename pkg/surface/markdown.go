package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/genaidss/genaidss/pkg/scoring"
)

// MarkdownRenderer produces a Markdown summary suitable for a wiki page or
// a chat message.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, report *scoring.Report) error {
	_, err := io.WriteString(w, BuildMarkdownSummary(report))
	return err
}

// BuildMarkdownSummary renders the report as Markdown.
func BuildMarkdownSummary(report *scoring.Report) string {
	var sb strings.Builder
	rec := report.Recommendation

	if rec.OptionID != "" {
		sb.WriteString(fmt.Sprintf("## Recommendation: %s (%.1f%%)\n\n", rec.DisplayName, rec.Score))
	} else {
		sb.WriteString("## Recommendation\n\n")
	}

	if !report.Validation.Valid {
		sb.WriteString(fmt.Sprintf("> :warning: Weights total %.0f%% instead of 100%%.\n\n", report.Validation.Total*100))
	}

	// Ranking table
	sb.WriteString("### Ranking\n\n")
	sb.WriteString("| Rank | Model | Score |")
	for _, ind := range report.Indicators {
		sb.WriteString(fmt.Sprintf(" %s |", indicatorName(report, ind.ID)))
	}
	sb.WriteString("\n|------|-------|-------|")
	for range report.Indicators {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")
	for _, res := range report.Results {
		sb.WriteString(fmt.Sprintf("| %d | %s | %.1f%% |", res.Rank, displayName(res), res.WeightedScore))
		for _, ind := range report.Indicators {
			sb.WriteString(fmt.Sprintf(" %d (%.1f) |", res.Ratings[ind.ID], res.Contributions[ind.ID]))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	// Weights
	sb.WriteString("### Weights\n\n| Indicator | Weight |\n|-----------|--------|\n")
	for _, ind := range report.Indicators {
		sb.WriteString(fmt.Sprintf("| %s | %.0f%% |\n", indicatorName(report, ind.ID), report.Weights[ind.ID]*100))
	}
	sb.WriteString(fmt.Sprintf("| **Total** | **%.0f%%** |\n\n", report.Validation.Total*100))

	// Strengths (max 3, already capped by the engine)
	if len(rec.Strengths) > 0 {
		sb.WriteString(fmt.Sprintf("### Why %s\n\n", rec.DisplayName))
		for _, s := range rec.Strengths {
			sb.WriteString(fmt.Sprintf("- **%s**: rated %d/5 at %.0f%% weight, +%.1f points\n",
				s.Name, s.Rating, s.Weight*100, s.Contribution))
		}
		if rec.RunnerUp != "" {
			sb.WriteString(fmt.Sprintf("\n_Lead over %s: %.1f points._\n", rec.RunnerUp, rec.Margin))
		}
	}

	return sb.String()
}
