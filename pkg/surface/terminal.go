package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/genaidss/genaidss/pkg/scoring"
)

// TerminalRenderer renders a Report as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const barWidth = 20

func scoreColor(score float64) string {
	if noColor() {
		return ""
	}
	switch {
	case score >= 80:
		return colorGreen
	case score >= 60:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report *scoring.Report) error {
	rec := report.Recommendation

	// Header
	if rec.OptionID != "" {
		fmt.Fprintf(w, "%s\n\n",
			bold(fmt.Sprintf("Recommended: %s (%s)",
				rec.DisplayName, colored(fmt.Sprintf("%.1f%%", rec.Score), scoreColor(rec.Score)))))
	}

	// Weight validity
	v := report.Validation
	if !v.Valid {
		fmt.Fprintf(w, "%s weights total %.0f%%, not 100%%; scores are not comparable to a full weighting\n\n",
			colored("!", colorRed), v.Total*100)
	}
	if len(v.Missing) > 0 {
		fmt.Fprintf(w, "%s\n\n", dim(fmt.Sprintf("No weight set for: %s", strings.Join(v.Missing, ", "))))
	}

	// Ranking
	nameWidth := 0
	for _, res := range report.Results {
		if n := len(displayName(res)); n > nameWidth {
			nameWidth = n
		}
	}
	fmt.Fprintln(w, "Ranking:")
	for _, res := range report.Results {
		fmt.Fprintf(w, "  %d. %-*s %s %s\n",
			res.Rank, nameWidth, displayName(res),
			colored(fmt.Sprintf("%5.1f%%", res.WeightedScore), scoreColor(res.WeightedScore)),
			dim(bar(res.WeightedScore, 100)))
	}
	fmt.Fprintln(w)

	// Breakdown per option
	fmt.Fprintln(w, "Breakdown:")
	for _, res := range report.Results {
		fmt.Fprintf(w, "  %s\n", bold(displayName(res)))
		for _, ind := range report.Indicators {
			full := report.Weights[ind.ID] * 100
			fmt.Fprintf(w, "    %-16s %d/5  %5.1f%% of %4.1f%%  %s\n",
				indicatorName(report, ind.ID), res.Ratings[ind.ID],
				res.Contributions[ind.ID], full, dim(bar(res.Contributions[ind.ID], full)))
		}
	}
	fmt.Fprintln(w)

	// Why the winner
	if len(rec.Strengths) > 0 {
		fmt.Fprintf(w, "Why %s:\n", rec.DisplayName)
		for _, s := range rec.Strengths {
			fmt.Fprintf(w, "  • %s rated %d/5 at %.0f%% weight adds %.1f points\n",
				s.Name, s.Rating, s.Weight*100, s.Contribution)
		}
		if rec.RunnerUp != "" {
			fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("Lead over %s: %.1f points", rec.RunnerUp, rec.Margin)))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// bar draws a fixed-width bar for value out of full.
func bar(value, full float64) string {
	filled := 0
	if full > 0 {
		filled = int(value / full * barWidth)
	}
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
