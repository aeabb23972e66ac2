package surface

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/genaidss/genaidss/pkg/scoring"
)

// CSVRenderer writes the ranking as a spreadsheet-friendly table:
// Rank, Model, Weighted Score (%), then one contribution column per
// indicator. It works from the Report alone and never rescores.
type CSVRenderer struct {
	WithRatings bool // append "<indicator> Rating" columns
	WithWeights bool // append a trailing Weight row
}

func (r *CSVRenderer) Render(w io.Writer, report *scoring.Report) error {
	cw := csv.NewWriter(w)

	header := []string{"Rank", "Model", "Weighted Score (%)"}
	for _, ind := range report.Indicators {
		header = append(header, indicatorName(report, ind.ID))
	}
	if r.WithRatings {
		for _, ind := range report.Indicators {
			header = append(header, indicatorName(report, ind.ID)+" Rating")
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, res := range report.Results {
		row := []string{strconv.Itoa(res.Rank), displayName(res), pct(res.WeightedScore)}
		for _, ind := range report.Indicators {
			row = append(row, pct(res.Contributions[ind.ID]))
		}
		if r.WithRatings {
			for _, ind := range report.Indicators {
				row = append(row, strconv.Itoa(res.Ratings[ind.ID]))
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", res.OptionID, err)
		}
	}

	if r.WithWeights {
		row := []string{"", "Weight", pct(report.Validation.Total * 100)}
		for _, ind := range report.Indicators {
			row = append(row, pct(report.Weights[ind.ID]*100))
		}
		if r.WithRatings {
			for range report.Indicators {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv weight row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
