package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/genaidss/genaidss/pkg/catalog"
)

// maxStrengths caps how many indicators a Recommendation highlights.
const maxStrengths = 3

// Engine scores options against a fixed indicator catalog.
type Engine struct {
	indicators []catalog.Indicator
}

// NewEngine creates a scoring engine over the given indicators. The slice is
// copied; the engine holds no other state.
func NewEngine(indicators ...catalog.Indicator) *Engine {
	return &Engine{indicators: append([]catalog.Indicator(nil), indicators...)}
}

// Indicators returns a copy of the engine's indicator list.
func (e *Engine) Indicators() []catalog.Indicator {
	return append([]catalog.Indicator(nil), e.indicators...)
}

// Validate sums the configured weights over the catalog indicators.
func (e *Engine) Validate(weights catalog.Weights) ValidationResult {
	var res ValidationResult
	for _, ind := range e.indicators {
		w, ok := weights[ind.ID]
		if !ok {
			res.Missing = append(res.Missing, ind.ID)
			continue
		}
		res.Total += w
	}
	res.Valid = math.Abs(res.Total-1.0) < WeightTolerance
	return res
}

// Score computes the weighted score of every option and ranks them.
//
// Each rating is normalised to rating/MaxRating and multiplied by the
// indicator weight; the sum is expressed as a percentage. Indicator direction
// is not applied: every indicator is scored as higher-is-better. Unrated or
// out-of-range ratings and missing weights count as 0.
//
// Options with equal scores keep their input order, and ranks run 1..N
// without gaps or shared positions.
func (e *Engine) Score(options []catalog.Option, weights catalog.Weights) ([]RankedResult, error) {
	if len(e.indicators) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(options) == 0 {
		return nil, ErrEmptyOptions
	}

	results := make([]RankedResult, 0, len(options))
	for _, opt := range options {
		rr := RankedResult{
			OptionID:      opt.ID,
			DisplayName:   opt.DisplayName,
			Contributions: make(map[string]float64, len(e.indicators)),
			Ratings:       make(map[string]int, len(e.indicators)),
		}

		var total float64
		for _, ind := range e.indicators {
			rating := opt.Ratings[ind.ID]
			rr.Ratings[ind.ID] = rating

			contribution := normalize(rating) * weights[ind.ID]
			rr.Contributions[ind.ID] = 100 * contribution
			total += contribution
		}
		rr.WeightedScore = 100 * total

		results = append(results, rr)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].WeightedScore > results[j].WeightedScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

// Preview computes the comparison-step score for each option, sorted like
// Score. It never fails; an empty catalog or option list yields nil.
func (e *Engine) Preview(options []catalog.Option, weights catalog.Weights) []PreviewScore {
	if len(e.indicators) == 0 || len(options) == 0 {
		return nil
	}

	out := make([]PreviewScore, 0, len(options))
	for _, opt := range options {
		ps := PreviewScore{
			OptionID:    opt.ID,
			DisplayName: opt.DisplayName,
			Complete:    true,
		}
		for _, ind := range e.indicators {
			rating := opt.Ratings[ind.ID]
			if !validRating(rating) {
				ps.Complete = false
				continue
			}
			ps.Score += float64(rating) * weights[ind.ID]
		}
		ps.Percent = 100 * ps.Score / MaxRating
		out = append(out, ps)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Report validates the weights, scores the options and builds the
// recommendation for the winner.
func (e *Engine) Report(options []catalog.Option, weights catalog.Weights) (*Report, error) {
	results, err := e.Score(options, weights)
	if err != nil {
		return nil, fmt.Errorf("scoring options: %w", err)
	}

	return &Report{
		Indicators:     e.Indicators(),
		Weights:        weights.Clone(),
		Validation:     e.Validate(weights),
		Results:        results,
		Recommendation: e.recommend(results, weights),
	}, nil
}

func (e *Engine) recommend(results []RankedResult, weights catalog.Weights) Recommendation {
	winner := results[0]
	rec := Recommendation{
		OptionID:    winner.OptionID,
		DisplayName: winner.DisplayName,
		Score:       winner.WeightedScore,
	}
	if len(results) > 1 {
		rec.RunnerUp = results[1].OptionID
		rec.Margin = winner.WeightedScore - results[1].WeightedScore
	}

	for _, ind := range e.indicators {
		c := winner.Contributions[ind.ID]
		if c <= 0 {
			continue
		}
		rec.Strengths = append(rec.Strengths, Strength{
			IndicatorID:  ind.ID,
			Name:         ind.Name,
			Rating:       winner.Ratings[ind.ID],
			Weight:       weights[ind.ID],
			Contribution: c,
		})
	}
	sort.SliceStable(rec.Strengths, func(i, j int) bool {
		return rec.Strengths[i].Contribution > rec.Strengths[j].Contribution
	})
	if len(rec.Strengths) > maxStrengths {
		rec.Strengths = rec.Strengths[:maxStrengths]
	}

	return rec
}

func validRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

func normalize(r int) float64 {
	if !validRating(r) {
		return 0
	}
	return float64(r) / MaxRating
}
