// Package scoring implements the Simple Additive Weighting (SAW) engine used
// to rank candidate assistants. The engine is stateless: every call takes
// plain catalog data and returns fresh, immutable results.
package scoring

import (
	"errors"

	"github.com/genaidss/genaidss/pkg/catalog"
)

var (
	// ErrEmptyCatalog is returned when the engine has no indicators to score against.
	ErrEmptyCatalog = errors.New("indicator catalog is empty")
	// ErrEmptyOptions is returned when there is nothing to rank.
	ErrEmptyOptions = errors.New("no options to score")
)

const (
	MinRating = catalog.MinRating
	MaxRating = catalog.MaxRating
	MaxWeight = catalog.MaxWeight

	// WeightTolerance is the allowed distance of a weight total from 1.0.
	WeightTolerance = 0.01
)

// ValidationResult reports whether a weight configuration sums to 1.
type ValidationResult struct {
	Valid bool    `json:"valid"`
	Total float64 `json:"total"`
	// Missing lists catalog indicators absent from the configuration. They
	// count as 0 towards Total; filling them in is the caller's job.
	Missing []string `json:"missing,omitempty"`
}

// RankedResult is one option's position in a ranking.
// Immutable once computed.
type RankedResult struct {
	OptionID      string             `json:"option_id"`
	DisplayName   string             `json:"display_name"`
	WeightedScore float64            `json:"weighted_score"` // 0-100
	Rank          int                `json:"rank"`           // 1-based, dense
	Contributions map[string]float64 `json:"contributions"`  // per indicator, 0-100
	Ratings       map[string]int     `json:"ratings"`        // raw ratings as scored
}

// PreviewScore is the comparison-step live score: Σ rating × weight on the
// 0-5 rating scale.
type PreviewScore struct {
	OptionID    string  `json:"option_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	Percent     float64 `json:"percent"`
	Complete    bool    `json:"complete"`
}

// Strength is one indicator's share of the winner's score.
type Strength struct {
	IndicatorID  string  `json:"indicator_id"`
	Name         string  `json:"name"`
	Rating       int     `json:"rating"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Recommendation summarises the top-ranked option.
type Recommendation struct {
	OptionID    string     `json:"option_id"`
	DisplayName string     `json:"display_name"`
	Score       float64    `json:"score"`
	Margin      float64    `json:"margin"` // points ahead of rank 2; 0 with a single option
	RunnerUp    string     `json:"runner_up,omitempty"`
	Strengths   []Strength `json:"strengths"`
}

// Report bundles everything a results surface needs to render or export a
// ranking without recomputing it.
type Report struct {
	Indicators     []catalog.Indicator `json:"indicators"`
	Weights        catalog.Weights     `json:"weights"`
	Validation     ValidationResult    `json:"validation"`
	Results        []RankedResult      `json:"results"`
	Recommendation Recommendation      `json:"recommendation"`
}

// Winner returns the rank 1 result.
func (r *Report) Winner() (RankedResult, bool) {
	if len(r.Results) == 0 {
		return RankedResult{}, false
	}
	return r.Results[0], true
}
