// Package wizard holds the step sequence of one decision-wizard run and the
// data it accumulates: the weight configuration and the option ratings.
package wizard

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/genaidss/genaidss/pkg/catalog"
)

// Step is one page of the wizard.
type Step string

const (
	StepLanding    Step = "landing"
	StepIndicators Step = "indicators"
	StepWeights    Step = "weights"
	StepComparison Step = "comparison"
	StepResults    Step = "results"
)

// Steps lists the wizard steps in order.
var Steps = []Step{StepLanding, StepIndicators, StepWeights, StepComparison, StepResults}

// transitions is the full set of allowed edges.
var transitions = map[Step]Step{
	StepLanding:    StepIndicators,
	StepIndicators: StepWeights,
	StepWeights:    StepComparison,
	StepComparison: StepResults,
	StepResults:    StepLanding,
}

var (
	ErrInvalidTransition = errors.New("invalid step transition")
	ErrInvalidRating     = errors.New("invalid rating")
	ErrInvalidWeight     = errors.New("invalid weight")
	ErrUnknownOption     = errors.New("unknown option")
	ErrUnknownIndicator  = errors.New("unknown indicator")
	ErrUnknownDepartment = errors.New("unknown department")
	ErrUnknownStep       = errors.New("unknown step")
)

// ParseStep converts a step name into a Step.
func ParseStep(s string) (Step, error) {
	for _, st := range Steps {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Index returns the step's position in Steps, or -1.
func (s Step) Index() int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the step reachable from s.
func (s Step) Next() Step {
	return transitions[s]
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to Step) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// State is the mutable state of one wizard run. It is not safe for
// concurrent use; callers serialise access.
type State struct {
	cat        *catalog.Catalog
	step       Step
	weights    catalog.Weights
	department string
	customized bool
	options    []catalog.Option
}

// Snapshot is a plain copy of State for rendering.
type Snapshot struct {
	Step       Step             `json:"step"`
	Weights    catalog.Weights  `json:"weights"`
	Options    []catalog.Option `json:"options"`
	Department string           `json:"department,omitempty"`
	Customized bool             `json:"customized"`
	Ready      bool             `json:"ready"`
}

// New creates a wizard at the landing step with catalog default weights and
// every catalog option unrated.
func New(cat *catalog.Catalog) *State {
	s := &State{cat: cat, step: StepLanding}
	s.Reset()
	return s
}

// Catalog returns the catalog the wizard was built from.
func (s *State) Catalog() *catalog.Catalog { return s.cat }

// Step returns the current step.
func (s *State) Step() Step { return s.step }

// Weights returns a copy of the current weight configuration.
func (s *State) Weights() catalog.Weights { return s.weights.Clone() }

// Department returns the selected preset id, or "" when none is selected.
func (s *State) Department() string { return s.department }

// Customized reports whether the weights were edited after loading a preset.
func (s *State) Customized() bool { return s.customized }

// Options returns a deep copy of the options and their current ratings.
func (s *State) Options() []catalog.Option {
	out := make([]catalog.Option, len(s.options))
	for i, o := range s.options {
		out[i] = o.Clone()
	}
	return out
}

// Snapshot captures the whole state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Step:       s.step,
		Weights:    s.Weights(),
		Options:    s.Options(),
		Department: s.department,
		Customized: s.customized,
		Ready:      s.IsReadyForScoring(),
	}
}

// Advance moves to the given step. Only the forward edges and the
// results -> landing restart are allowed; the restart also resets the
// accumulated weights and ratings.
func (s *State) Advance(to Step) error {
	if !CanTransition(s.step, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.step, to)
	}
	if s.step == StepResults && to == StepLanding {
		s.Reset()
	}
	s.step = to
	return nil
}

// SetWeights replaces the weight configuration wholesale and marks it
// customized. The sum is not checked. Catalog indicators absent from w are
// stored as 0.
func (s *State) SetWeights(w catalog.Weights) error {
	for id, v := range w {
		if err := s.checkWeight(id, v); err != nil {
			return err
		}
	}
	s.weights = s.complete(w)
	s.customized = true
	return nil
}

// SetWeight edits a single indicator weight and marks the configuration
// customized.
func (s *State) SetWeight(indicatorID string, value float64) error {
	if err := s.checkWeight(indicatorID, value); err != nil {
		return err
	}
	s.weights[indicatorID] = value
	s.customized = true
	return nil
}

// SelectDepartment loads a preset's weights.
func (s *State) SelectDepartment(id string) error {
	dept, ok := s.cat.Department(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDepartment, id)
	}
	s.weights = s.complete(dept.Weights)
	s.department = id
	s.customized = false
	return nil
}

// ResetWeights restores the selected preset, or the catalog defaults when no
// preset is selected.
func (s *State) ResetWeights() {
	if dept, ok := s.cat.Department(s.department); ok {
		s.weights = s.complete(dept.Weights)
	} else {
		s.weights = s.cat.DefaultWeights()
	}
	s.customized = false
}

// SetRating upserts one rating. A value of 0 clears it.
func (s *State) SetRating(optionID, indicatorID string, value int) error {
	idx := s.optionIndex(optionID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownOption, optionID)
	}
	if _, ok := s.cat.Indicator(indicatorID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownIndicator, indicatorID)
	}
	if value != 0 && (value < catalog.MinRating || value > catalog.MaxRating) {
		return fmt.Errorf("%w: %d for %s/%s (want 0 or %d-%d)",
			ErrInvalidRating, value, optionID, indicatorID, catalog.MinRating, catalog.MaxRating)
	}

	if value == 0 {
		delete(s.options[idx].Ratings, indicatorID)
		return nil
	}
	s.options[idx].Ratings[indicatorID] = value
	return nil
}

// ResetOption restores an option's catalog reference ratings.
func (s *State) ResetOption(optionID string) error {
	idx := s.optionIndex(optionID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownOption, optionID)
	}
	ref, _ := s.cat.Option(optionID)
	s.options[idx].Ratings = ref.Ratings.Clone()
	return nil
}

// IsReadyForScoring reports whether every option has a rating for every
// catalog indicator.
func (s *State) IsReadyForScoring() bool {
	return len(s.Unrated()) == 0
}

// Unrated lists "option/indicator" pairs still missing a rating, sorted.
func (s *State) Unrated() []string {
	var out []string
	for _, o := range s.options {
		for _, ind := range s.cat.Indicators {
			v := o.Ratings[ind.ID]
			if v < catalog.MinRating || v > catalog.MaxRating {
				out = append(out, o.ID+"/"+ind.ID)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Reset restores catalog default weights, clears the preset selection and
// clears every rating. The step is left unchanged.
func (s *State) Reset() {
	s.weights = s.cat.DefaultWeights()
	s.department = ""
	s.customized = false
	s.options = make([]catalog.Option, len(s.cat.Options))
	for i, o := range s.cat.Options {
		o.Ratings = catalog.Ratings{}
		s.options[i] = o
	}
}

func (s *State) checkWeight(indicatorID string, v float64) error {
	if _, ok := s.cat.Indicator(indicatorID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownIndicator, indicatorID)
	}
	if math.IsNaN(v) || v < 0 || v > catalog.MaxWeight {
		return fmt.Errorf("%w: %v for %s (want 0-%v)", ErrInvalidWeight, v, indicatorID, catalog.MaxWeight)
	}
	return nil
}

// complete copies w and fills every catalog indicator it lacks with 0.
func (s *State) complete(w catalog.Weights) catalog.Weights {
	out := make(catalog.Weights, len(s.cat.Indicators))
	for _, ind := range s.cat.Indicators {
		out[ind.ID] = w[ind.ID]
	}
	return out
}

func (s *State) optionIndex(id string) int {
	for i, o := range s.options {
		if o.ID == id {
			return i
		}
	}
	return -1
}
