// Package session ties one wizard run to the scoring engine. It is the
// entry point for every UI surface: the HTTP API and the CLI both drive a
// Session rather than the wizard state directly.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/genaidss/genaidss/pkg/catalog"
	"github.com/genaidss/genaidss/pkg/scoring"
	"github.com/genaidss/genaidss/pkg/wizard"
)

var (
	// ErrWeightsInvalid is returned when leaving the weights step with a
	// configuration that does not sum to 1.
	ErrWeightsInvalid = errors.New("weights must sum to 100%")
	// ErrNotReady is returned when entering results with unrated options.
	ErrNotReady = errors.New("not every option is fully rated")
)

// Options configures the step guards.
type Options struct {
	RequireValidWeights bool `json:"require_valid_weights" yaml:"require_valid_weights"`
	RequireFullRatings  bool `json:"require_full_ratings" yaml:"require_full_ratings"`
}

// DefaultOptions mirrors the browser wizard: the weights page cannot be left
// with an invalid total, but partially rated options may still be scored.
func DefaultOptions() Options {
	return Options{RequireValidWeights: true}
}

// Session is one wizard run. It is not safe for concurrent use.
type Session struct {
	id     string
	state  *wizard.State
	engine *scoring.Engine
	opts   Options
	logger *zap.Logger

	// report is the current result set; nil once weights or ratings change.
	report *scoring.Report
}

// New starts a session over the catalog at the landing step.
func New(cat *catalog.Catalog, opts Options, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		id:     uuid.New().String(),
		state:  wizard.New(cat),
		engine: scoring.NewEngine(cat.Indicators...),
		opts:   opts,
		logger: logger,
	}
	s.logger.Debug("session started", zap.String("session", s.id))
	return s
}

func (s *Session) ID() string { return s.id }
func (s *Session) Catalog() *catalog.Catalog { return s.state.Catalog() }
func (s *Session) Step() wizard.Step { return s.state.Step() }
func (s *Session) Weights() catalog.Weights { return s.state.Weights() }
func (s *Session) Options() []catalog.Option { return s.state.Options() }
func (s *Session) Snapshot() wizard.Snapshot { return s.state.Snapshot() }
func (s *Session) Department() string { return s.state.Department() }
func (s *Session) Customized() bool { return s.state.Customized() }
func (s *Session) IsReadyForScoring() bool { return s.state.IsReadyForScoring() }
func (s *Session) Unrated() []string { return s.state.Unrated() }
func (s *Session) Engine() *scoring.Engine { return s.engine }
func (s *Session) GuardOptions() Options { return s.opts }

// Advance moves the wizard to the given step after running the guards.
// Entering results computes the ranking; leaving results for landing
// restarts the run under a new session id.
func (s *Session) Advance(to wizard.Step) error {
	from := s.state.Step()
	log := s.logger.With(
		zap.String("session", s.id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	if err := s.guard(from, to); err != nil {
		log.Info("transition blocked", zap.Error(err))
		return err
	}

	var report *scoring.Report
	if to == wizard.StepResults && wizard.CanTransition(from, to) {
		r, err := s.engine.Report(s.state.Options(), s.state.Weights())
		if err != nil {
			log.Warn("scoring failed", zap.Error(err))
			return err
		}
		report = r
	}

	if err := s.state.Advance(to); err != nil {
		log.Info("transition rejected", zap.Error(err))
		return err
	}

	switch {
	case report != nil:
		s.report = report
		if w, ok := report.Winner(); ok {
			log = log.With(zap.String("winner", w.OptionID), zap.Float64("score", w.WeightedScore))
		}
	case from == wizard.StepResults && to == wizard.StepLanding:
		s.report = nil
		s.id = uuid.New().String()
		log = log.With(zap.String("new_session", s.id))
	}
	log.Info("transition")
	return nil
}

// Restart is Advance(landing) from the results step.
func (s *Session) Restart() error {
	return s.Advance(wizard.StepLanding)
}

func (s *Session) guard(from, to wizard.Step) error {
	if !wizard.CanTransition(from, to) {
		return nil
	}
	if s.opts.RequireValidWeights && from == wizard.StepWeights {
		if v := s.engine.Validate(s.state.Weights()); !v.Valid {
			return fmt.Errorf("%w: total is %.0f%%", ErrWeightsInvalid, v.Total*100)
		}
	}
	if s.opts.RequireFullRatings && to == wizard.StepResults && !s.state.IsReadyForScoring() {
		return fmt.Errorf("%w: %d ratings missing", ErrNotReady, len(s.state.Unrated()))
	}
	return nil
}

// SetWeights replaces the weight configuration.
func (s *Session) SetWeights(w catalog.Weights) error {
	return s.mutate("set weights", func() error { return s.state.SetWeights(w) })
}

// SetWeight edits one indicator weight.
func (s *Session) SetWeight(indicatorID string, value float64) error {
	return s.mutate("set weight", func() error { return s.state.SetWeight(indicatorID, value) },
		zap.String("indicator", indicatorID), zap.Float64("value", value))
}

// SelectDepartment loads a weight preset.
func (s *Session) SelectDepartment(id string) error {
	return s.mutate("select department", func() error { return s.state.SelectDepartment(id) },
		zap.String("department", id))
}

// ResetWeights restores the selected preset or the catalog defaults.
func (s *Session) ResetWeights() {
	_ = s.mutate("reset weights", func() error {
		s.state.ResetWeights()
		return nil
	})
}

// SetRating upserts or clears one rating.
func (s *Session) SetRating(optionID, indicatorID string, value int) error {
	return s.mutate("set rating", func() error { return s.state.SetRating(optionID, indicatorID, value) },
		zap.String("option", optionID), zap.String("indicator", indicatorID), zap.Int("value", value))
}

// ResetOption restores an option's reference ratings.
func (s *Session) ResetOption(optionID string) error {
	return s.mutate("reset option", func() error { return s.state.ResetOption(optionID) },
		zap.String("option", optionID))
}

// mutate runs a state change and drops the cached results when it succeeds.
func (s *Session) mutate(op string, fn func() error, fields ...zap.Field) error {
	fields = append(fields, zap.String("session", s.id), zap.String("op", op))
	if err := fn(); err != nil {
		s.logger.Info("update rejected", append(fields, zap.Error(err))...)
		return err
	}
	s.report = nil
	s.logger.Debug("state updated", fields...)
	return nil
}

// Validation checks the current weights.
func (s *Session) Validation() scoring.ValidationResult {
	return s.engine.Validate(s.state.Weights())
}

// Preview returns the comparison-step scores for the current ratings.
func (s *Session) Preview() []scoring.PreviewScore {
	return s.engine.Preview(s.state.Options(), s.state.Weights())
}

// WeightChanges lists how the current weights deviate from the selected
// preset, or from the catalog defaults when none is selected.
func (s *Session) WeightChanges() []catalog.WeightChange {
	cat := s.state.Catalog()
	base := cat.DefaultWeights()
	if dept, ok := cat.Department(s.state.Department()); ok {
		base = dept.Weights
	}
	return catalog.DiffWeights(base, s.state.Weights())
}

// Report returns the current result set, computing it if no set is held.
func (s *Session) Report() (*scoring.Report, error) {
	if s.report != nil {
		return s.report, nil
	}
	r, err := s.engine.Report(s.state.Options(), s.state.Weights())
	if err != nil {
		return nil, err
	}
	s.report = r
	return r, nil
}
