package wizard

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/genaidss/genaidss/pkg/catalog"
)

func newTestState() *State {
	return New(catalog.Default())
}

// walkTo advances a fresh state through the sequence up to target.
func walkTo(t *testing.T, s *State, target Step) {
	t.Helper()
	for s.Step() != target {
		if err := s.Advance(s.Step().Next()); err != nil {
			t.Fatalf("Advance(%s) from %s: %v", s.Step().Next(), s.Step(), err)
		}
	}
}

// --- Construction ---

func TestNew_InitialState(t *testing.T) {
	cat := catalog.Default()
	s := New(cat)

	if s.Step() != StepLanding {
		t.Errorf("Step = %s, want landing", s.Step())
	}
	if !reflect.DeepEqual(s.Weights(), cat.DefaultWeights()) {
		t.Errorf("Weights = %v, want catalog defaults", s.Weights())
	}
	if s.Department() != "" || s.Customized() {
		t.Errorf("Department=%q Customized=%v, want empty/false", s.Department(), s.Customized())
	}
	opts := s.Options()
	if len(opts) != len(cat.Options) {
		t.Fatalf("Options = %d, want %d", len(opts), len(cat.Options))
	}
	for _, o := range opts {
		if len(o.Ratings) != 0 {
			t.Errorf("option %s starts with ratings %v", o.ID, o.Ratings)
		}
	}
	if s.IsReadyForScoring() {
		t.Error("fresh state should not be ready for scoring")
	}
}

// --- Transitions ---

func TestAdvance_FullSequence(t *testing.T) {
	s := newTestState()
	for _, to := range Steps[1:] {
		if err := s.Advance(to); err != nil {
			t.Fatalf("Advance(%s): %v", to, err)
		}
		if s.Step() != to {
			t.Errorf("Step = %s, want %s", s.Step(), to)
		}
	}
	if err := s.Advance(StepLanding); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Step() != StepLanding {
		t.Errorf("Step after restart = %s, want landing", s.Step())
	}
}

func TestAdvance_RejectsEveryOtherEdge(t *testing.T) {
	for _, from := range Steps {
		for _, to := range Steps {
			if CanTransition(from, to) {
				continue
			}
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				s := newTestState()
				walkTo(t, s, from)
				before := s.Snapshot()

				err := s.Advance(to)
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("Advance = %v, want ErrInvalidTransition", err)
				}
				if !reflect.DeepEqual(s.Snapshot(), before) {
					t.Error("rejected transition changed state")
				}
			})
		}
	}
}

func TestCanTransition_Count(t *testing.T) {
	n := 0
	for _, from := range Steps {
		for _, to := range Steps {
			if CanTransition(from, to) {
				n++
			}
		}
	}
	if n != 5 {
		t.Errorf("allowed transitions = %d, want 5", n)
	}
}

func TestAdvance_RestartResets(t *testing.T) {
	cat := catalog.Default()
	s := New(cat)

	if err := s.SelectDepartment("research"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetWeight("accuracy", 0.5); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRating("chatgpt", "accuracy", 3); err != nil {
		t.Fatal(err)
	}
	walkTo(t, s, StepResults)

	if err := s.Advance(StepLanding); err != nil {
		t.Fatalf("restart: %v", err)
	}

	if !reflect.DeepEqual(s.Weights(), cat.DefaultWeights()) {
		t.Errorf("Weights after restart = %v, want catalog defaults", s.Weights())
	}
	if s.Department() != "" || s.Customized() {
		t.Error("restart should clear department and customized")
	}
	for _, o := range s.Options() {
		for _, ind := range cat.Indicators {
			if o.Ratings[ind.ID] != 0 {
				t.Errorf("%s/%s = %d after restart, want 0", o.ID, ind.ID, o.Ratings[ind.ID])
			}
		}
	}
}

func TestParseStep(t *testing.T) {
	for _, st := range Steps {
		got, err := ParseStep(string(st))
		if err != nil || got != st {
			t.Errorf("ParseStep(%q) = %q, %v", st, got, err)
		}
	}
	if _, err := ParseStep("summary"); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("ParseStep(summary) err = %v, want ErrUnknownStep", err)
	}
	if StepWeights.Index() != 2 || Step("x").Index() != -1 {
		t.Error("Index() mismatch")
	}
}

// --- Ratings ---

func TestSetRating(t *testing.T) {
	tests := []struct {
		name    string
		option  string
		ind     string
		value   int
		wantErr error
	}{
		{"lowest", "chatgpt", "accuracy", 1, nil},
		{"highest", "chatgpt", "accuracy", 5, nil},
		{"clear", "chatgpt", "accuracy", 0, nil},
		{"six", "chatgpt", "accuracy", 6, ErrInvalidRating},
		{"negative", "chatgpt", "accuracy", -1, ErrInvalidRating},
		{"unknown option", "claude", "accuracy", 3, ErrUnknownOption},
		{"unknown indicator", "chatgpt", "speed", 3, ErrUnknownIndicator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			err := s.SetRating(tt.option, tt.ind, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSetRating_SixLeavesStateUnchanged(t *testing.T) {
	s := newTestState()
	if err := s.SetRating("gemini", "clarity", 4); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()

	if err := s.SetRating("gemini", "clarity", 6); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("err = %v, want ErrInvalidRating", err)
	}
	if !reflect.DeepEqual(s.Snapshot(), before) {
		t.Error("failed SetRating changed state")
	}
}

func TestSetRating_ZeroClears(t *testing.T) {
	s := newTestState()
	if err := s.SetRating("gemini", "clarity", 4); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRating("gemini", "clarity", 0); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, o := range s.Options() {
		if o.ID != "gemini" {
			continue
		}
		if _, ok := o.Ratings["clarity"]; ok {
			t.Errorf("clarity still rated: %v", o.Ratings)
		}
	}
}

func TestOptions_ReturnsCopy(t *testing.T) {
	s := newTestState()
	opts := s.Options()
	opts[0].Ratings["accuracy"] = 5

	if s.Options()[0].Ratings["accuracy"] != 0 {
		t.Error("Options() leaked internal state")
	}
}

func TestResetOption(t *testing.T) {
	s := newTestState()
	if err := s.SetRating("deepseek", "accuracy", 1); err != nil {
		t.Fatal(err)
	}
	if err := s.ResetOption("deepseek"); err != nil {
		t.Fatalf("ResetOption: %v", err)
	}

	ref, _ := catalog.Default().Option("deepseek")
	for _, o := range s.Options() {
		if o.ID == "deepseek" && !reflect.DeepEqual(o.Ratings, ref.Ratings) {
			t.Errorf("deepseek ratings = %v, want %v", o.Ratings, ref.Ratings)
		}
	}

	if err := s.ResetOption("nope"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("ResetOption(nope) err = %v, want ErrUnknownOption", err)
	}
}

func TestIsReadyForScoring(t *testing.T) {
	s := newTestState()
	for _, o := range s.Options() {
		if err := s.ResetOption(o.ID); err != nil {
			t.Fatal(err)
		}
	}
	if !s.IsReadyForScoring() {
		t.Fatalf("fully rated state not ready; unrated = %v", s.Unrated())
	}

	if err := s.SetRating("gemini", "responseTime", 0); err != nil {
		t.Fatal(err)
	}
	if s.IsReadyForScoring() {
		t.Error("state with a cleared rating should not be ready")
	}
	if got := s.Unrated(); len(got) != 1 || got[0] != "gemini/responseTime" {
		t.Errorf("Unrated() = %v, want [gemini/responseTime]", got)
	}
}

// --- Weights ---

func TestSetWeights_DoesNotCheckSum(t *testing.T) {
	s := newTestState()
	w := catalog.Weights{"accuracy": 0.5, "relevance": 0.5, "clarity": 0.5}

	if err := s.SetWeights(w); err != nil {
		t.Fatalf("SetWeights: %v", err)
	}
	if !s.Customized() {
		t.Error("SetWeights should mark customized")
	}

	got := s.Weights()
	if len(got) != 7 {
		t.Errorf("weights have %d entries, want every catalog indicator", len(got))
	}
	if got["responseTime"] != 0 {
		t.Errorf("missing indicator stored as %v, want 0", got["responseTime"])
	}

	w["accuracy"] = 0
	if s.Weights()["accuracy"] != 0.5 {
		t.Error("SetWeights kept a reference to the caller's map")
	}
}

func TestSetWeights_Atomic(t *testing.T) {
	tests := []struct {
		name    string
		weights catalog.Weights
		wantErr error
	}{
		{"above max", catalog.Weights{"accuracy": 0.2, "relevance": 0.6}, ErrInvalidWeight},
		{"negative", catalog.Weights{"accuracy": -0.1}, ErrInvalidWeight},
		{"nan", catalog.Weights{"accuracy": math.NaN()}, ErrInvalidWeight},
		{"unknown id", catalog.Weights{"accuracy": 0.2, "speed": 0.1}, ErrUnknownIndicator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			before := s.Snapshot()
			if err := s.SetWeights(tt.weights); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(s.Snapshot(), before) {
				t.Error("failed SetWeights changed state")
			}
		})
	}
}

func TestSetWeight(t *testing.T) {
	s := newTestState()
	if err := s.SetWeight("clarity", 0.3); err != nil {
		t.Fatalf("SetWeight: %v", err)
	}
	if s.Weights()["clarity"] != 0.3 || !s.Customized() {
		t.Errorf("clarity=%v customized=%v", s.Weights()["clarity"], s.Customized())
	}
	if err := s.SetWeight("clarity", 0.51); !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("SetWeight(0.51) err = %v, want ErrInvalidWeight", err)
	}
	if err := s.SetWeight("speed", 0.1); !errors.Is(err, ErrUnknownIndicator) {
		t.Errorf("SetWeight(speed) err = %v, want ErrUnknownIndicator", err)
	}
}

func TestSelectDepartmentAndResetWeights(t *testing.T) {
	s := newTestState()

	if err := s.SelectDepartment("it"); err != nil {
		t.Fatalf("SelectDepartment: %v", err)
	}
	if s.Department() != "it" || s.Customized() {
		t.Errorf("Department=%q Customized=%v", s.Department(), s.Customized())
	}
	if s.Weights()["accuracy"] != 0.25 || s.Weights()["appropriateness"] != 0.05 {
		t.Errorf("weights = %v, want IT preset", s.Weights())
	}

	if err := s.SetWeight("accuracy", 0.1); err != nil {
		t.Fatal(err)
	}
	s.ResetWeights()
	if s.Weights()["accuracy"] != 0.25 || s.Customized() {
		t.Errorf("after ResetWeights: accuracy=%v customized=%v", s.Weights()["accuracy"], s.Customized())
	}

	if err := s.SelectDepartment("finance"); !errors.Is(err, ErrUnknownDepartment) {
		t.Errorf("SelectDepartment(finance) err = %v, want ErrUnknownDepartment", err)
	}
	if s.Department() != "it" {
		t.Error("failed SelectDepartment changed the selection")
	}
}

func TestResetWeights_NoDepartment(t *testing.T) {
	cat := catalog.Default()
	s := New(cat)
	if err := s.SetWeights(catalog.Weights{"accuracy": 0.5}); err != nil {
		t.Fatal(err)
	}
	s.ResetWeights()
	if !reflect.DeepEqual(s.Weights(), cat.DefaultWeights()) {
		t.Errorf("Weights = %v, want catalog defaults", s.Weights())
	}
}

func TestReset_KeepsStep(t *testing.T) {
	s := newTestState()
	walkTo(t, s, StepComparison)
	if err := s.SetRating("chatgpt", "accuracy", 5); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	if s.Step() != StepComparison {
		t.Errorf("Step = %s, want comparison", s.Step())
	}
	if s.Options()[0].Ratings["accuracy"] != 0 {
		t.Error("Reset should clear ratings")
	}
}
