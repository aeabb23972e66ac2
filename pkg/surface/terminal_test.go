package surface_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/genaidss/genaidss/pkg/catalog"
	"github.com/genaidss/genaidss/pkg/scoring"
	"github.com/genaidss/genaidss/pkg/surface"
)

func sampleReport(t *testing.T) *scoring.Report {
	t.Helper()
	cat := catalog.Default()
	dept, _ := cat.Department("hcd")
	report, err := scoring.NewEngine(cat.Indicators...).Report(cat.Options, dept.Weights)
	if err != nil {
		t.Fatalf("building report: %v", err)
	}
	return report
}

func invalidReport(t *testing.T) *scoring.Report {
	t.Helper()
	cat := catalog.Default()
	w := cat.DefaultWeights()
	w["responseTime"] = 0.15
	report, err := scoring.NewEngine(cat.Indicators...).Report(cat.Options, w)
	if err != nil {
		t.Fatalf("building report: %v", err)
	}
	return report
}

func TestTerminalRenderer(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := &surface.TerminalRenderer{}
	if err := r.Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Recommended: Perplexity (90.0%)",
		"Ranking:",
		"1. Perplexity",
		"4. Gemini",
		"Breakdown:",
		"Response Time",
		"Why Perplexity:",
		"Accuracy rated 5/5 at 20% weight adds 20.0 points",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("NO_COLOR set but output contains ANSI escapes")
	}
	if strings.Contains(out, "not 100%") {
		t.Error("valid weights should not produce a warning")
	}
}

func TestTerminalRenderer_InvalidWeights(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, invalidReport(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "weights total 95%, not 100%") {
		t.Errorf("expected weight warning, got:\n%s", buf.String())
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded struct {
		Results []struct {
			OptionID string `json:"option_id"`
			Rank     int    `json:"rank"`
		} `json:"results"`
		Validation struct {
			Valid bool `json:"valid"`
		} `json:"validation"`
		Recommendation struct {
			OptionID string `json:"option_id"`
		} `json:"recommendation"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Results) != 4 || decoded.Results[0].OptionID != "perplexity" {
		t.Errorf("results = %+v", decoded.Results)
	}
	if !decoded.Validation.Valid || decoded.Recommendation.OptionID != "perplexity" {
		t.Errorf("validation=%v recommendation=%q", decoded.Validation.Valid, decoded.Recommendation.OptionID)
	}
}

func TestCSVRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.CSVRenderer{}).Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want header + 4", len(rows))
	}

	wantHeader := "Rank,Model,Weighted Score (%),Accuracy,Relevance,Clarity,Coherence,Completeness,Appropriateness,Response Time"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Errorf("header = %q\nwant      %q", got, wantHeader)
	}

	wantFirst := "1,Perplexity,90.00,20.00,15.00,8.00,8.00,15.00,8.00,16.00"
	if got := strings.Join(rows[1], ","); got != wantFirst {
		t.Errorf("first row = %q, want %q", got, wantFirst)
	}
	if rows[4][1] != "Gemini" || rows[4][2] != "84.00" {
		t.Errorf("last row = %v", rows[4])
	}
}

func TestCSVRenderer_WithRatingsAndWeights(t *testing.T) {
	var buf bytes.Buffer
	r := &surface.CSVRenderer{WithRatings: true, WithWeights: true}
	if err := r.Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("rows = %d, want header + 4 + weight row", len(rows))
	}
	if len(rows[0]) != 3+7+7 {
		t.Errorf("columns = %d, want 17", len(rows[0]))
	}
	if rows[0][10] != "Accuracy Rating" {
		t.Errorf("first rating column = %q", rows[0][10])
	}
	if rows[1][10] != "5" {
		t.Errorf("perplexity accuracy rating = %q, want 5", rows[1][10])
	}

	weightRow := rows[5]
	if weightRow[1] != "Weight" || weightRow[2] != "100.00" || weightRow[3] != "20.00" {
		t.Errorf("weight row = %v", weightRow)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.MarkdownRenderer{}).Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"## Recommendation: Perplexity (90.0%)",
		"### Ranking",
		"| 1 | Perplexity | 90.0% |",
		"### Weights",
		"| Accuracy | 20% |",
		"| **Total** | **100%** |",
		"### Why Perplexity",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}

	invalid := surface.BuildMarkdownSummary(invalidReport(t))
	if !strings.Contains(invalid, "Weights total 95% instead of 100%") {
		t.Errorf("expected weight warning in:\n%s", invalid)
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"text", false},
		{"json", false},
		{"csv", false},
		{"markdown", false},
		{"md", false},
		{"xlsx", true},
	}
	for _, tc := range tests {
		r, err := surface.ForFormat(tc.format, false)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ForFormat(%q) expected error", tc.format)
			}
			continue
		}
		if err != nil || r == nil {
			t.Errorf("ForFormat(%q) = %v, %v", tc.format, r, err)
		}
	}
}
