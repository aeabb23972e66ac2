// Package mining derives indicator weights from attribute importance surveys.
//
// The input is two CSV files: an attribute list mapping each attribute id to
// an indicator hint, and a survey with one row per respondent and one column
// per attribute id holding an importance score. Blank cells are missing
// answers and are skipped, never counted as zero.
package mining

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/genaidss/genaidss/pkg/catalog"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing column")

// Attribute is one row of the attribute list.
type Attribute struct {
	ID            string            `json:"attr_id" yaml:"attr_id"`
	IndicatorHint string            `json:"indicator_hint" yaml:"indicator_hint"`
	Extra         map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Survey holds raw survey answers, one record per respondent.
type Survey struct {
	Header  []string
	Records [][]string
	index   map[string]int
}

// Importance is the summary of one attribute's survey answers.
type Importance struct {
	AttributeID   string  `json:"attr_id" yaml:"attr_id"`
	IndicatorHint string  `json:"indicator_hint" yaml:"indicator_hint"`
	Mean          float64 `json:"importance_mean" yaml:"importance_mean"`
	Std           float64 `json:"importance_std" yaml:"importance_std"`
	Count         int     `json:"count" yaml:"count"`
}

// IndicatorWeight is a derived weight for one indicator hint.
type IndicatorWeight struct {
	IndicatorHint string  `json:"indicator_hint" yaml:"indicator_hint"`
	Score         float64 `json:"indicator_score" yaml:"indicator_score"`
	Weight        float64 `json:"weight" yaml:"weight"`
	WeightPercent float64 `json:"weight_percent" yaml:"weight_percent"`
}

// CorrelationMatrix is a symmetric Pearson matrix over attribute columns.
// Cells are NaN where a pair has fewer than two shared answers or a column
// is constant.
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// At returns the correlation between two attribute ids.
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, l := range m.Labels {
		if l == a {
			i = k
		}
		if l == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// ReadAttributes parses the attribute list. The attr_id and indicator_hint
// columns are required; any other column is kept in Extra.
func ReadAttributes(r io.Reader) ([]Attribute, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading attributes: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading attributes: %w: attr_id", ErrMissingColumn)
	}

	header := trimHeader(rows[0])
	idCol, hintCol := indexOf(header, "attr_id"), indexOf(header, "indicator_hint")
	if idCol < 0 {
		return nil, fmt.Errorf("reading attributes: %w: attr_id", ErrMissingColumn)
	}
	if hintCol < 0 {
		return nil, fmt.Errorf("reading attributes: %w: indicator_hint", ErrMissingColumn)
	}

	var attrs []Attribute
	for n, row := range rows[1:] {
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			return nil, fmt.Errorf("attributes row %d: empty attr_id", n+2)
		}
		a := Attribute{ID: id, IndicatorHint: strings.TrimSpace(row[hintCol])}
		for i, col := range header {
			if i == idCol || i == hintCol || i >= len(row) {
				continue
			}
			if a.Extra == nil {
				a.Extra = make(map[string]string)
			}
			a.Extra[col] = row[i]
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// ReadSurvey parses survey answers. Values are validated lazily, per
// attribute column, when statistics are computed.
func ReadSurvey(r io.Reader) (*Survey, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading survey: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading survey: empty file")
	}
	s := &Survey{Header: trimHeader(rows[0]), Records: rows[1:], index: make(map[string]int)}
	for i, col := range s.Header {
		s.index[col] = i
	}
	return s, nil
}

// Has reports whether the survey has a column for the attribute.
func (s *Survey) Has(attrID string) bool {
	_, ok := s.index[attrID]
	return ok
}

// Respondents returns the number of survey rows.
func (s *Survey) Respondents() int { return len(s.Records) }

// Values returns a column as floats, NaN for blank answers.
func (s *Survey) Values(attrID string) ([]float64, error) {
	col, ok := s.index[attrID]
	if !ok {
		return nil, fmt.Errorf("survey: %w: %s", ErrMissingColumn, attrID)
	}
	out := make([]float64, len(s.Records))
	for i, rec := range s.Records {
		var cell string
		if col < len(rec) {
			cell = strings.TrimSpace(rec[col])
		}
		if cell == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("survey row %d column %s: %w", i+2, attrID, err)
		}
		out[i] = v
	}
	return out, nil
}

// AttributeImportance summarises each attribute's answers. Attributes with
// no survey column are left out.
func AttributeImportance(attrs []Attribute, survey *Survey) ([]Importance, error) {
	var out []Importance
	for _, a := range attrs {
		if !survey.Has(a.ID) {
			continue
		}
		vals, err := survey.Values(a.ID)
		if err != nil {
			return nil, err
		}
		mean, std, n := describe(vals)
		out = append(out, Importance{
			AttributeID:   a.ID,
			IndicatorHint: a.IndicatorHint,
			Mean:          mean,
			Std:           std,
			Count:         n,
		})
	}
	return out, nil
}

// IndicatorWeights groups importances by indicator hint. An indicator's
// score is the mean of its attribute means; its weight is its share of the
// total score. Results are sorted by hint.
func IndicatorWeights(importance []Importance) []IndicatorWeight {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, imp := range importance {
		if imp.Count == 0 || math.IsNaN(imp.Mean) {
			continue
		}
		sums[imp.IndicatorHint] += imp.Mean
		counts[imp.IndicatorHint]++
	}

	hints := make([]string, 0, len(sums))
	for h := range sums {
		hints = append(hints, h)
	}
	sort.Strings(hints)

	var total float64
	out := make([]IndicatorWeight, 0, len(hints))
	for _, h := range hints {
		score := sums[h] / float64(counts[h])
		total += score
		out = append(out, IndicatorWeight{IndicatorHint: h, Score: score})
	}
	if total == 0 {
		return out
	}
	for i := range out {
		out[i].Weight = out[i].Score / total
		out[i].WeightPercent = out[i].Weight * 100
	}
	return out
}

// Correlation builds the pairwise-complete Pearson matrix over the
// attribute columns present in the survey, in attribute order.
func Correlation(attrs []Attribute, survey *Survey) (*CorrelationMatrix, error) {
	var labels []string
	var cols [][]float64
	for _, a := range attrs {
		if !survey.Has(a.ID) {
			continue
		}
		vals, err := survey.Values(a.ID)
		if err != nil {
			return nil, err
		}
		labels = append(labels, a.ID)
		cols = append(cols, vals)
	}

	m := &CorrelationMatrix{Labels: labels, Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := pearson(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// ToCatalogWeights maps derived weights onto catalog indicator ids. Every
// catalog indicator appears in the result, 0 when nothing maps to it.
// Hints that match no indicator are returned as unmapped.
func ToCatalogWeights(weights []IndicatorWeight, cat *catalog.Catalog) (catalog.Weights, []string) {
	out := make(catalog.Weights, len(cat.Indicators))
	for _, id := range cat.IndicatorIDs() {
		out[id] = 0
	}
	var unmapped []string
	for _, w := range weights {
		id, ok := cat.ResolveIndicator(w.IndicatorHint)
		if !ok {
			unmapped = append(unmapped, w.IndicatorHint)
			continue
		}
		out[id] += w.Weight
	}
	return out, unmapped
}

// describe returns mean, sample standard deviation and count over the
// non-NaN values. Std is NaN with fewer than two values.
func describe(vals []float64) (mean, std float64, n int) {
	var sum float64
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), math.NaN(), 0
	}
	mean = sum / float64(n)
	if n < 2 {
		return mean, math.NaN(), n
	}
	var ss float64
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / float64(n-1)), n
}

func pearson(x, y []float64) float64 {
	var xs, ys []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	mx, _, _ := describe(xs)
	my, _, _ := describe(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}

func trimHeader(h []string) []string {
	out := make([]string, len(h))
	for i, col := range h {
		// Excel exports often start with a UTF-8 BOM.
		out[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}
	return out
}

func indexOf(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}
