package mining

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genaidss/genaidss/pkg/catalog"
)

func loadFixtures(t *testing.T) ([]Attribute, *Survey) {
	t.Helper()
	af, err := os.Open(filepath.Join("..", "..", "testdata", "attributes.csv"))
	require.NoError(t, err)
	defer af.Close()
	attrs, err := ReadAttributes(af)
	require.NoError(t, err)

	sf, err := os.Open(filepath.Join("..", "..", "testdata", "survey.csv"))
	require.NoError(t, err)
	defer sf.Close()
	survey, err := ReadSurvey(sf)
	require.NoError(t, err)
	return attrs, survey
}

func TestReadAttributes(t *testing.T) {
	attrs, _ := loadFixtures(t)
	require.Len(t, attrs, 5)
	assert.Equal(t, "A1", attrs[0].ID)
	assert.Equal(t, "Accuracy", attrs[0].IndicatorHint)
	assert.Equal(t, "Answers are factual", attrs[0].Extra["text"])
	assert.Equal(t, "Responsiveness", attrs[3].IndicatorHint)
}

func TestReadAttributes_MissingColumns(t *testing.T) {
	_, err := ReadAttributes(strings.NewReader("id,indicator_hint\nA1,Accuracy\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadAttributes(strings.NewReader("attr_id,text\nA1,foo\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadAttributes(strings.NewReader("attr_id,indicator_hint\n,Accuracy\n"))
	assert.Error(t, err)
}

func TestReadAttributes_BOMHeader(t *testing.T) {
	attrs, err := ReadAttributes(strings.NewReader("\ufeffattr_id,indicator_hint\nA1,Accuracy\n"))
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	assert.Equal(t, "A1", attrs[0].ID)
}

func TestSurveyValues(t *testing.T) {
	_, survey := loadFixtures(t)
	assert.Equal(t, 3, survey.Respondents())
	assert.True(t, survey.Has("A2"))
	assert.False(t, survey.Has("X9"))

	vals, err := survey.Values("A2")
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.Equal(t, 4.0, vals[0])
	assert.True(t, math.IsNaN(vals[2]), "blank cell should be NaN")

	_, err = survey.Values("X9")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestSurveyValues_NonNumeric(t *testing.T) {
	survey, err := ReadSurvey(strings.NewReader("respondent,A1\nr1,high\n"))
	require.NoError(t, err)
	_, err = survey.Values("A1")
	assert.Error(t, err)
}

func TestAttributeImportance(t *testing.T) {
	attrs, survey := loadFixtures(t)
	imp, err := AttributeImportance(attrs, survey)
	require.NoError(t, err)

	// X9 has no survey column.
	require.Len(t, imp, 4)

	byID := make(map[string]Importance)
	for _, i := range imp {
		byID[i.AttributeID] = i
	}

	a1 := byID["A1"]
	assert.InDelta(t, 4.0, a1.Mean, 1e-9)
	assert.InDelta(t, 1.0, a1.Std, 1e-9)
	assert.Equal(t, 3, a1.Count)

	a2 := byID["A2"]
	assert.InDelta(t, 4.0, a2.Mean, 1e-9)
	assert.InDelta(t, 0.0, a2.Std, 1e-9)
	assert.Equal(t, 2, a2.Count, "blank answer must not count")

	assert.InDelta(t, 3.0, byID["RT1"].Mean, 1e-9)
	assert.InDelta(t, 1.0, byID["RT1"].Std, 1e-9)
}

func TestIndicatorWeights(t *testing.T) {
	attrs, survey := loadFixtures(t)
	imp, err := AttributeImportance(attrs, survey)
	require.NoError(t, err)

	weights := IndicatorWeights(imp)
	require.Len(t, weights, 3)

	// Accuracy = mean(4, 4) = 4, Clarity = 3, Responsiveness = 3; total 10.
	want := []struct {
		hint   string
		score  float64
		weight float64
	}{
		{"Accuracy", 4, 0.4},
		{"Clarity", 3, 0.3},
		{"Responsiveness", 3, 0.3},
	}
	var sum float64
	for i, w := range want {
		assert.Equal(t, w.hint, weights[i].IndicatorHint)
		assert.InDelta(t, w.score, weights[i].Score, 1e-9)
		assert.InDelta(t, w.weight, weights[i].Weight, 1e-9)
		assert.InDelta(t, w.weight*100, weights[i].WeightPercent, 1e-9)
		sum += weights[i].Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestIndicatorWeights_Empty(t *testing.T) {
	assert.Empty(t, IndicatorWeights(nil))

	// A hint whose only attribute had no answers is dropped.
	got := IndicatorWeights([]Importance{
		{AttributeID: "A", IndicatorHint: "Accuracy", Mean: 4, Count: 2},
		{AttributeID: "B", IndicatorHint: "Clarity", Mean: math.NaN(), Count: 0},
	})
	require.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0].Weight, 1e-9)
}

func TestCorrelation(t *testing.T) {
	attrs, survey := loadFixtures(t)
	m, err := Correlation(attrs, survey)
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2", "C1", "RT1"}, m.Labels)

	r, ok := m.At("A1", "RT1")
	require.True(t, ok)
	assert.InDelta(t, -0.5, r, 1e-9)

	sym, _ := m.At("RT1", "A1")
	assert.Equal(t, r, sym)

	self, _ := m.At("A1", "A1")
	assert.InDelta(t, 1.0, self, 1e-9)

	// C1 is constant, A2 is constant over the rows shared with A1.
	c, _ := m.At("A1", "C1")
	assert.True(t, math.IsNaN(c))
	c, _ = m.At("A1", "A2")
	assert.True(t, math.IsNaN(c))

	_, ok = m.At("A1", "X9")
	assert.False(t, ok)
}

func TestToCatalogWeights(t *testing.T) {
	cat := catalog.Default()
	weights := []IndicatorWeight{
		{IndicatorHint: "Accuracy", Weight: 0.4},
		{IndicatorHint: "Clarity", Weight: 0.3},
		{IndicatorHint: "Responsiveness", Weight: 0.2},
		{IndicatorHint: "Humor", Weight: 0.1},
	}

	got, unmapped := ToCatalogWeights(weights, cat)
	assert.Len(t, got, len(cat.Indicators))
	assert.InDelta(t, 0.4, got["accuracy"], 1e-9)
	assert.InDelta(t, 0.3, got["clarity"], 1e-9)
	assert.InDelta(t, 0.2, got["responseTime"], 1e-9)
	assert.Equal(t, 0.0, got["relevance"])
	assert.Equal(t, []string{"Humor"}, unmapped)
}
