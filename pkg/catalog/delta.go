package catalog

import (
	"math"
	"sort"
)

// WeightChange is one indicator whose weight differs between two configurations.
type WeightChange struct {
	IndicatorID string  `json:"indicator_id"`
	Base        float64 `json:"base"`
	Current     float64 `json:"current"`
	Delta       float64 `json:"delta"`
}

// changeEpsilon absorbs float noise from slider steps.
const changeEpsilon = 1e-9

// DiffWeights reports every indicator whose weight in current differs from
// base. Ids present on only one side compare against 0. Results are sorted
// by indicator id.
func DiffWeights(base, current Weights) []WeightChange {
	keys := make(map[string]bool, len(base)+len(current))
	for k := range base {
		keys[k] = true
	}
	for k := range current {
		keys[k] = true
	}

	var changes []WeightChange
	for k := range keys {
		b, c := base[k], current[k]
		if math.Abs(c-b) <= changeEpsilon {
			continue
		}
		changes = append(changes, WeightChange{
			IndicatorID: k,
			Base:        b,
			Current:     c,
			Delta:       c - b,
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].IndicatorID < changes[j].IndicatorID
	})
	return changes
}
