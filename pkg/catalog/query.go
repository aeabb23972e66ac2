package catalog

import (
	"sort"
	"strings"
)

// indicatorAliases lists extra attribute labels grouped under an indicator.
// The survey pipeline used these hint names before the indicators were renamed.
var indicatorAliases = map[string][]string{
	"coherence":       {"Conciseness_Coherence"},
	"appropriateness": {"Tone_Appropriateness"},
	"responseTime":    {"Responsiveness"},
}

// Coverage summarises where the attributes of one indicator came from.
type Coverage struct {
	IndicatorID    string  `json:"indicator_id"`
	Attributes     int     `json:"attributes"`
	Literature     int     `json:"literature"`
	Internal       int     `json:"internal"`
	UserVoice      int     `json:"user_voice"`
	MeanLiterature float64 `json:"mean_literature_freq"`
}

// ResolveIndicator maps a mined label (an id, a display name or a legacy
// alias) to a catalog indicator id.
func (c *Catalog) ResolveIndicator(label string) (string, bool) {
	norm := normalizeLabel(label)
	for _, ind := range c.Indicators {
		if normalizeLabel(ind.ID) == norm || normalizeLabel(ind.Name) == norm {
			return ind.ID, true
		}
	}
	for id, aliases := range indicatorAliases {
		if _, ok := c.Indicator(id); !ok {
			continue
		}
		for _, a := range aliases {
			if normalizeLabel(a) == norm {
				return id, true
			}
		}
	}
	return "", false
}

// AttributesByIndicator returns the attributes grouped under an indicator,
// in catalog order.
func (c *Catalog) AttributesByIndicator(indicatorID string) []Attribute {
	var out []Attribute
	for _, a := range c.Attributes {
		if id, ok := c.ResolveIndicator(a.Indicator); ok && id == indicatorID {
			out = append(out, a)
		}
	}
	return out
}

// SourceCoverage returns per-indicator source counts, in indicator order.
func (c *Catalog) SourceCoverage() []Coverage {
	byID := make(map[string]*Coverage, len(c.Indicators))
	freq := make(map[string]int, len(c.Indicators))
	for _, ind := range c.Indicators {
		byID[ind.ID] = &Coverage{IndicatorID: ind.ID}
	}

	for _, a := range c.Attributes {
		id, ok := c.ResolveIndicator(a.Indicator)
		if !ok {
			continue
		}
		cov := byID[id]
		cov.Attributes++
		if a.Sources.Literature {
			cov.Literature++
		}
		if a.Sources.Internal {
			cov.Internal++
		}
		if a.Sources.UserVoice {
			cov.UserVoice++
		}
		freq[id] += a.FreqLiterature
	}

	out := make([]Coverage, 0, len(c.Indicators))
	for _, ind := range c.Indicators {
		cov := byID[ind.ID]
		if cov.Attributes > 0 {
			cov.MeanLiterature = float64(freq[ind.ID]) / float64(cov.Attributes)
		}
		out = append(out, *cov)
	}
	return out
}

// Categories returns the distinct attribute categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range c.Attributes {
		if a.Category != "" && !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	sort.Strings(out)
	return out
}

// normalizeLabel folds case and drops spaces and underscores so that
// "Response Time", "response_time" and "responseTime" compare equal.
func normalizeLabel(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}
