// Package catalog defines the static data model for the decision wizard:
// indicators, candidate options, department weight presets and the mined
// quality attributes behind each indicator.
// These types are the shared vocabulary across the scoring engine, the
// wizard state machine and every UI surface.
package catalog

import (
	"fmt"
	"math"
)

// Direction says whether a higher raw rating is better (Benefit) or worse (Cost).
type Direction string

const (
	Benefit Direction = "Benefit"
	Cost    Direction = "Cost"
)

// Rating and weight bounds shared by every component.
const (
	MinRating = 1
	MaxRating = 5
	MaxWeight = 0.5
)

// Indicator is one evaluation criterion with its catalog default weight.
type Indicator struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	LocalName   string    `json:"local_name,omitempty" yaml:"local_name,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Weight      float64   `json:"weight" yaml:"weight"`
	Direction   Direction `json:"direction" yaml:"direction"`
}

// Ratings maps indicator id to an integer rating in [MinRating, MaxRating].
// An absent entry means unrated.
type Ratings map[string]int

// Clone returns an independent copy.
func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Weights is a weight configuration: indicator id to weight in [0, MaxWeight].
type Weights map[string]float64

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Option is a candidate being evaluated. In a catalog, Ratings holds the
// reference ratings; inside a wizard run it holds the user's ratings.
type Option struct {
	ID          string  `json:"id" yaml:"id"`
	DisplayName string  `json:"display_name" yaml:"display_name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Ratings     Ratings `json:"ratings,omitempty" yaml:"ratings,omitempty"`
}

// Clone returns a deep copy of the option.
func (o Option) Clone() Option {
	o.Ratings = o.Ratings.Clone()
	return o
}

// Department is a named weight preset.
type Department struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Weights     Weights `json:"weights" yaml:"weights"`
}

// Sources records where a quality attribute was found.
type Sources struct {
	Literature bool `json:"literature" yaml:"literature"`
	Internal   bool `json:"internal" yaml:"internal"`
	UserVoice  bool `json:"user_voice" yaml:"user_voice"`
}

// Attribute is a mined quality statement grouped under an indicator.
type Attribute struct {
	ID             string  `json:"id" yaml:"id"`
	Text           string  `json:"text" yaml:"text"`
	Indicator      string  `json:"indicator" yaml:"indicator"` // indicator label as mined, e.g. "Response Time"
	Category       string  `json:"category" yaml:"category"`
	Sources        Sources `json:"sources" yaml:"sources"`
	FreqLiterature int     `json:"freq_literature" yaml:"freq_literature"`
}

// Catalog is the immutable configuration a wizard session is built from.
type Catalog struct {
	Indicators  []Indicator  `json:"indicators" yaml:"indicators"`
	Options     []Option     `json:"options" yaml:"options"`
	Departments []Department `json:"departments,omitempty" yaml:"departments,omitempty"`
	Attributes  []Attribute  `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Indicator looks up an indicator by id.
func (c *Catalog) Indicator(id string) (Indicator, bool) {
	for _, ind := range c.Indicators {
		if ind.ID == id {
			return ind, true
		}
	}
	return Indicator{}, false
}

// Option looks up an option by id.
func (c *Catalog) Option(id string) (Option, bool) {
	for _, opt := range c.Options {
		if opt.ID == id {
			return opt.Clone(), true
		}
	}
	return Option{}, false
}

// Department looks up a department preset by id.
func (c *Catalog) Department(id string) (Department, bool) {
	for _, d := range c.Departments {
		if d.ID == id {
			d.Weights = d.Weights.Clone()
			return d, true
		}
	}
	return Department{}, false
}

// IndicatorIDs returns indicator ids in catalog order.
func (c *Catalog) IndicatorIDs() []string {
	ids := make([]string, len(c.Indicators))
	for i, ind := range c.Indicators {
		ids[i] = ind.ID
	}
	return ids
}

// DefaultWeights returns the catalog default weight for every indicator.
func (c *Catalog) DefaultWeights() Weights {
	w := make(Weights, len(c.Indicators))
	for _, ind := range c.Indicators {
		w[ind.ID] = ind.Weight
	}
	return w
}

// Validate checks the catalog's internal consistency.
func (c *Catalog) Validate() error {
	if len(c.Indicators) == 0 {
		return fmt.Errorf("catalog has no indicators")
	}

	indicators := make(map[string]bool, len(c.Indicators))
	for _, ind := range c.Indicators {
		if ind.ID == "" {
			return fmt.Errorf("indicator with empty id")
		}
		if indicators[ind.ID] {
			return fmt.Errorf("duplicate indicator id %q", ind.ID)
		}
		indicators[ind.ID] = true
		if math.IsNaN(ind.Weight) || ind.Weight < 0 || ind.Weight > 1 {
			return fmt.Errorf("indicator %q: default weight %v outside [0,1]", ind.ID, ind.Weight)
		}
		switch ind.Direction {
		case Benefit, Cost, "":
		default:
			return fmt.Errorf("indicator %q: unknown direction %q", ind.ID, ind.Direction)
		}
	}

	options := make(map[string]bool, len(c.Options))
	for _, opt := range c.Options {
		if opt.ID == "" {
			return fmt.Errorf("option with empty id")
		}
		if options[opt.ID] {
			return fmt.Errorf("duplicate option id %q", opt.ID)
		}
		options[opt.ID] = true
		for id, v := range opt.Ratings {
			if !indicators[id] {
				return fmt.Errorf("option %q: rating for unknown indicator %q", opt.ID, id)
			}
			if v < MinRating || v > MaxRating {
				return fmt.Errorf("option %q: rating %d for %q outside [%d,%d]", opt.ID, v, id, MinRating, MaxRating)
			}
		}
	}

	departments := make(map[string]bool, len(c.Departments))
	for _, d := range c.Departments {
		if d.ID == "" {
			return fmt.Errorf("department with empty id")
		}
		if departments[d.ID] {
			return fmt.Errorf("duplicate department id %q", d.ID)
		}
		departments[d.ID] = true
		for id, v := range d.Weights {
			if !indicators[id] {
				return fmt.Errorf("department %q: weight for unknown indicator %q", d.ID, id)
			}
			if math.IsNaN(v) || v < 0 || v > MaxWeight {
				return fmt.Errorf("department %q: weight %v for %q outside [0,%v]", d.ID, v, id, MaxWeight)
			}
		}
	}

	return nil
}
