package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a catalog from a YAML or JSON file. The format is chosen by
// extension; anything other than .json is parsed as YAML.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var cat Catalog
	if isJSON(path) {
		err = json.Unmarshal(data, &cat)
	} else {
		err = yaml.Unmarshal(data, &cat)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &cat, nil
}

// Save writes a catalog to disk, as JSON or YAML by extension.
func Save(path string, cat *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for catalog: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(cat, "", "  ")
	} else {
		data, err = yaml.Marshal(cat)
	}
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// LoadWeights reads a flat indicator-to-weight YAML or JSON map.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights: %w", err)
	}
	var w Weights
	if isJSON(path) {
		err = json.Unmarshal(data, &w)
	} else {
		err = yaml.Unmarshal(data, &w)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing weights: %w", err)
	}
	return w, nil
}

// LoadRatings reads option ratings keyed by option id, then indicator id.
func LoadRatings(path string) (map[string]Ratings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ratings: %w", err)
	}
	var r map[string]Ratings
	if isJSON(path) {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing ratings: %w", err)
	}
	return r, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
