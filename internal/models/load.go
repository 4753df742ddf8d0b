package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a metrics document of the form {model: {metric: value}}.
// YAML documents (.yaml, .yml) keep the model order of the file; JSON
// documents (.json) are ordered by model name.
func LoadFile(path string) (*Comparator, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metrics: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(b)
	case ".json":
		return ParseJSON(b)
	default:
		return nil, fmt.Errorf("unsupported metrics format %q (use .yaml or .json)", filepath.Ext(path))
	}
}

// ParseJSON decodes a JSON metrics document.
func ParseJSON(b []byte) (*Comparator, error) {
	var m map[string]map[string]float64
	if err := gojson.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode metrics json: %w", err)
	}
	return New(m), nil
}

// ParseYAML decodes a YAML metrics document, preserving model order.
func ParseYAML(b []byte) (*Comparator, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode metrics yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return New(nil), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode metrics yaml: line %d: want a mapping of model names", root.Line)
	}
	recs := make([]Record, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var metrics map[string]float64
		if err := root.Content[i+1].Decode(&metrics); err != nil {
			return nil, fmt.Errorf("decode metrics for %q: %w", name, err)
		}
		recs = append(recs, Record{Name: name, Metrics: metrics})
	}
	return FromRecords(recs)
}
