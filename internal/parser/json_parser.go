package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sstent/fittracker/internal/training"
)

// JSONParser reads either a single {"type", "data"} object or an array of them.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(data []byte) ([]training.Package, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var pkg training.Package
		if err := json.Unmarshal(trimmed, &pkg); err != nil {
			return nil, fmt.Errorf("failed to decode package: %w", err)
		}
		return []training.Package{pkg}, nil
	}

	var packages []training.Package
	if err := json.Unmarshal(trimmed, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}
	return packages, nil
}
