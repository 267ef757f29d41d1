package segmentation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
)

// Load reads a segmentation document from a JSON file.
// Polygons without an id get one minted; polygons without a type default
// to external. Invalid documents (non-finite coordinates, rings with fewer
// than 3 points) are rejected so downstream geometry never sees them.
func Load(filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read segmentation file: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse segmentation file: %w", err)
	}

	if err := validate(&result); err != nil {
		return nil, err
	}

	for i := range result.Polygons {
		if result.Polygons[i].ID == "" {
			result.Polygons[i].ID = uuid.NewString()
		}
		if result.Polygons[i].Type == "" {
			result.Polygons[i].Type = External
		}
	}

	return &result, nil
}

// Save writes a segmentation document to a JSON file
func Save(filename string, result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode segmentation: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write segmentation file: %w", err)
	}
	return nil
}

func validate(result *Result) error {
	seen := make(map[string]bool)
	for i := range result.Polygons {
		poly := &result.Polygons[i]

		if len(poly.Points) < 3 {
			return fmt.Errorf("polygon %d has %d points, need at least 3", i, len(poly.Points))
		}

		for _, p := range poly.Points {
			if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
				return fmt.Errorf("polygon %d contains a non-finite coordinate", i)
			}
		}

		if poly.ID != "" {
			if seen[poly.ID] {
				return fmt.Errorf("duplicate polygon id %q", poly.ID)
			}
			seen[poly.ID] = true
		}

		if poly.Type != "" && poly.Type != External && poly.Type != Internal {
			return fmt.Errorf("polygon %d has unknown type %q", i, poly.Type)
		}
	}
	return nil
}
