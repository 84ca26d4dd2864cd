// Package workflow loads the disassembly step collection and computes the
// dependency-ordered sequence the guide walks through. Steps declare
// prerequisites with depends_on and reference catalog parts with elements;
// both kinds of reference may dangle, and the package tolerates that by
// contract: malformed graph data degrades the ordering, it never fails it.
package workflow

import (
	"encoding/json"
	"fmt"
	"os"
)

// Step is one stage of the disassembly procedure.
type Step struct {
	// ID is optional, but a step without one cannot participate in the
	// dependency graph and cannot be depended on.
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
	Elements    []string `json:"elements,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// file is the on-disk envelope: {version, updated_at, steps:[...]}.
type file struct {
	Version   int    `json:"version"`
	UpdatedAt string `json:"updated_at"`
	Steps     []Step `json:"steps"`
}

// LoadSteps reads the step collection from path, in file order. Titles are
// defaulted once at load time: a step with no title falls back to its id,
// then to a positional placeholder.
func LoadSteps(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read steps file: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse steps file %s: %w", path, err)
	}

	steps := f.Steps
	for i := range steps {
		if steps[i].Title == "" {
			if steps[i].ID != "" {
				steps[i].Title = steps[i].ID
			} else {
				steps[i].Title = fmt.Sprintf("Step %d", i+1)
			}
		}
	}
	return steps, nil
}
