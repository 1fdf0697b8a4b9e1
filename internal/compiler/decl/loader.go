package decl

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is the on-disk form of a declared-element snapshot. Front-ends
// that cannot link against mediatorc directly serialize their resolved
// declarations into this file and hand the path to the CLI.
type Manifest struct {
	// Module is the module path generated code will live under
	Module string `json:"module,omitempty"`
	// Elements is the full declaration snapshot for one analysis pass
	Elements []Element `json:"elements"`
}

// LoadManifest reads and decodes a declaration manifest from disk
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a declaration manifest from raw JSON
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	for i := range m.Elements {
		el := &m.Elements[i]
		if el.Kind != KindType && el.Kind != KindMethod {
			return nil, fmt.Errorf("element %q has unknown kind %q", el.Name, el.Kind)
		}
		if el.Kind == KindMethod && el.Method == nil {
			return nil, fmt.Errorf("method element %q is missing its signature", el.Name)
		}
	}
	return &m, nil
}
