package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a scene snapshot from a JSON file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open scene snapshot: %w", err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("scene snapshot %s: %w", path, err)
	}
	return doc, nil
}

// Read decodes a scene snapshot from JSON.
func Read(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid scene snapshot: %w", err)
	}
	return &doc, nil
}
