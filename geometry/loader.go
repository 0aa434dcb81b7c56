package geometry

import (
	"fmt"
	"os"

	"github.com/tsawler/zonal/format"
)

// Load reads and builds a geometry document from a YAML or JSON file.
// Structural defects are returned as *StructureError; read and decode
// failures are wrapped I/O errors. All of these are fatal to the caller's
// pipeline.
func Load(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading geometry document: %w", err)
	}
	return Parse(filename, data)
}

// Parse builds a geometry document from raw bytes. The filename is used
// only for format detection and diagnostics.
func Parse(filename string, data []byte) (*Document, error) {
	var raw map[string]any
	if err := format.Unmarshal(data, format.Detect(filename, data), &raw); err != nil {
		return nil, fmt.Errorf("geometry document %s: %w", filename, err)
	}
	if raw == nil {
		return nil, &StructureError{Section: sectionPages, Reason: "is missing"}
	}
	return FromRaw(raw)
}
