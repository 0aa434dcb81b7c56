// Package format provides document format detection and decoding for the
// zonal library.
//
// Geometry documents, style maps, and content objects can be authored in
// YAML or JSON. Detection prefers the file extension and falls back to
// content sniffing, so loaders never need to care which encoding a site
// uses.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents a supported document encoding.
type Format int

const (
	// Unknown indicates an unrecognized encoding.
	Unknown Format = iota
	// YAML indicates a YAML document.
	YAML
	// JSON indicates a JSON document.
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case YAML:
		return "YAML"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case YAML:
		return ".yaml"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// DetectExtension determines the format from a filename extension alone.
func DetectExtension(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// DetectBytes determines the format by sniffing content. JSON documents
// must start with an object or array opener; everything else that looks
// like text is treated as YAML.
func DetectBytes(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Unknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return JSON
	}
	return YAML
}

// Detect determines the format of a file, preferring the extension and
// falling back to content sniffing.
func Detect(filename string, data []byte) Format {
	if f := DetectExtension(filename); f != Unknown {
		return f
	}
	return DetectBytes(data)
}

// Unmarshal decodes data in the given format into v. Unknown falls back
// to YAML, which accepts JSON-shaped input as well.
func Unmarshal(data []byte, f Format, v any) error {
	switch f {
	case JSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decoding JSON: %w", err)
		}
		return nil
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decoding YAML: %w", err)
		}
		return nil
	}
}

// UnmarshalFile reads and decodes a file, detecting its format.
func UnmarshalFile(filename string, v any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	return Unmarshal(data, Detect(filename, data), v)
}
