package format

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"geometry.yaml", YAML},
		{"geometry.yml", YAML},
		{"geometry.YAML", YAML},
		{"style.json", JSON},
		{"o1.JSON", JSON},
		{"notes.txt", Unknown},
		{"noext", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := DetectExtension(tt.filename); got != tt.want {
				t.Errorf("DetectExtension(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectBytes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"json object", `{"pages": {}}`, JSON},
		{"json array", `[1, 2]`, JSON},
		{"json with leading space", "\n\t {\"a\": 1}", JSON},
		{"yaml mapping", "pages:\n  A: {}\n", YAML},
		{"yaml scalar", "hello", YAML},
		{"empty", "", Unknown},
		{"whitespace only", "  \n\t", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBytes([]byte(tt.data)); got != tt.want {
				t.Errorf("DetectBytes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectPrefersExtension(t *testing.T) {
	// Content looks like JSON but extension says YAML.
	if got := Detect("doc.yaml", []byte(`{"a": 1}`)); got != YAML {
		t.Errorf("Detect() = %v, want YAML", got)
	}
	// No extension: sniff the content.
	if got := Detect("doc", []byte(`{"a": 1}`)); got != JSON {
		t.Errorf("Detect() = %v, want JSON", got)
	}
}

func TestFormatStrings(t *testing.T) {
	if YAML.String() != "YAML" || JSON.String() != "JSON" || Unknown.String() != "Unknown" {
		t.Error("String() values wrong")
	}
	if YAML.Extension() != ".yaml" || JSON.Extension() != ".json" || Unknown.Extension() != "" {
		t.Error("Extension() values wrong")
	}
}

func TestUnmarshal(t *testing.T) {
	type doc struct {
		Name  string   `yaml:"name" json:"name"`
		Items []string `yaml:"items" json:"items"`
	}

	var fromYAML doc
	if err := Unmarshal([]byte("name: a\nitems: [x, y]\n"), YAML, &fromYAML); err != nil {
		t.Fatalf("Unmarshal YAML: %v", err)
	}
	if fromYAML.Name != "a" || len(fromYAML.Items) != 2 {
		t.Errorf("YAML decode = %+v", fromYAML)
	}

	var fromJSON doc
	if err := Unmarshal([]byte(`{"name":"b","items":["z"]}`), JSON, &fromJSON); err != nil {
		t.Fatalf("Unmarshal JSON: %v", err)
	}
	if fromJSON.Name != "b" || len(fromJSON.Items) != 1 {
		t.Errorf("JSON decode = %+v", fromJSON)
	}

	if err := Unmarshal([]byte(`{"name":`), JSON, &fromJSON); err == nil {
		t.Error("truncated JSON should fail")
	}
	if err := Unmarshal([]byte(":\t:bad"), YAML, &fromYAML); err == nil {
		t.Error("invalid YAML should fail")
	}
}

func TestUnmarshalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(path, []byte("name: file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var v struct {
		Name string `yaml:"name"`
	}
	if err := UnmarshalFile(path, &v); err != nil {
		t.Fatalf("UnmarshalFile: %v", err)
	}
	if v.Name != "file" {
		t.Errorf("Name = %q, want file", v.Name)
	}

	if err := UnmarshalFile(filepath.Join(dir, "missing.yaml"), &v); err == nil {
		t.Error("missing file should fail")
	}
}
