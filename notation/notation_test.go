package notation

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name    string
		input   string
		want    Assignment
		wantErr bool
	}{
		{
			name:  "single object",
			input: "Z1=O1",
			want:  Assignment{Zone: "Z1", Objects: []string{"O1"}},
		},
		{
			name:  "multiple objects",
			input: "Z1=O1,O2,O3",
			want:  Assignment{Zone: "Z1", Objects: []string{"O1", "O2", "O3"}},
		},
		{
			name:  "whitespace trimmed",
			input: "Z2= O4 , O5",
			want:  Assignment{Zone: "Z2", Objects: []string{"O4", "O5"}},
		},
		{
			name:  "multi-digit zone",
			input: "Z12=O1",
			want:  Assignment{Zone: "Z12", Objects: []string{"O1"}},
		},
		{
			name:  "empty trailing segment preserved",
			input: "Z1=O1,",
			want:  Assignment{Zone: "Z1", Objects: []string{"O1", ""}},
		},
		{
			name:  "empty middle segment preserved",
			input: "Z1=O1,,O2",
			want:  Assignment{Zone: "Z1", Objects: []string{"O1", "", "O2"}},
		},
		{
			name:    "wrong separator",
			input:   "Z1-O1,O2",
			wantErr: true,
		},
		{
			name:    "missing right-hand side",
			input:   "Z1=",
			wantErr: true,
		},
		{
			name:    "missing zone",
			input:   "=O1",
			wantErr: true,
		},
		{
			name:    "zone without digits",
			input:   "Z=O1",
			wantErr: true,
		},
		{
			name:    "lowercase zone",
			input:   "z1=O1",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded, want error", tt.input)
				}
				var merr *MalformedError
				if !errors.As(err, &merr) {
					t.Fatalf("Parse(%q) error = %T, want *MalformedError", tt.input, err)
				}
				if merr.Notation != tt.input {
					t.Errorf("MalformedError.Notation = %q, want %q", merr.Notation, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	p := NewParser()
	a1, err1 := p.Parse("Z3=O7,O8")
	a2, err2 := p.Parse("Z3=O7,O8")
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(a1, a2) {
		t.Errorf("repeated Parse gave different results: %+v vs %+v", a1, a2)
	}
}

func TestNewParserWithPattern(t *testing.T) {
	p, err := NewParserWithPattern(`[a-z]+`)
	if err != nil {
		t.Fatalf("NewParserWithPattern error = %v", err)
	}

	got, err := p.Parse("hero=O1,O2")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got.Zone != "hero" {
		t.Errorf("Zone = %q, want hero", got.Zone)
	}

	if _, err := p.Parse("Z1=O1"); err == nil {
		t.Error("uppercase zone should not match lowercase pattern")
	}

	if _, err := NewParserWithPattern(`[`); err == nil {
		t.Error("invalid pattern should return an error")
	}
}
