package serializer

import (
	"strings"
	"testing"
)

func TestSerializeText(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
		wantErr  bool
	}{
		{
			name:     "token sequence",
			value:    []string{"--metadata", "local", "run"},
			expected: "--metadata local run\n",
		},
		{
			name:     "plain string",
			value:    "done",
			expected: "done\n",
		},
		{
			name:    "unsupported value",
			value:   map[string]int{"a": 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			w := NewWriter(FormatText, &buf)
			err := w.Serialize(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Serialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && buf.String() != tt.expected {
				t.Errorf("Serialize() = %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(FormatJSON, &buf)
	if err := w.Serialize([]string{"run", "--tags", "abc"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	expected := "[\n  \"run\",\n  \"--tags\",\n  \"abc\"\n]\n"
	if buf.String() != expected {
		t.Errorf("Serialize() = %q, want %q", buf.String(), expected)
	}
}

func TestSerializeYAML(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(FormatYAML, &buf)
	if err := w.Serialize([]string{"run"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !strings.Contains(buf.String(), "- run") {
		t.Errorf("unexpected YAML output: %q", buf.String())
	}
}

func TestFormatIsUnknown(t *testing.T) {
	tests := []struct {
		format   Format
		expected bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatText, false},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		if got := tt.format.IsUnknown(); got != tt.expected {
			t.Errorf("IsUnknown(%q) = %v, want %v", tt.format, got, tt.expected)
		}
	}
}

func TestUnknownFormatDefaultsToJSON(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(Format("xml"), &buf)
	if err := w.Serialize([]string{"run"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "[") {
		t.Errorf("expected JSON fallback, got %q", buf.String())
	}
}
