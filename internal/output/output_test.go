package output

import (
	"strings"
	"testing"
)

type sample struct {
	Title string `json:"title" yaml:"title"`
	Pages int    `json:"pages" yaml:"pages"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"", FormatYAML, false},
		{"xml", Default, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTo(t *testing.T) {
	data := sample{Title: "UUEE AD 2.1", Pages: 3}

	t.Run("yaml", func(t *testing.T) {
		var b strings.Builder
		if err := To(&b, FormatYAML, data); err != nil {
			t.Fatalf("To failed: %v", err)
		}
		want := "title: UUEE AD 2.1\npages: 3\n"
		if b.String() != want {
			t.Errorf("got %q, want %q", b.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var b strings.Builder
		if err := To(&b, FormatJSON, data); err != nil {
			t.Fatalf("To failed: %v", err)
		}
		want := "{\n  \"title\": \"UUEE AD 2.1\",\n  \"pages\": 3\n}\n"
		if b.String() != want {
			t.Errorf("got %q, want %q", b.String(), want)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		var b strings.Builder
		if err := To(&b, Format("xml"), data); err == nil {
			t.Error("expected error")
		}
	})
}
