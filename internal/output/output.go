// Package output renders command results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format defines the output format for CLI commands.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Default is the default output format.
var Default Format = FormatYAML

// globalFormat is set by the root command's --format flag.
var globalFormat Format = FormatYAML

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "yaml", "":
		return FormatYAML, nil
	default:
		return Default, fmt.Errorf("unknown output format %q (want yaml or json)", s)
	}
}

// SetFormat sets the global output format.
func SetFormat(format Format) {
	globalFormat = format
}

// GetFormat returns the current global output format.
func GetFormat() Format {
	return globalFormat
}

// To writes data to the given writer in the specified format.
func To(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
