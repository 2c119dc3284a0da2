// Package output provides terminal output utilities for the CLI.
package output

import "strings"

// Format specifies how a build result or export manifest is rendered.
type Format string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML Format = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON Format = "json"

	// FormatTable outputs in table format.
	FormatTable Format = "table"

	// FormatDir outputs one file per exported part into a directory.
	FormatDir Format = "dir"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable, FormatDir:
		return true
	default:
		return false
	}
}

// ParseFormat parses s into a Format, reporting whether it was recognized.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "table":
		return FormatTable, true
	case "dir", "directory":
		return FormatDir, true
	default:
		return Format(s), false
	}
}

// ValidFormats returns every recognized format string.
func ValidFormats() []string {
	return []string{"yaml", "json", "table", "dir"}
}
