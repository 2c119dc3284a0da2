package config

import (
	"fmt"
	"strings"
)

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field that failed validation.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		fmt.Fprintf(&b, "  %s: %s\n", err.Field, err.Message)
	}
	return b.String()
}

var validBackends = map[string]bool{"mock": true, "kernel": true}

var validColorModes = map[string]bool{"per_part": true, "single": true, "none": true}

var validFormats = map[string]bool{"stl": true, "step": true, "3mf": true}

// Validate checks a Config against the engine's closed enums (backend
// names, export color modes, export formats — spec.md §4.2 and §6).
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Backend != "" && !validBackends[cfg.Backend] {
		errs = append(errs, ValidationError{"backend", "must be one of: mock, kernel"})
	}
	if cfg.Export.ColorMode != "" && !validColorModes[cfg.Export.ColorMode] {
		errs = append(errs, ValidationError{"export.color_mode", "must be one of: per_part, single, none"})
	}
	for _, f := range cfg.Export.Formats {
		if !validFormats[f] {
			errs = append(errs, ValidationError{"export.formats", fmt.Sprintf("unsupported format %q (must be stl, step, or 3mf)", f)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
