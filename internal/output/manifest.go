package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// ManifestEntry describes one exported geometry file — the part it came
// from, the format it was written in, and where it landed on disk. The
// actual export I/O (backend.ExportSTL/ExportSTEP) happens in cmd/tiacad;
// this package only renders the resulting manifest, the same
// decoupling the teacher draws with ResourceInfo so output never imports
// the build pipeline.
type ManifestEntry struct {
	Part   string `json:"part" yaml:"part"`
	Format string `json:"format" yaml:"format"`
	Path   string `json:"path" yaml:"path"`
}

// ManifestOptions controls manifest output formatting.
type ManifestOptions struct {
	Format Format
	Writer io.Writer
}

// WriteManifest writes the list of exported files in the requested
// format, sorted by part then format for deterministic output.
func WriteManifest(entries []ManifestEntry, opts ManifestOptions) error {
	if len(entries) == 0 {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Part != entries[j].Part {
			return entries[i].Part < entries[j].Part
		}
		return entries[i].Format < entries[j].Format
	})

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(opts.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatTable:
		t := NewTable("PART", "FORMAT", "PATH")
		for _, e := range entries {
			t.Row(e.Part, e.Format, e.Path)
		}
		_, err := fmt.Fprintln(opts.Writer, t.String())
		return err
	case FormatYAML, FormatDir:
		enc := yaml.NewEncoder(opts.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported manifest format %q", opts.Format)
}
