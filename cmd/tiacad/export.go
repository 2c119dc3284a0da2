package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/backend"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/document"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/model"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/orchestrate"
	"github.com/Semantic-Infrastructure-Lab/tiacad/internal/output"
)

var (
	flagExportOut     string
	flagExportFormats []string
	flagExportParts   []string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <document.yaml>",
		Short: "Build a document and export its parts to STL/STEP files",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	cmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "output directory (default: config export.dir)")
	cmd.Flags().StringSliceVar(&flagExportFormats, "format", nil, "formats to export (default: document export.formats, then config)")
	cmd.Flags().StringSliceVar(&flagExportParts, "part", nil, "parts to export (default: document export.default_part, else all built parts)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := document.Load(path)
	if err != nil {
		return err
	}

	b := selectBackend(cfg.Backend)
	engine := orchestrate.New(b)
	result, err := engine.Build(doc)
	if err != nil {
		return renderBuildError(err, path)
	}

	outDir := resolveExportDir(doc)
	formats := resolveExportFormats(doc)
	parts := resolveExportParts(doc, result.Parts.PartNames())

	entries, err := exportParts(b, result, outDir, parts, formats)
	if err != nil {
		return err
	}

	return output.WriteManifest(entries, output.ManifestOptions{Format: output.FormatTable, Writer: cmd.OutOrStdout()})
}

func resolveExportDir(doc *model.Document) string {
	if flagExportOut != "" {
		return flagExportOut
	}
	return cfg.Export.Dir
}

func resolveExportFormats(doc *model.Document) []string {
	if len(flagExportFormats) > 0 {
		return flagExportFormats
	}
	if len(doc.Export.Formats) > 0 {
		return doc.Export.Formats
	}
	return cfg.Export.Formats
}

func resolveExportParts(doc *model.Document, allParts []string) []string {
	if len(flagExportParts) > 0 {
		return flagExportParts
	}
	if doc.Export.DefaultPart != "" {
		return []string{doc.Export.DefaultPart}
	}
	return allParts
}

func exportParts(b backend.Backend, result *orchestrate.Result, outDir string, parts, formats []string) ([]output.ManifestEntry, error) {
	var entries []output.ManifestEntry
	for _, partName := range parts {
		handle, ok := result.Parts.PartHandle(partName)
		if !ok {
			output.Warn("export: part not found in registry, skipping", "part", partName)
			continue
		}
		for _, format := range formats {
			ext, exportFn := exportFuncFor(b, format)
			if exportFn == nil {
				output.Warn("export: format not supported by this backend, skipping", "format", format, "part", partName)
				continue
			}
			outPath := filepath.Join(outDir, partName+"."+ext)
			if err := exportFn(handle, outPath); err != nil {
				return nil, fmt.Errorf("exporting %s as %s: %w", partName, format, err)
			}
			entries = append(entries, output.ManifestEntry{Part: partName, Format: format, Path: outPath})
		}
	}
	return entries, nil
}

func exportFuncFor(b backend.Backend, format string) (ext string, fn func(backend.Handle, string) error) {
	switch format {
	case "stl":
		return "stl", b.ExportSTL
	case "step":
		return "step", b.ExportSTEP
	default:
		return "", nil
	}
}
