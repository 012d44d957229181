// Package export converts diagrams to file formats: the structural JSON
// snapshot, a standalone SVG document, and a rasterized PNG.
package export

import (
	"fmt"

	"vellum/editor"
)

// Format represents an export format.
type Format string

const (
	// FormatJSON exports the structural snapshot (the load round-trip format).
	FormatJSON Format = "json"
	// FormatSVG exports a standalone SVG document.
	FormatSVG Format = "svg"
	// FormatPNG exports a rasterized image.
	FormatPNG Format = "png"
)

// Exporter converts an editor's document to a target format.
type Exporter interface {
	// Export renders the editor's current document.
	Export(ed *editor.Editor) ([]byte, error)
	// FileExtension returns the recommended file extension.
	FileExtension() string
	// FormatName returns a human-readable name for the format.
	FormatName() string
}

// NewExporter creates an exporter for the specified format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats returns all export formats.
func AvailableFormats() []Format {
	return []Format{FormatJSON, FormatSVG, FormatPNG}
}
