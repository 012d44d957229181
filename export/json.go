package export

import "vellum/editor"

// JSONExporter exports the structural snapshot. Its output is the exact
// input format of editor.Load.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export marshals the editor's snapshot.
func (e *JSONExporter) Export(ed *editor.Editor) ([]byte, error) {
	return ed.ExportJSON()
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// FormatName returns the format name.
func (e *JSONExporter) FormatName() string {
	return "JSON"
}
