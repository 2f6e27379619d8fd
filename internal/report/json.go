package report

import (
	"encoding/json"
	"io"

	"github.com/star/orbitalik/internal/passes"
	"github.com/star/orbitalik/internal/service"
)

// JSONWriter writes views as JSON documents.
type JSONWriter struct {
	output io.Writer
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint indents output by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) { w.indent = "  " }
}

// NewJSONWriter creates a JSONWriter. Output is compact unless configured otherwise.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WritePasses writes ps as a JSON array.
func (w *JSONWriter) WritePasses(ps []passes.Pass) error {
	return w.encode(NewPassViews(ps))
}

// WriteSatellite writes d as a JSON object.
func (w *JSONWriter) WriteSatellite(d *service.SatelliteData) error {
	return w.encode(NewSatelliteView(d))
}

func (w *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(w.output)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	return enc.Encode(v)
}
