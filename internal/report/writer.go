package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/star/orbitalik/internal/passes"
	"github.com/star/orbitalik/internal/service"
)

// Writer renders results to an output stream.
type Writer interface {
	WritePasses(ps []passes.Pass) error
	WriteSatellite(d *service.SatelliteData) error
}

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatMarkdown}

// New returns the Writer for format.
func New(format string, output io.Writer) (Writer, error) {
	switch Format(strings.ToLower(format)) {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want json or markdown)", format)
	}
}
