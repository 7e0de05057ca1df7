// Package output writes assignment results as JSON or YAML documents.
package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of an exported result.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	jsonIndent = "  "
	filePerm   = 0o644
)

// ErrUnsupportedFormat is returned when the exporter is configured with an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Exporter encodes results into a file, or into its stdout writer when no path is set.
type Exporter struct {
	format Format
	path   string
	stdout io.Writer
}

// NewExporter creates an Exporter. An empty path sends the document to stdout.
func NewExporter(format Format, path string, stdout io.Writer) *Exporter {
	return &Exporter{format: format, path: path, stdout: stdout}
}

// Export encodes result and writes it to the configured destination.
func (e *Exporter) Export(ctx context.Context, result models.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(e.format, result)
	if err != nil {
		return err
	}

	if e.path == "" {
		if _, err = e.stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		return nil
	}

	if err = os.WriteFile(e.path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write result to %q: %w", e.path, err)
	}

	return nil
}

// Encode renders result in the given format. JSON output uses two-space indentation.
func Encode(format Format, result models.Result) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", jsonIndent)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result as json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result as yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
