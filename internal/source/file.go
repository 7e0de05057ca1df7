// Package source loads raw driver and address lines from files or inline text.
package source

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/UnknownOlympus/dispatch/internal/parser"
)

// filePattern marks a value as a file path rather than inline text.
var filePattern = regexp.MustCompile(`\w+\.\w+$`)

// File reads drivers and addresses from disk or from inline newline separated text.
type File struct {
	drivers   string
	addresses string
}

// NewFile creates a File source. Each value is either a path such as
// "data/DriverNames.txt" or the list itself, one entry per line.
func NewFile(drivers, addresses string) *File {
	return &File{drivers: drivers, addresses: addresses}
}

// FetchDriverNames returns the non-blank driver lines.
func (f *File) FetchDriverNames(ctx context.Context) ([]string, error) {
	return load(ctx, f.drivers)
}

// FetchAddressLines returns the non-blank address lines.
func (f *File) FetchAddressLines(ctx context.Context) ([]string, error) {
	return load(ctx, f.addresses)
}

// IsFilePath reports whether value names a file rather than holding inline text.
func IsFilePath(value string) bool {
	return filePattern.MatchString(strings.TrimSpace(value))
}

func load(ctx context.Context, value string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !IsFilePath(value) {
		return parser.SplitLines(value), nil
	}

	path := strings.TrimSpace(value)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load file %q: %w", path, err)
	}

	return parser.SplitLines(string(data)), nil
}
