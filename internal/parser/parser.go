// Package parser turns raw input lines into drivers and addresses.
package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/dispatch/internal/models"
)

// AddressParser turns a raw address line into a structured Address.
// It never fails: components it cannot read are left at their zero values.
type AddressParser interface {
	ParseAddress(ctx context.Context, line string) models.Address
}

var (
	leadingDigits = regexp.MustCompile(`^\d+`)
	// streetPattern captures the text between the first "<number> " and the next comma.
	streetPattern = regexp.MustCompile(`\d+\s([^,]+)`)
)

const (
	citySegment  = 1
	stateSegment = 2
	minZipParts  = 4
)

// SplitLines splits newline separated text into trimmed, non-blank lines.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// ParseDriver builds a Driver from a single name line.
func ParseDriver(line string) models.Driver {
	return models.NewDriver(line)
}

// ParseDrivers builds a Driver for every non-blank line.
func ParseDrivers(lines []string) []models.Driver {
	drivers := make([]models.Driver, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		drivers = append(drivers, ParseDriver(line))
	}

	return drivers
}

// RegexParser reads addresses of the form "<number> <street>, <city>, <state>, <zip>".
type RegexParser struct{}

// ParseAddress implements AddressParser.
func (RegexParser) ParseAddress(_ context.Context, line string) models.Address {
	return ParseAddressLine(line)
}

// ParseAddressLine parses a single address line with the pattern rules of RegexParser.
func ParseAddressLine(line string) models.Address {
	full := strings.TrimSpace(line)
	addr := models.Address{Full: full}

	addr.Number = leadingInt(full)
	if m := streetPattern.FindStringSubmatch(full); m != nil {
		addr.Street = strings.TrimSpace(m[1])
	}

	segments := strings.Split(full, ",")
	if len(segments) > citySegment {
		addr.City = strings.TrimSpace(segments[citySegment])
	}
	if len(segments) > stateSegment {
		addr.State = strings.TrimSpace(segments[stateSegment])
	}
	if len(segments) >= minZipParts {
		addr.Zip = leadingInt(strings.TrimSpace(segments[len(segments)-1]))
	}

	return addr
}

// leadingInt parses the digits at the start of s, returning 0 when there are none
// or they overflow an int.
func leadingInt(s string) int {
	digits := leadingDigits.FindString(s)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}

	return n
}
