package geocoding

import (
	"context"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/dispatch/internal/models"
)

// Provider is an interface that defines a method for resolving an address line.
// The Geocode method takes a context and an address line as input,
// and returns the structured address and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Address, error)
}

// leadingInt parses the digits at the start of s, 0 when there are none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}

	return n
}
