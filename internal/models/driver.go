package models

import "strings"

// Driver represents a named driver available for assignment.
type Driver struct {
	Name          string // Name is the trimmed name exactly as supplied.
	NameCondensed string // NameCondensed holds only the ASCII letters of Name, lowercased.
}

// NewDriver builds a Driver from a raw name, trimming it and deriving the condensed name.
func NewDriver(name string) Driver {
	name = strings.TrimSpace(name)

	return Driver{Name: name, NameCondensed: condense(name)}
}

// MarshalText lets a Driver serialize as its name in leftover lists.
func (d Driver) MarshalText() ([]byte, error) {
	return []byte(d.Name), nil
}

// MarshalYAML renders a Driver as its name.
func (d Driver) MarshalYAML() (any, error) {
	return d.Name, nil
}

func condense(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}

	return b.String()
}
