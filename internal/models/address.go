package models

// Address represents a destination address split into its components.
// Missing or unparseable components are left at their zero values.
type Address struct {
	Full   string // Full is the trimmed original input line.
	Number int    // Number is the street number, 0 if absent.
	Street string // Street is the street name following the number.
	City   string // City is the second comma-delimited segment.
	State  string // State is the third comma-delimited segment.
	Zip    int    // Zip is the postal code from the final segment, 0 if absent.
}

// MarshalText lets an Address serialize as its original line in leftover lists.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Full), nil
}

// MarshalYAML renders an Address as its original line.
func (a Address) MarshalYAML() (any, error) {
	return a.Full, nil
}
