// Package scoring computes the suitability score of a driver for a destination.
package scoring

import (
	"unicode/utf8"

	"github.com/UnknownOlympus/dispatch/internal/models"
)

const (
	vowelMultiplier     = 1.5
	consonantMultiplier = 1.0
	commonFactorBonus   = 1.5
)

// Score returns the suitability score of assigning driver to address.
//
// An even street name length scores the vowels of the driver's full name times 1.5,
// an odd one scores the consonants of the condensed name times 1. The base is raised
// by 50% when both lengths share a factor other than 1 that is not one of the lengths.
func Score(driver models.Driver, address models.Address) float64 {
	streetLen := utf8.RuneCountInString(address.Street)
	vowels := CountVowels(driver.Name)

	var base float64
	if streetLen%2 == 0 {
		base = float64(vowels) * vowelMultiplier
	} else {
		consonants := utf8.RuneCountInString(driver.NameCondensed) - vowels
		base = float64(consonants) * consonantMultiplier
	}

	if HasCommonFactor(streetLen, utf8.RuneCountInString(driver.Name)) {
		return base * commonFactorBonus
	}

	return base
}

// HasCommonFactor reports whether x and y share a divisor greater than 1
// that divides neither length entirely into the other.
func HasCommonFactor(x, y int) bool {
	g := GCD(x, y)

	return g > 1 && g != abs(x) && g != abs(y)
}

// GCD returns the greatest common divisor of x and y using Euclid's algorithm.
// GCD(0, n) is |n|.
func GCD(x, y int) int {
	x, y = abs(x), abs(y)
	for y != 0 {
		x, y = y, x%y
	}

	return x
}

// CountVowels counts the a, e, i, o and u characters of s in either case.
func CountVowels(s string) int {
	count := 0
	for _, r := range s {
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			count++
		}
	}

	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
