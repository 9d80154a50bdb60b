// Package mrz encodes synthetic TD3 (passport) machine readable zones:
// two 44 character lines whose fields are padded with '<' and protected by
// ICAO 9303 check digits.
package mrz

import "errors"

const (
	Filler = '<'

	LineLength           = 44
	NameFieldLength      = 39
	DocumentNumberLength = 9
	PersonalNumberLength = 14
	CodeLength           = 3
	DateLength           = 6
)

// Field offsets inside line 2.
const (
	DocumentNumberOffset      = 0
	DocumentNumberCheckOffset = 9
	NationalityOffset         = 10
	BirthDateOffset           = 13
	BirthDateCheckOffset      = 19
	SexOffset                 = 20
	ExpiryDateOffset          = 21
	ExpiryDateCheckOffset     = 27
	PersonalNumberOffset      = 28
	PersonalNumberCheckOffset = 42
	CompositeCheckOffset      = 43
)

var (
	// ErrInvariant marks output that failed a structural check. It signals a
	// defect in field width accounting, never a user error.
	ErrInvariant = errors.New("mrz invariant violated")

	// ErrInvalidConfig marks unusable generator input such as an empty pool.
	ErrInvalidConfig = errors.New("invalid mrz generator configuration")
)

// Source is the random source every sampling function draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// uniformInt returns a uniform int in [lo, hi].
func uniformInt(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}
