package mrz

import (
	"fmt"
	"strings"
)

const (
	digits       = "0123456789"
	letters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphanumeric = digits + letters
)

// DocumentType is a (type, subtype) pair with its relative selection weight.
type DocumentType struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Weight  int    `json:"weight"`
}

// Code renders the two character document code.
func (d DocumentType) Code() string {
	return d.Type + d.Subtype
}

// DefaultDocumentTypes are the passport categories and their weights.
var DefaultDocumentTypes = []DocumentType{
	{Name: "ordinary", Type: "P", Subtype: "<", Weight: 85},
	{Name: "diplomatic", Type: "P", Subtype: "D", Weight: 8},
	{Name: "service", Type: "P", Subtype: "S", Weight: 5},
	{Name: "pure-diplomatic", Type: "D", Subtype: "<", Weight: 2},
}

// Name is a holder name before it is folded into the name block.
type Name struct {
	Surname    string
	GivenNames []string
}

func SampleSex(src Source) string {
	u := src.Float64()
	switch {
	case u < 0.49:
		return "M"
	case u < 0.98:
		return "F"
	default:
		return string(Filler)
	}
}

// SampleDocumentType makes a weighted choice over types and returns the
// chosen entry.
func SampleDocumentType(src Source, types []DocumentType) (DocumentType, error) {
	total := 0
	for _, t := range types {
		if t.Weight < 0 {
			return DocumentType{}, fmt.Errorf("%w: document type %q has negative weight %d", ErrInvalidConfig, t.Code(), t.Weight)
		}
		total += t.Weight
	}
	if total <= 0 {
		return DocumentType{}, fmt.Errorf("%w: document types have no positive weight", ErrInvalidConfig)
	}

	pick := src.IntN(total)
	for _, t := range types {
		if pick < t.Weight {
			return t, nil
		}
		pick -= t.Weight
	}
	// unreachable: pick < total
	return types[len(types)-1], nil
}

// SampleCode picks a country code uniformly from pool.
func SampleCode(src Source, pool []string) (string, error) {
	if len(pool) == 0 {
		return "", fmt.Errorf("%w: nationality pool is empty", ErrInvalidConfig)
	}
	return pool[src.IntN(len(pool))], nil
}

// SampleName picks one surname and one to three given names, with
// replacement.
func SampleName(src Source, surnames, givenNames []string) (Name, error) {
	if len(surnames) == 0 {
		return Name{}, fmt.Errorf("%w: surname pool is empty", ErrInvalidConfig)
	}
	if len(givenNames) == 0 {
		return Name{}, fmt.Errorf("%w: given name pool is empty", ErrInvalidConfig)
	}

	surname := surnames[src.IntN(len(surnames))]

	count := 3
	switch u := src.Float64(); {
	case u < 0.70:
		count = 1
	case u < 0.95:
		count = 2
	}

	given := make([]string, count)
	for i := range given {
		given[i] = givenNames[src.IntN(len(givenNames))]
	}
	return Name{Surname: surname, GivenNames: given}, nil
}

// SampleDocumentNumber returns nine characters in one of three shapes:
// all digits, one letter and eight digits, or two letters and seven digits.
func SampleDocumentNumber(src Source) string {
	prefix := 0
	switch u := src.Float64(); {
	case u < 0.7:
	case u < 0.9:
		prefix = 1
	default:
		prefix = 2
	}
	return randomString(src, letters, prefix) + randomString(src, digits, DocumentNumberLength-prefix)
}

// SamplePersonalNumber returns an empty string most of the time, otherwise
// a short (3-7) or long (8-14) alphanumeric string.
func SamplePersonalNumber(src Source) string {
	var length int
	switch u := src.Float64(); {
	case u < 0.6:
		return ""
	case u < 0.8:
		length = uniformInt(src, 3, 7)
	default:
		length = uniformInt(src, 8, PersonalNumberLength)
	}
	return randomString(src, alphanumeric, length)
}

func randomString(src Source, alphabet string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[src.IntN(len(alphabet))])
	}
	return sb.String()
}
