// Package vocab supplies the name and nationality pools the generator
// samples from, and normalizes user supplied pools to the MRZ alphabet.
package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"go-mrz-generator/mrz"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrInvalidEntry = errors.New("invalid vocabulary entry")

// Letters without a canonical decomposition that ICAO 9303 transliterates.
var specialLetters = strings.NewReplacer(
	"ß", "SS",
	"Æ", "AE", "æ", "AE",
	"Ø", "OE", "ø", "OE",
	"Œ", "OE", "œ", "OE",
	"Þ", "TH", "þ", "TH",
	"Ð", "D", "ð", "D",
	"Đ", "D", "đ", "D",
	"Ł", "L", "ł", "L",
	"ı", "I",
)

// Normalize folds a name to uppercase A-Z and single spaces. Diacritics are
// stripped, apostrophes dropped, and hyphens or other separators become
// spaces.
func Normalize(name string) (string, error) {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		specialLetters.Replace(name),
	)
	if err != nil {
		return "", fmt.Errorf("failed to transliterate %q: %w", name, err)
	}

	var sb strings.Builder
	for _, r := range strings.ToUpper(stripped) {
		switch {
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case r == '\'' || r == '’' || r == '`':
		case r == '-' || r == ',' || r == '.' || r == '<' || unicode.IsSpace(r):
			sb.WriteByte(' ')
		default:
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidEntry, name, r)
		}
	}

	normalized := strings.Join(strings.Fields(sb.String()), " ")
	if normalized == "" {
		return "", fmt.Errorf("%w: %q is empty after normalization", ErrInvalidEntry, name)
	}
	return normalized, nil
}

// NormalizeCode uppercases a country code and pads it with filler, so the
// German "D" becomes "D<<".
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > mrz.CodeLength {
		return "", fmt.Errorf("%w: country code %q must be 1 to %d letters", ErrInvalidEntry, code, mrz.CodeLength)
	}
	letters := strings.TrimRight(code, string(mrz.Filler))
	if letters == "" {
		return "", fmt.Errorf("%w: country code %q has no letters", ErrInvalidEntry, code)
	}
	for i := 0; i < len(letters); i++ {
		if letters[i] < 'A' || letters[i] > 'Z' {
			return "", fmt.Errorf("%w: country code %q must be letters with trailing %q padding", ErrInvalidEntry, code, mrz.Filler)
		}
	}
	return letters + strings.Repeat(string(mrz.Filler), mrz.CodeLength-len(letters)), nil
}

// Prepare normalizes every entry of v and rejects empty pools.
func Prepare(v mrz.Vocabulary) (mrz.Vocabulary, error) {
	var out mrz.Vocabulary
	var err error

	if out.GivenNames, err = normalizePool("given_names", v.GivenNames, Normalize); err != nil {
		return mrz.Vocabulary{}, err
	}
	if out.Surnames, err = normalizePool("surnames", v.Surnames, Normalize); err != nil {
		return mrz.Vocabulary{}, err
	}
	if out.Nationalities, err = normalizePool("nationalities", v.Nationalities, NormalizeCode); err != nil {
		return mrz.Vocabulary{}, err
	}
	return out, nil
}

func normalizePool(field string, pool []string, normalize func(string) (string, error)) ([]string, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: %s pool is empty", ErrInvalidEntry, field)
	}
	out := make([]string, 0, len(pool))
	for _, entry := range pool {
		n, err := normalize(entry)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Load reads a JSON vocabulary file and prepares it. Pools missing from the
// file fall back to the built-in defaults.
func Load(path string) (mrz.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mrz.Vocabulary{}, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var v mrz.Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return mrz.Vocabulary{}, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	defaults := Default()
	if len(v.GivenNames) == 0 {
		slog.Info("Vocabulary file has no given names, using defaults", "path", path)
		v.GivenNames = defaults.GivenNames
	}
	if len(v.Surnames) == 0 {
		slog.Info("Vocabulary file has no surnames, using defaults", "path", path)
		v.Surnames = defaults.Surnames
	}
	if len(v.Nationalities) == 0 {
		slog.Info("Vocabulary file has no nationalities, using defaults", "path", path)
		v.Nationalities = defaults.Nationalities
	}

	prepared, err := Prepare(v)
	if err != nil {
		return mrz.Vocabulary{}, err
	}
	slog.Info("Loaded vocabulary", "path", path,
		"given_names", len(prepared.GivenNames),
		"surnames", len(prepared.Surnames),
		"nationalities", len(prepared.Nationalities))
	return prepared, nil
}
