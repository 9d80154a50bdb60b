package mrz

import (
	"fmt"
	"strings"
)

const (
	DefaultMinBirthYear     = 1900
	DefaultMaxBirthYear     = 2025
	DefaultMinValidityYears = 15
	DefaultMaxValidityYears = 60
)

// Vocabulary holds the injected name and country pools.
type Vocabulary struct {
	GivenNames    []string `json:"given_names"`
	Surnames      []string `json:"surnames"`
	Nationalities []string `json:"nationalities"`
}

// Config drives a Builder. Zero year and validity bounds are replaced by
// the defaults in DefaultConfig, everything else is used as given.
type Config struct {
	Vocabulary    Vocabulary     `json:"vocabulary"`
	DocumentTypes []DocumentType `json:"document_types"`

	MinBirthYear     int `json:"min_birth_year"`
	MaxBirthYear     int `json:"max_birth_year"`
	MinValidityYears int `json:"min_validity_years"`
	MaxValidityYears int `json:"max_validity_years"`
}

func DefaultConfig(vocab Vocabulary) Config {
	return Config{
		Vocabulary:       vocab,
		DocumentTypes:    DefaultDocumentTypes,
		MinBirthYear:     DefaultMinBirthYear,
		MaxBirthYear:     DefaultMaxBirthYear,
		MinValidityYears: DefaultMinValidityYears,
		MaxValidityYears: DefaultMaxValidityYears,
	}
}

// Validate reports the first problem that would make Build fail on
// configuration rather than on a defect.
func (c Config) Validate() error {
	if len(c.Vocabulary.GivenNames) == 0 {
		return fmt.Errorf("%w: given name pool is empty", ErrInvalidConfig)
	}
	if len(c.Vocabulary.Surnames) == 0 {
		return fmt.Errorf("%w: surname pool is empty", ErrInvalidConfig)
	}
	if len(c.Vocabulary.Nationalities) == 0 {
		return fmt.Errorf("%w: nationality pool is empty", ErrInvalidConfig)
	}
	if err := validateNames("given name", c.Vocabulary.GivenNames); err != nil {
		return err
	}
	if err := validateNames("surname", c.Vocabulary.Surnames); err != nil {
		return err
	}
	for _, code := range c.Vocabulary.Nationalities {
		if len(code) != CodeLength {
			return fmt.Errorf("%w: nationality %q is not %d characters", ErrInvalidConfig, code, CodeLength)
		}
		if !isCountryCode(code) {
			return fmt.Errorf("%w: nationality %q must be letters padded with %q", ErrInvalidConfig, code, Filler)
		}
	}
	if len(c.DocumentTypes) == 0 {
		return fmt.Errorf("%w: no document types", ErrInvalidConfig)
	}
	total := 0
	for _, t := range c.DocumentTypes {
		if len(t.Type) != 1 || len(t.Subtype) != 1 {
			return fmt.Errorf("%w: document type %q must be one type and one subtype letter", ErrInvalidConfig, t.Code())
		}
		if !isLetter(t.Type[0]) || !(isLetter(t.Subtype[0]) || t.Subtype[0] == Filler) {
			return fmt.Errorf("%w: document type %q must be A-Z with an A-Z or %q subtype", ErrInvalidConfig, t.Code(), Filler)
		}
		if t.Weight < 0 {
			return fmt.Errorf("%w: document type %q has negative weight %d", ErrInvalidConfig, t.Code(), t.Weight)
		}
		total += t.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: document types have no positive weight", ErrInvalidConfig)
	}
	if c.MinBirthYear > c.MaxBirthYear {
		return fmt.Errorf("%w: birth year range %d-%d is empty", ErrInvalidConfig, c.MinBirthYear, c.MaxBirthYear)
	}
	if c.MinValidityYears > c.MaxValidityYears {
		return fmt.Errorf("%w: validity range %d-%d is empty", ErrInvalidConfig, c.MinValidityYears, c.MaxValidityYears)
	}
	return nil
}

func validateNames(field string, pool []string) error {
	for _, name := range pool {
		if name == "" {
			return fmt.Errorf("%w: empty %s", ErrInvalidConfig, field)
		}
		for i := 0; i < len(name); i++ {
			if !isLetter(name[i]) && name[i] != ' ' {
				return fmt.Errorf("%w: %s %q has %q, want A-Z or space", ErrInvalidConfig, field, name, name[i])
			}
		}
	}
	return nil
}

// isCountryCode accepts a letter followed by letters, with filler only as
// trailing padding (D<<).
func isCountryCode(code string) bool {
	padded := false
	for i := 0; i < len(code); i++ {
		switch {
		case isLetter(code[i]) && !padded:
		case code[i] == Filler && i > 0:
			padded = true
		default:
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func (c Config) withDefaults() Config {
	if c.DocumentTypes == nil {
		c.DocumentTypes = DefaultDocumentTypes
	}
	if c.MinBirthYear == 0 && c.MaxBirthYear == 0 {
		c.MinBirthYear, c.MaxBirthYear = DefaultMinBirthYear, DefaultMaxBirthYear
	}
	if c.MinValidityYears == 0 && c.MaxValidityYears == 0 {
		c.MinValidityYears, c.MaxValidityYears = DefaultMinValidityYears, DefaultMaxValidityYears
	}
	return c
}

// Record is one generated document: the sampled fields and the two lines
// built from them.
type Record struct {
	DocumentType   DocumentType
	IssuingState   string
	Name           Name
	DocumentNumber string
	Nationality    string
	DateOfBirth    Date
	Sex            string
	DateOfExpiry   Date
	PersonalNumber string

	Line1 string
	Line2 string
}

// MRZ returns both lines separated by a newline.
func (r Record) MRZ() string {
	return r.Line1 + "\n" + r.Line2
}

// Builder produces records from a single random source. It is not safe for
// concurrent use; give each goroutine its own Builder.
type Builder struct {
	src Source
	cfg Config
}

func NewBuilder(src Source, cfg Config) (*Builder, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidConfig)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{src: src, cfg: cfg}, nil
}

// Build samples a fresh record. Every call is independent of the previous
// ones apart from sharing the random source.
func (b *Builder) Build() (Record, error) {
	var rec Record
	var err error

	rec.DocumentType, err = SampleDocumentType(b.src, b.cfg.DocumentTypes)
	if err != nil {
		return Record{}, err
	}
	rec.IssuingState, err = SampleCode(b.src, b.cfg.Vocabulary.Nationalities)
	if err != nil {
		return Record{}, err
	}
	rec.Name, err = SampleName(b.src, b.cfg.Vocabulary.Surnames, b.cfg.Vocabulary.GivenNames)
	if err != nil {
		return Record{}, err
	}

	rec.DocumentNumber = SampleDocumentNumber(b.src)
	// The holder's nationality is always the issuing state.
	rec.Nationality = rec.IssuingState

	rec.DateOfBirth, err = GenerateDate(b.src, b.cfg.MinBirthYear, b.cfg.MaxBirthYear)
	if err != nil {
		return Record{}, err
	}
	rec.DateOfExpiry, err = GenerateExpiry(b.src, rec.DateOfBirth.Year, b.cfg.MinValidityYears, b.cfg.MaxValidityYears)
	if err != nil {
		return Record{}, err
	}

	rec.Sex = SampleSex(b.src)
	rec.PersonalNumber = SamplePersonalNumber(b.src)

	rec.Line1, rec.Line2 = FormatLines(rec)
	if err := checkLine(1, rec.Line1); err != nil {
		return Record{}, err
	}
	if err := checkLine(2, rec.Line2); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// FormatLines renders the two MRZ lines of rec without validating them.
func FormatLines(rec Record) (string, string) {
	line1 := rec.DocumentType.Code() + rec.IssuingState + FormatNameBlock(rec.Name.Surname, rec.Name.GivenNames)

	docNumber := rec.DocumentNumber + string(checkDigitChar(rec.DocumentNumber))
	birth := rec.DateOfBirth.String()
	birth += string(checkDigitChar(birth))
	expiry := rec.DateOfExpiry.String()
	expiry += string(checkDigitChar(expiry))
	personal := PersonalNumberField(rec.PersonalNumber)
	personal += string(checkDigitChar(personal))

	composite := CompositeCheckDigit(docNumber, birth, expiry, personal)

	var sb strings.Builder
	sb.Grow(LineLength)
	sb.WriteString(docNumber)
	sb.WriteString(rec.Nationality)
	sb.WriteString(birth)
	sb.WriteString(rec.Sex)
	sb.WriteString(expiry)
	sb.WriteString(personal)
	sb.WriteByte(byte('0' + composite))

	return line1, sb.String()
}

// FormatNameBlock joins surname and given names into the 39 character name
// field: SURNAME<<GIVEN<GIVEN, spaces folded to filler, truncated or padded.
func FormatNameBlock(surname string, givenNames []string) string {
	block := surname + "<<" + strings.Join(givenNames, "<")
	block = strings.ReplaceAll(block, " ", string(Filler))
	return padRight(block, NameFieldLength)
}

// PersonalNumberField pads a personal number to its fixed 14 character field.
func PersonalNumberField(personalNumber string) string {
	return padRight(personalNumber, PersonalNumberLength)
}

// CompositeCheckDigit computes the final line 2 digit from the four
// checksummed fields, each given with its check digit appended.
func CompositeCheckDigit(documentNumber, birthDate, expiryDate, personalNumber string) int {
	return CheckDigit(documentNumber + birthDate + expiryDate + personalNumber)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(string(Filler), width-len(s))
}

func checkLine(n int, line string) error {
	if len(line) != LineLength {
		return fmt.Errorf("%w: line %d is %d characters, want %d: %q", ErrInvariant, n, len(line), LineLength, line)
	}
	for i := 0; i < len(line); i++ {
		if !isMRZChar(line[i]) {
			return fmt.Errorf("%w: line %d has %q at position %d", ErrInvariant, n, line[i], i)
		}
	}
	return nil
}
