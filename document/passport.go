package document

import (
	"fmt"
	"log/slog"
	"strings"

	"go-mrz-generator/models"
	"go-mrz-generator/mrz"

	gmrtd "github.com/gmrtd/gmrtd/mrz"
)

var euCountries = []string{
	"AUT", "BEL", "BGR", "HRV", "CYP",
	"CZE", "DNK", "EST", "FIN", "FRA",
	// Germany has D instead of the expected DEU.
	"D", "GRC", "HUN", "IRL", "ITA",
	"LVA", "LTU", "LUX", "MLT", "NLD",
	"POL", "PRT", "ROU", "SVK", "SVN",
	"ESP", "SWE",
}

func IsEuCitizen(nationality string) bool {
	nationality = strings.ToUpper(trimFiller(nationality))
	for _, country := range euCountries {
		if nationality == country {
			return true
		}
	}
	return false
}

// ToGeneratedRecord flattens a record into its JSON form.
func ToGeneratedRecord(rec mrz.Record) models.GeneratedRecord {
	return models.GeneratedRecord{
		Line1:          rec.Line1,
		Line2:          rec.Line2,
		DocumentType:   rec.DocumentType.Code(),
		DocumentKind:   rec.DocumentType.Name,
		IssuingState:   rec.IssuingState,
		Surname:        rec.Name.Surname,
		GivenNames:     rec.Name.GivenNames,
		DocumentNumber: rec.DocumentNumber,
		Nationality:    rec.Nationality,
		DateOfBirth:    FormatDate(rec.DateOfBirth),
		DateOfExpiry:   FormatDate(rec.DateOfExpiry),
		Sex:            rec.Sex,
		PersonalNumber: rec.PersonalNumber,
		IsEuCitizen:    BoolToYesNo(IsEuCitizen(rec.Nationality)),
	}
}

// CrossCheck reads the emitted lines back with an independent ICAO 9303
// decoder and compares the result with the sampled fields.
func CrossCheck(rec mrz.Record) error {
	decoded, err := gmrtd.MrzDecode(rec.Line1 + rec.Line2)
	if err != nil {
		return fmt.Errorf("failed to decode generated MRZ: %w", err)
	}

	if err := compareField("document code", trimFiller(rec.DocumentType.Code()), trimFiller(decoded.DocumentCode)); err != nil {
		return err
	}
	if err := compareField("issuing state", trimFiller(rec.IssuingState), trimFiller(decoded.IssuingState)); err != nil {
		return err
	}
	if err := compareField("nationality", trimFiller(rec.Nationality), trimFiller(decoded.Nationality)); err != nil {
		return err
	}
	if err := compareField("document number", rec.DocumentNumber, trimFiller(decoded.DocumentNumber)); err != nil {
		return err
	}
	if err := compareField("date of birth", rec.DateOfBirth.String(), decoded.DateOfBirth); err != nil {
		return err
	}
	if err := compareField("date of expiry", rec.DateOfExpiry.String(), decoded.DateOfExpiry); err != nil {
		return err
	}

	if _, err := ParseMRZDate(decoded.DateOfBirth); err != nil {
		return fmt.Errorf("failed to parse date of birth: %w", err)
	}
	if _, err := ParseMRZDate(decoded.DateOfExpiry); err != nil {
		return fmt.Errorf("failed to parse date of expiry: %w", err)
	}

	// The name block may be truncated, so names are only compared when
	// they fit.
	if nameFits(rec.Name) && decoded.NameOfHolder != nil {
		if err := compareField("surname", rec.Name.Surname, decoded.NameOfHolder.Primary); err != nil {
			return err
		}
		if err := compareField("given names", strings.Join(rec.Name.GivenNames, " "), decoded.NameOfHolder.Secondary); err != nil {
			return err
		}
	}

	slog.Debug("Cross-check passed", "document_number", rec.DocumentNumber)
	return nil
}

func nameFits(name mrz.Name) bool {
	return len(name.Surname)+2+len(strings.Join(name.GivenNames, "<")) <= mrz.NameFieldLength
}

func compareField(field, want, got string) error {
	if want != got {
		return fmt.Errorf("cross-check mismatch on %s: generated %q, decoded %q", field, want, got)
	}
	return nil
}
