package document

import (
	"fmt"
	"strings"
	"time"

	"go-mrz-generator/mrz"
)

const DATE_FORMAT_CYMD = "2006-01-02"

func BoolToYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

// ParseMRZDate parses a yymmdd field and fails on dates that do not exist.
// The century is whatever the Go parser picks (69-99 is 19xx, 00-68 is 20xx);
// callers only rely on the calendar check.
func ParseMRZDate(dateStr string) (time.Time, error) {
	if len(dateStr) != mrz.DateLength {
		return time.Time{}, fmt.Errorf("invalid date format: %s", dateStr)
	}
	layout := "060102" // "06" for year, "01" for month, "02" for day

	parsedDate, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing date: %w", err)
	}
	return parsedDate, nil
}

// FormatDate renders a full calendar date, which the MRZ itself cannot carry.
func FormatDate(d mrz.Date) string {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Format(DATE_FORMAT_CYMD)
}

func trimFiller(s string) string {
	return strings.TrimRight(s, string(mrz.Filler))
}
