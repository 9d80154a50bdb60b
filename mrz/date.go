package mrz

import "fmt"

// Date is a calendar date as it appears in an MRZ.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYMMDD.
func (d Date) String() string {
	return fmt.Sprintf("%02d%02d%02d", d.Year%100, d.Month, d.Day)
}

// Valid reports whether d is a real calendar date.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month (1-12) in year.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// GenerateDate draws a date whose year is uniform in [minYear, maxYear].
func GenerateDate(src Source, minYear, maxYear int) (Date, error) {
	if minYear > maxYear {
		return Date{}, fmt.Errorf("%w: year range %d-%d is empty", ErrInvalidConfig, minYear, maxYear)
	}
	return GenerateDateInYear(src, uniformInt(src, minYear, maxYear)), nil
}

// GenerateDateInYear draws a month and day within a fixed year.
func GenerateDateInYear(src Source, year int) Date {
	month := uniformInt(src, 1, 12)
	day := uniformInt(src, 1, DaysInMonth(year, month))
	return Date{Year: year, Month: month, Day: day}
}

// GenerateExpiry draws an expiry date between minYears and maxYears after
// birthYear. Month and day are independent of the birth date.
func GenerateExpiry(src Source, birthYear, minYears, maxYears int) (Date, error) {
	if minYears > maxYears {
		return Date{}, fmt.Errorf("%w: validity range %d-%d is empty", ErrInvalidConfig, minYears, maxYears)
	}
	return GenerateDateInYear(src, birthYear+uniformInt(src, minYears, maxYears)), nil
}
