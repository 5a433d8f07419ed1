package types

import "time"

const (
	// dd-MMM-yyyy HH:mm
	CellDateLayout = "02-Jan-2006 15:04"
	// dd-MMM-yyyy
	CaptionDateLayout = "02-Jan-2006"
	// yyyy-MM-dd, the value format of a date input
	InputDateLayout = "2006-01-02"

	InvalidDate = "Invalid Date"
)

// FormatCellDate renders a timestamp for a table cell. Go's layouts always
// use English month names, so the output does not depend on locale.
func FormatCellDate(t Timestamp) string {
	if !t.Valid {
		return InvalidDate
	}
	return t.Time.UTC().Format(CellDateLayout)
}

func FormatCaptionDate(t time.Time) string {
	return t.UTC().Format(CaptionDateLayout)
}

func FormatInputDate(t time.Time) string {
	return t.UTC().Format(InputDateLayout)
}

func ParseInputDate(value string) (time.Time, error) {
	return time.ParseInLocation(InputDateLayout, value, time.UTC)
}
