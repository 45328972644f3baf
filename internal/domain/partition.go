package domain

import "time"

// MonthPartition returns the retention partition for signup records:
// the calendar month in UTC, formatted YYYY-MM.
func MonthPartition(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// DayPartition returns the partition for contact and ritual records:
// the calendar day in UTC, formatted YYYY-MM-DD.
func DayPartition(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
