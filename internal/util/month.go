package util

import "time"

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// CurrentMonth returns the current calendar month as YYYY-MM.
func CurrentMonth() string {
	return time.Now().Format(MonthLayout)
}

// Today returns the current calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ValidMonth reports whether s is a well-formed YYYY-MM month.
func ValidMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DaysUntil returns the number of whole days from now's calendar date to
// the given date. Past dates yield negative values.
func DaysUntil(date string, now time.Time) (int, error) {
	target, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24), nil
}
