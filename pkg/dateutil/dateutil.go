package dateutil

import (
	"time"
)

// Age calculates the age in whole years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// BeginningOfMonth returns midnight on the first day of the date's month
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// PeriodEnd returns the last instant of a period of the given number of
// calendar months starting at the beginning of start's month.
func PeriodEnd(start time.Time, months int) time.Time {
	return AddMonths(BeginningOfMonth(start), months).Add(-time.Nanosecond)
}

// MonthsRemaining counts whole calendar months left between at and end,
// including the current month. It never returns a negative value.
func MonthsRemaining(at, end time.Time) int {
	if !at.Before(end) {
		return 0
	}
	months := (end.Year()-at.Year())*12 + int(end.Month()) - int(at.Month()) + 1
	if months < 0 {
		return 0
	}
	return months
}
