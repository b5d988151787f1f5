// Package datetime implements calendar arithmetic for the age calculator.
package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the accepted birth date format.
const DateLayout = "2006-01-02"

// ErrFutureDate is returned when the birth date is after the reference date.
var ErrFutureDate = errors.New("birth date cannot be in the future")

// AgeResult is an age broken into calendar units.
type AgeResult struct {
	Years     int `json:"years"`
	Months    int `json:"months"`
	Days      int `json:"days"`
	TotalDays int `json:"total_days"`
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// Age returns the age on now of someone born on birth. Only the calendar
// dates matter; times of day and locations are dropped.
//
// Years and months count whole monthly anniversaries. An anniversary that
// falls on a day the month lacks (the 31st, or Feb 29) moves to the last day
// of that month. Days are counted from the last anniversary.
func Age(birth, now time.Time) (AgeResult, error) {
	b := dateOf(birth)
	n := dateOf(now)
	if b.After(n) {
		return AgeResult{}, ErrFutureDate
	}

	months := (n.Year()-b.Year())*12 + int(n.Month()) - int(b.Month())
	if addMonths(b, months).After(n) {
		months--
	}
	anchor := addMonths(b, months)

	return AgeResult{
		Years:     months / 12,
		Months:    months % 12,
		Days:      daysBetween(anchor, n),
		TotalDays: daysBetween(b, n),
	}, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonths adds m months to t, clamping the day to the target month's length.
func addMonths(t time.Time, m int) time.Time {
	total := t.Year()*12 + int(t.Month()) - 1 + m
	year, month := total/12, time.Month(total%12+1)
	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
