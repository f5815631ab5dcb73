package onthisday

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// daysInMonth is evaluated against a leap year so 02-29 is accepted.
var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthDay is a calendar day without a year.
type MonthDay struct {
	Month int
	Day   int
}

// Today returns the month and day of now in now's location.
func Today(now time.Time) MonthDay {
	return MonthDay{Month: int(now.Month()), Day: now.Day()}
}

// ParseMonthDay parses a "MM-DD" string. A single-digit month or day is accepted.
func ParseMonthDay(s string) (MonthDay, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > daysInMonth[month] {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return MonthDay{Month: month, Day: day}, nil
}

// MonthString returns the zero-padded two-digit month.
func (md MonthDay) MonthString() string {
	return fmt.Sprintf("%02d", md.Month)
}

// DayString returns the zero-padded two-digit day.
func (md MonthDay) DayString() string {
	return fmt.Sprintf("%02d", md.Day)
}

func (md MonthDay) String() string {
	return md.MonthString() + "-" + md.DayString()
}
