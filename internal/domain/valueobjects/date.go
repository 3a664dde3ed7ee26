package valueobjects

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is matched by every DateError.
var ErrInvalidDate = errors.New("invalid date")

// MinimumHolderAge is the youngest age allowed to open an account.
const MinimumHolderAge = 18

const minimumYear = 1900

// DateProblem classifies why a date of birth was rejected.
type DateProblem int

const (
	DateOutOfRange DateProblem = iota + 1
	DateNotOnCalendar
	DateNotInPast
	DateUnderage
)

// DateError describes a rejected date of birth. Error() is the operator message.
type DateError struct {
	Text    string // date as written by the operator
	Problem DateProblem
}

func (e *DateError) Error() string {
	switch e.Problem {
	case DateOutOfRange:
		return fmt.Sprintf("DOB invalid: %s is out of range!", e.Text)
	case DateNotInPast:
		return fmt.Sprintf("DOB invalid: %s is in the future or today!", e.Text)
	case DateUnderage:
		return fmt.Sprintf("DOB invalid: %s is under %d years old!", e.Text, MinimumHolderAge)
	default:
		return fmt.Sprintf("DOB invalid: %s not a valid calendar date!", e.Text)
	}
}

// Is makes errors.Is(err, ErrInvalidDate) true for any DateError.
func (e *DateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// Date is a calendar date written as m/d/yyyy. A Date may hold an impossible
// combination (e.g. 2/30/2001) until Validate is called.
type Date struct {
	month int
	day   int
	year  int
}

// NewDate creates a date without validating it.
func NewDate(month, day, year int) Date {
	return Date{month: month, day: day, year: year}
}

// ParseDate reads the m/d/yyyy form. Only the shape is checked here; calendar
// and age rules are applied by Validate.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, &DateError{Text: s, Problem: DateNotOnCalendar}
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, &DateError{Text: s, Problem: DateNotOnCalendar}
		}
		nums[i] = n
	}
	return NewDate(nums[0], nums[1], nums[2]), nil
}

// ParseBirthDate parses and validates a date of birth against today.
func ParseBirthDate(s string, today time.Time) (Date, error) {
	d, err := ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	if err := d.Validate(today); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate applies the date-of-birth rules in order: range, calendar,
// strictly before today, at least MinimumHolderAge years old.
func (d Date) Validate(today time.Time) error {
	text := d.String()
	if d.year < minimumYear || d.month < 1 || d.month > 12 || d.day < 1 {
		return &DateError{Text: text, Problem: DateOutOfRange}
	}
	if d.day > daysIn(d.month, d.year) {
		return &DateError{Text: text, Problem: DateNotOnCalendar}
	}

	ty, tm, td := today.Year(), int(today.Month()), today.Day()
	if d.Compare(NewDate(tm, td, ty)) >= 0 {
		return &DateError{Text: text, Problem: DateNotInPast}
	}

	age := ty - d.year
	if d.month > tm || (d.month == tm && d.day > td) {
		age--
	}
	if age < MinimumHolderAge {
		return &DateError{Text: text, Problem: DateUnderage}
	}
	return nil
}

func daysIn(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func (d Date) Month() int { return d.month }
func (d Date) Day() int { return d.day }
func (d Date) Year() int { return d.year }

// Compare orders dates chronologically.
func (d Date) Compare(other Date) int {
	if c := compareInt(d.year, other.year); c != 0 {
		return c
	}
	if c := compareInt(d.month, other.month); c != 0 {
		return c
	}
	return compareInt(d.day, other.day)
}

// Equals checks if both dates name the same day.
func (d Date) Equals(other Date) bool {
	return d == other
}

// String returns m/d/yyyy without zero padding, e.g. "5/7/1995".
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.month, d.day, d.year)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
