// Package dob parses free-form dates of birth and computes ages.
package dob

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned for any unparseable, non-calendar or future date.
var ErrInvalid = errors.New("invalid date")

var (
	yearFirst = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	yearLast  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
	shortYear = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2})$`)
)

const layout = "01/02/2006"

// Birthdate is a validated date of birth.
type Birthdate struct {
	Date      time.Time
	Age       int
	Formatted string // mm/dd/yyyy
	Year      int
}

// ParseNow is Parse relative to the current time.
func ParseNow(s string) (Birthdate, error) {
	return Parse(s, time.Now())
}

// Parse accepts yyyy-mm-dd, mm-dd-yyyy or mm-dd-yy (either separator) and
// returns the birthdate with its age as of now. Two-digit years at or below
// now's two-digit year resolve to the 2000s, the rest to the 1900s.
func Parse(s string, now time.Time) (Birthdate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Birthdate{}, fmt.Errorf("%w: empty", ErrInvalid)
	}

	var year, month, day int
	switch {
	case yearFirst.MatchString(s):
		p := yearFirst.FindStringSubmatch(s)
		year, month, day = atoi(p[1]), atoi(p[2]), atoi(p[3])
	case yearLast.MatchString(s):
		p := yearLast.FindStringSubmatch(s)
		month, day, year = atoi(p[1]), atoi(p[2]), atoi(p[3])
	case shortYear.MatchString(s):
		p := shortYear.FindStringSubmatch(s)
		month, day, year = atoi(p[1]), atoi(p[2]), atoi(p[3])
		year = windowYear(year, now)
	default:
		return Birthdate{}, fmt.Errorf("%w: %q is not yyyy-mm-dd, mm/dd/yyyy or mm/dd/yy", ErrInvalid, s)
	}

	if year < 100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Birthdate{}, fmt.Errorf("%w: %q out of range", ErrInvalid, s)
	}

	born := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	if born.Year() != year || int(born.Month()) != month || born.Day() != day {
		return Birthdate{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalid, s)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if born.After(today) {
		return Birthdate{}, fmt.Errorf("%w: %q is in the future", ErrInvalid, s)
	}

	return Birthdate{
		Date:      born,
		Age:       Age(born, now),
		Formatted: born.Format(layout),
		Year:      year,
	}, nil
}

// Age returns whole years between born and now, not counting a year whose
// anniversary has not been reached.
func Age(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

func windowYear(yy int, now time.Time) int {
	if yy <= now.Year()%100 {
		return 2000 + yy
	}
	return 1900 + yy
}

// atoi is only fed regexp digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
