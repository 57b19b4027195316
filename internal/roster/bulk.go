package roster

import (
	"errors"
	"strings"
)

// ErrEmptyBulk is returned when bulk text contains no lines.
var ErrEmptyBulk = errors.New("bulk input is empty: provide each person on a new line as Name, DOB")

// ParseBulk reads one person per line in the form "Name, DOB". Blank lines
// are skipped; missing fields are left empty for Resolve to flag.
func ParseBulk(text string) ([]Person, error) {
	var people []Person
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, dobText := splitEntry(line, ",")
		people = append(people, NewPerson(name, dobText))
	}

	if len(people) == 0 {
		return nil, ErrEmptyBulk
	}
	return people, nil
}

// Merge combines the current list with bulk results, replacing it unless
// appending.
func Merge(current, incoming []Person, appendMode bool) []Person {
	if !appendMode {
		return incoming
	}
	out := make([]Person, 0, len(current)+len(incoming))
	out = append(out, current...)
	return append(out, incoming...)
}

func splitEntry(line, sep string) (name, dobText string) {
	parts := strings.Split(line, sep)
	if len(parts) > 0 {
		name = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		dobText = strings.TrimSpace(parts[1])
	}
	return name, dobText
}
