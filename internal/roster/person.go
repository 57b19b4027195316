// Package roster holds group members, resolves their ages and cohorts, and
// orders them for the age-distance grid.
package roster

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/zchrono/internal/dob"
	"github.com/zarlcorp/zchrono/internal/generation"
)

// InvalidDate is the inline message shown for a DOB that does not parse.
const InvalidDate = "Invalid date"

// Person is one group member. Age, Generation and Err are derived from DOB
// by Resolve.
type Person struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	DOB        string             `json:"dob"`
	Age        *int               `json:"age,omitempty"`
	Generation *generation.Cohort `json:"generation,omitempty"`
	Err        string             `json:"error,omitempty"`
}

// Group is a saved, named set of people.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	People    []Person  `json:"people"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGroup creates a group with a fresh ID.
func NewGroup(name string, people []Person, now time.Time) Group {
	return Group{
		ID:        uuid.NewString(),
		Name:      name,
		People:    people,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewPerson creates a person with a fresh ID. Call Resolve to derive age.
func NewPerson(name, dobText string) Person {
	return Person{ID: NewID(), Name: name, DOB: dobText}
}

// Valid reports whether the person can appear in the grid.
func (p Person) Valid() bool {
	return p.Name != "" && p.Age != nil
}

// Resolve recomputes age, generation and the validation message from DOB.
// A parsed DOB is rewritten in canonical mm/dd/yyyy form.
func Resolve(p Person, now time.Time) Person {
	p.Age = nil
	p.Generation = nil
	p.Err = ""

	if p.DOB == "" {
		return p
	}

	b, err := dob.Parse(p.DOB, now)
	if err != nil {
		p.Err = InvalidDate
		return p
	}

	age := b.Age
	p.Age = &age
	p.DOB = b.Formatted
	if c, ok := generation.Classify(b.Year); ok {
		p.Generation = &c
	}
	return p
}

// ResolveAll resolves every person, returning a new slice.
func ResolveAll(people []Person, now time.Time) []Person {
	out := make([]Person, len(people))
	for i, p := range people {
		out[i] = Resolve(p, now)
	}
	return out
}

// Defaults returns the sample group shown when nothing else is loaded.
func Defaults() []Person {
	return []Person{
		NewPerson("Olivia Chen", "1985-03-12"),
		NewPerson("Benjamin Carter", "1992-07-24"),
		NewPerson("Sophia Rodriguez", "1978-11-02"),
		NewPerson("William Kim", "2001-01-15"),
		NewPerson("Ava Williams", "1998-09-30"),
	}
}

// NewID returns a random 8-character hex identifier.
func NewID() string {
	b, err := zcrypto.RandBytes(4)
	if err != nil {
		panic("zcrypto: " + err.Error())
	}
	return hex.EncodeToString(b)
}
