package roster

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML form of a group.
//
//	name: book club
//	people:
//	  - name: Olivia Chen
//	    dob: 1985-03-12
type File struct {
	Name   string  `yaml:"name,omitempty"`
	People []Entry `yaml:"people"`
}

// Entry is one person in a roster file.
type Entry struct {
	Name string `yaml:"name"`
	DOB  string `yaml:"dob"`
}

// FileFrom converts people to their file form.
func FileFrom(name string, people []Person) File {
	f := File{Name: name, People: make([]Entry, 0, len(people))}
	for _, p := range people {
		f.People = append(f.People, Entry{Name: p.Name, DOB: p.DOB})
	}
	return f
}

// Persons converts file entries to people with fresh IDs.
func (f File) Persons() []Person {
	people := make([]Person, 0, len(f.People))
	for _, e := range f.People {
		people = append(people, NewPerson(e.Name, e.DOB))
	}
	return people
}

// Decode reads a roster from YAML.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode roster: %w", err)
	}
	return f, nil
}

// Encode writes the roster as YAML.
func (f File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return enc.Close()
}

// ReadFile loads a roster file from disk.
func ReadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("read roster: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFile saves a roster file to disk.
func WriteFile(path string, f File) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write roster: %w", err)
	}

	if err := f.Encode(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
