package roster

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ordering controls how valid people are arranged in the grid.
type Ordering struct {
	ByGeneration bool
	// Descending reverses the cohort order; it has no effect unless
	// ByGeneration is set.
	Descending bool
}

// Arrange filters people down to those with a name and an age and sorts
// them. The default order is age ascending, then name.
func Arrange(people []Person, o Ordering) []Person {
	var out []Person
	for _, p := range people {
		if p.Valid() {
			out = append(out, p)
		}
	}

	names := collate.New(language.English)
	byAgeThenName := func(a, b Person) bool {
		if *a.Age != *b.Age {
			return *a.Age < *b.Age
		}
		return names.CompareString(a.Name, b.Name) < 0
	}

	if !o.ByGeneration {
		sort.SliceStable(out, func(i, j int) bool {
			return byAgeThenName(out[i], out[j])
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Generation == nil && b.Generation == nil:
			return byAgeThenName(a, b)
		case a.Generation == nil:
			return false
		case b.Generation == nil:
			return true
		}

		if a.Generation.StartYear != b.Generation.StartYear {
			if o.Descending {
				return a.Generation.StartYear > b.Generation.StartYear
			}
			return a.Generation.StartYear < b.Generation.StartYear
		}
		return byAgeThenName(a, b)
	})
	return out
}
