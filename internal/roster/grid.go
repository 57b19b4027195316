package roster

import (
	"fmt"
	"strconv"
)

// MinGridPeople is the smallest group that produces a grid.
const MinGridPeople = 2

// Diagonal marks a person compared with themselves.
const Diagonal = "—"

// Grid is the square matrix of pairwise age differences. Labels index both
// rows and columns.
type Grid struct {
	Labels []string
	// Cells[i][j] is |age(i) - age(j)|, or Diagonal when i == j.
	Cells [][]string
}

// DisplayName renders "Name (Nickname) (age)", omitting absent parts.
func DisplayName(p Person) string {
	s := p.Name
	if p.Generation != nil {
		s += fmt.Sprintf(" (%s)", p.Generation.Nickname)
	}
	if p.Age != nil {
		s += fmt.Sprintf(" (%d)", *p.Age)
	}
	return s
}

// AgeDistance returns the absolute difference in years. A missing age
// counts as zero.
func AgeDistance(a, b Person) int {
	d := ageOf(a) - ageOf(b)
	if d < 0 {
		return -d
	}
	return d
}

// NewGrid builds the grid for people in the given order. ok is false when
// there are fewer than MinGridPeople people.
func NewGrid(people []Person) (g Grid, ok bool) {
	if len(people) < MinGridPeople {
		return Grid{}, false
	}

	g.Labels = make([]string, len(people))
	g.Cells = make([][]string, len(people))
	for i, row := range people {
		g.Labels[i] = DisplayName(row)
		g.Cells[i] = make([]string, len(people))
		for j, col := range people {
			if i == j {
				g.Cells[i][j] = Diagonal
				continue
			}
			g.Cells[i][j] = strconv.Itoa(AgeDistance(row, col))
		}
	}
	return g, true
}

func ageOf(p Person) int {
	if p.Age == nil {
		return 0
	}
	return *p.Age
}
