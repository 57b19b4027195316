package roster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zarlcorp/zchrono/internal/generation"
)

func TestDisplayName(t *testing.T) {
	boomers, _ := generation.ByNickname("Boomers")

	tests := []struct {
		name string
		p    Person
		want string
	}{
		{"full", Person{Name: "Ann", Age: intp(70), Generation: &boomers}, "Ann (Boomers) (70)"},
		{"no cohort", Person{Name: "Tot", Age: intp(0)}, "Tot (0)"},
		{"name only", Person{Name: "Unknown"}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.p); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewGrid(t *testing.T) {
	people := Arrange(sampleGroup(), Ordering{})
	g, ok := NewGrid(people)
	if !ok {
		t.Fatal("five people should produce a grid")
	}

	wantLabels := []string{
		"William Kim (Zoomers) (25)",
		"Ava Williams (Zoomers) (28)",
		"Benjamin Carter (Pioneers) (34)",
		"Olivia Chen (Pioneers) (41)",
		"Sophia Rodriguez (Independents) (47)",
	}
	if diff := cmp.Diff(wantLabels, g.Labels); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}

	wantCells := [][]string{
		{Diagonal, "3", "9", "16", "22"},
		{"3", Diagonal, "6", "13", "19"},
		{"9", "6", Diagonal, "7", "13"},
		{"16", "13", "7", Diagonal, "6"},
		{"22", "19", "13", "6", Diagonal},
	}
	if diff := cmp.Diff(wantCells, g.Cells); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
}

func TestNewGridSymmetric(t *testing.T) {
	g, _ := NewGrid(sampleGroup())
	for i := range g.Cells {
		for j := range g.Cells {
			if g.Cells[i][j] != g.Cells[j][i] {
				t.Errorf("cell (%d,%d)=%s differs from (%d,%d)=%s", i, j, g.Cells[i][j], j, i, g.Cells[j][i])
			}
		}
	}
}

func TestNewGridNeedsTwoPeople(t *testing.T) {
	if _, ok := NewGrid(nil); ok {
		t.Error("empty group should not produce a grid")
	}
	if _, ok := NewGrid(sampleGroup()[:1]); ok {
		t.Error("single person should not produce a grid")
	}
	if _, ok := NewGrid(sampleGroup()[:2]); !ok {
		t.Error("two people should produce a grid")
	}
}

func TestAgeDistanceMissingAgeCountsAsZero(t *testing.T) {
	if d := AgeDistance(Person{Age: intp(30)}, Person{}); d != 30 {
		t.Errorf("got %d, want 30", d)
	}
	if d := AgeDistance(Person{Age: intp(10)}, Person{Age: intp(40)}); d != 30 {
		t.Errorf("got %d, want 30", d)
	}
}
