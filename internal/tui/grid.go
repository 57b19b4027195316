package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/roster"
)

const tooFew = "enter at least two people with valid names and dates of birth to see the grid"

// gridModel shows the pairwise age differences of the working group.
type gridModel struct {
	people   []roster.Person
	ordering roster.Ordering
	share    ShareSettings
	grid     roster.Grid
	ok       bool
	width    int
	flash    string
}

func newGridModel(people []roster.Person, o roster.Ordering, share ShareSettings) gridModel {
	m := gridModel{people: people, ordering: o, share: share}
	return m.arrange()
}

func (m gridModel) arrange() gridModel {
	m.grid, m.ok = roster.NewGrid(roster.Arrange(m.people, m.ordering))
	return m
}

func (m gridModel) Init() tea.Cmd {
	return nil
}

func (m gridModel) Update(msg tea.Msg) (gridModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		switch msg.String() {
		case "g":
			m.ordering.ByGeneration = !m.ordering.ByGeneration
			return m.arrange(), nil
		case "r":
			if !m.ordering.ByGeneration {
				return m, nil
			}
			m.ordering.Descending = !m.ordering.Descending
			return m.arrange(), nil
		case "c":
			return m.copyLink()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m gridModel) copyLink() (gridModel, tea.Cmd) {
	var shared []roster.Person
	for _, p := range m.people {
		if p.Name != "" && p.DOB != "" {
			shared = append(shared, p)
		}
	}
	if len(shared) == 0 {
		m.flash = "nothing to share"
		return m, clearFlashAfter()
	}

	if err := copyToClipboard(m.share.Link(shared)); err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}
	m.flash = "share link copied"
	return m, clearFlashAfter()
}

func (m gridModel) View() string {
	s := "\n  " + zstyle.MutedText.Render(m.orderLabel()) + "\n\n"

	if !m.ok {
		s += "  " + zstyle.StatusWarn.Render(tooFew) + "\n"
	} else {
		s += indent(renderGridTable(m.grid, m.width)) + "\n"
	}

	for _, p := range m.people {
		if p.Err != "" {
			s += "  " + zstyle.StatusErr.Render(p.Name+": "+p.Err+" ("+p.DOB+")") + "\n"
		}
	}

	s += "\n"
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}
	return s
}

func (m gridModel) orderLabel() string {
	if !m.ordering.ByGeneration {
		return "ordered by age"
	}
	if m.ordering.Descending {
		return "grouped by generation, newest first"
	}
	return "grouped by generation, oldest first"
}

// renderGridTable draws the grid with the labels as both the header row and
// the first column, squeezed to width when it would overflow.
func renderGridTable(g roster.Grid, width int) string {
	headerStyle := lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	diagStyle := cellStyle.Foreground(zstyle.MutedText.GetForeground())

	headers := append([]string{""}, g.Labels...)
	rows := make([][]string, len(g.Cells))
	for i, cells := range g.Cells {
		rows[i] = append([]string{g.Labels[i]}, cells...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(accent)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			case row == col-1:
				return diagStyle
			}
			return cellStyle
		})
	out := t.Render()
	if width > 0 && lipgloss.Width(out) > width-2 {
		out = t.Width(width - 2).Render()
	}
	return out
}

// indent shifts every line of s two columns right.
func indent(s string) string {
	return lipgloss.NewStyle().MarginLeft(2).Render(s)
}
