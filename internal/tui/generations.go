package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/generation"
)

type generationsTab int

const (
	tabCohorts generationsTab = iota
	tabSources
)

// generationsModel shows the cohort table and the sources behind it.
type generationsModel struct {
	tab generationsTab
	// cohorts default to newest first, sources to A-Z
	cohortsAsc  bool
	sourcesDesc bool
	width       int
}

func newGenerationsModel() generationsModel {
	return generationsModel{}
}

func (m generationsModel) Init() tea.Cmd {
	return nil
}

func (m generationsModel) Update(msg tea.Msg) (generationsModel, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(msgKey, zstyle.KeyQuit) {
		return m, tea.Quit
	}
	if key.Matches(msgKey, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msgKey.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.tab == tabCohorts {
			m.tab = tabSources
		} else {
			m.tab = tabCohorts
		}
	case "s":
		if m.tab == tabCohorts {
			m.cohortsAsc = !m.cohortsAsc
		} else {
			m.sourcesDesc = !m.sourcesDesc
		}
	}
	return m, nil
}

func (m generationsModel) cohorts() []generation.Cohort {
	return generation.SortCohorts(!m.cohortsAsc)
}

func (m generationsModel) sources() []generation.Source {
	return generation.SortSources(m.sourcesDesc)
}

func (m generationsModel) View() string {
	active := lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true)
	tabs := []string{"cohorts", "sources"}
	s := "\n  "
	for i, name := range tabs {
		if generationsTab(i) == m.tab {
			s += active.Render(name)
		} else {
			s += zstyle.MutedText.Render(name)
		}
		s += "   "
	}
	s += "\n\n"

	var t *table.Table
	var order string
	if m.tab == tabCohorts {
		order = "newest first"
		if m.cohortsAsc {
			order = "oldest first"
		}
		t = m.cohortTable()
	} else {
		order = "A to Z"
		if m.sourcesDesc {
			order = "Z to A"
		}
		t = m.sourceTable()
	}

	if m.width > 4 {
		t = t.Width(m.width - 2)
	}
	s += "  " + zstyle.MutedText.Render("sorted "+order) + "\n"
	s += indent(t.Render()) + "\n"
	return s
}

func (m generationsModel) cohortTable() *table.Table {
	rows := make([][]string, 0, len(generation.Cohorts()))
	for _, c := range m.cohorts() {
		rows = append(rows, []string{
			c.Name,
			c.Nickname,
			fmt.Sprintf("%d-%d", c.StartYear, c.EndYear),
			c.Trait,
		})
	}
	return dataTable([]string{"generation", "nickname", "born", "trait"}, rows)
}

func (m generationsModel) sourceTable() *table.Table {
	rows := make([][]string, 0, len(generation.Sources()))
	for _, src := range m.sources() {
		rows = append(rows, []string{src.Type, src.Examples, src.Role})
	}
	return dataTable([]string{"source", "examples", "role"}, rows)
}

func dataTable(headers []string, rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(zstyle.MutedText).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
