package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// groupListModel displays saved groups, most recently updated first.
type groupListModel struct {
	groups []roster.Group
	cursor int
	flash  string
}

// loadGroupMsg makes group the working group.
type loadGroupMsg struct {
	group roster.Group
}

// deleteGroupMsg removes a saved group.
type deleteGroupMsg struct {
	id string
}

func newGroupListModel(groups []roster.Group) groupListModel {
	return groupListModel{groups: groups}
}

func (m groupListModel) Init() tea.Cmd {
	return nil
}

func (m groupListModel) Update(msg tea.Msg) (groupListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m groupListModel) handleKey(msg tea.KeyMsg) (groupListModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.groups) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.groups)-1 {
			m.cursor++
		}
		return m, nil
	}

	g := m.groups[m.cursor]
	if key.Matches(msg, zstyle.KeyEnter) {
		return m, func() tea.Msg { return loadGroupMsg{group: g} }
	}

	if msg.String() == "d" {
		return m, func() tea.Msg { return deleteGroupMsg{id: g.ID} }
	}

	return m, nil
}

func (m groupListModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"

	if len(m.groups) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved groups") + "\n\n"
	} else {
		for i, g := range m.groups {
			name := g.Name
			if name == "" {
				name = "(unnamed)"
			}
			line := fmt.Sprintf("%-24s %s", truncate(name, 24),
				zstyle.MutedText.Render(fmt.Sprintf("%d people  %s", len(g.People), g.UpdatedAt.Format("2006-01-02"))))

			if i == m.cursor {
				s += "  " + accentStyle.Render("▸") + " " + line + "\n"
			} else {
				s += "    " + line + "\n"
			}
		}
		s += "\n"
	}

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
