package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/roster"
)

type menuChoice int

const (
	menuEditor menuChoice = iota
	menuGrid
	menuGenerations
	menuAffiliations
	menuGroups
	menuSettings
	menuQuit
)

var menuItems = []string{
	"Edit group",
	"Age grid",
	"Generations",
	"Find affiliations",
	"Saved groups",
	"Settings",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor   int
	version  string
	group    string
	total    int
	valid    int
	unlocked bool
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// skipStoreMsg continues to the menu without opening the store.
type skipStoreMsg struct{}

func newMenuModel(version, group string, people []roster.Person, unlocked bool) menuModel {
	m := menuModel{version: version, group: group, total: len(people), unlocked: unlocked}
	for _, p := range people {
		if p.Valid() {
			m.valid++
		}
	}
	return m
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	var view viewID
	switch menuChoice(m.cursor) {
	case menuEditor:
		view = viewEditor
	case menuGrid:
		view = viewGrid
	case menuGenerations:
		view = viewGenerations
	case menuAffiliations:
		view = viewAffiliations
	case menuGroups:
		view = viewGroups
	case menuSettings:
		view = viewSettings
	case menuQuit:
		return tea.Quit
	default:
		return nil
	}
	return func() tea.Msg { return navigateMsg{view: view} }
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("zchrono")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n", title, ver)

	name := m.group
	if name == "" {
		name = "unsaved group"
	}
	status := fmt.Sprintf("%s  %d people, %d valid", name, m.total, m.valid)
	if !m.unlocked {
		status += "  (store locked)"
	}
	s += "  " + zstyle.MutedText.Render(status) + "\n\n"

	for i, item := range menuItems {
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  > %s", item)) + "\n"
		} else {
			s += fmt.Sprintf("    %s\n", item)
		}
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
