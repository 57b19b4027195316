package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// editorModel lists the people in the working group.
type editorModel struct {
	name      string
	people    []roster.Person
	cursor    int
	flash     string
	unlocked  bool
	naming    bool
	nameInput textinput.Model
}

// editPersonMsg opens the person form; index -1 adds a new person.
type editPersonMsg struct {
	index int
}

// deletePersonMsg removes the person at index.
type deletePersonMsg struct {
	index int
}

// clearPeopleMsg starts a new, empty group.
type clearPeopleMsg struct{}

// saveGroupMsg saves the working group under name.
type saveGroupMsg struct {
	name string
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newEditorModel(name string, people []roster.Person, unlocked bool) editorModel {
	ti := textinput.New()
	ti.Placeholder = "group name"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = ""

	return editorModel{name: name, people: people, unlocked: unlocked, nameInput: ti}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (editorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.handleNaming(msg)
		}
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m editorModel) handleKey(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "a":
		return m, func() tea.Msg { return editPersonMsg{index: -1} }
	case "b":
		return m, func() tea.Msg { return navigateMsg{view: viewBulk} }
	case "n":
		return m, func() tea.Msg { return clearPeopleMsg{} }
	case "g":
		return m, func() tea.Msg { return navigateMsg{view: viewGrid} }
	case "s":
		if !m.unlocked {
			m.flash = "store is locked"
			return m, clearFlashAfter()
		}
		m.naming = true
		m.nameInput.SetValue(m.name)
		m.nameInput.CursorEnd()
		m.nameInput.Focus()
		return m, textinput.Blink
	}

	if len(m.people) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.people)-1 {
			m.cursor++
		}
		return m, nil
	}

	idx := m.cursor
	if key.Matches(msg, zstyle.KeyEnter) || msg.String() == "e" {
		return m, func() tea.Msg { return editPersonMsg{index: idx} }
	}

	if msg.String() == "d" {
		return m, func() tea.Msg { return deletePersonMsg{index: idx} }
	}

	return m, nil
}

func (m editorModel) handleNaming(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.naming = false
		m.nameInput.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.flash = "name is required"
			return m, clearFlashAfter()
		}
		m.naming = false
		m.nameInput.Blur()
		return m, func() tea.Msg { return saveGroupMsg{name: name} }
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m editorModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	title := m.name
	if title == "" {
		title = "unsaved group"
	}
	s := "\n  " + zstyle.Subtitle.Render(title) + "\n\n"

	if len(m.people) == 0 {
		s += "  " + zstyle.MutedText.Render("no people yet: a to add, b for bulk input") + "\n"
	}

	for i, p := range m.people {
		line := personLine(p)
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"
	if m.naming {
		s += "  " + zstyle.MutedText.Render("save as:") + " " + m.nameInput.View() + "\n"
	}

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

// personLine renders one editor row: name, DOB, then age and cohort or the
// validation message.
func personLine(p roster.Person) string {
	name := p.Name
	if name == "" {
		name = "(no name)"
	}
	line := fmt.Sprintf("%-24s %-12s", truncate(name, 24), truncate(p.DOB, 12))

	switch {
	case p.Err != "":
		line += zstyle.StatusErr.Render(p.Err)
	case p.Age != nil:
		detail := fmt.Sprintf("age %d", *p.Age)
		if p.Generation != nil {
			detail += "  " + p.Generation.Nickname
		}
		line += zstyle.MutedText.Render(detail)
	}
	return line
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "…"
}
