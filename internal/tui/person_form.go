package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/roster"
)

const (
	fieldName = iota
	fieldDOB
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"name",
	"born",
}

// personFormModel adds or edits one person, validating the date as it is
// typed.
type personFormModel struct {
	inputs   [fieldCount]textinput.Model
	focus    int
	index    int
	existing roster.Person
	now      time.Time
	preview  roster.Person
	flash    string
}

// savePersonMsg stores person at index; index -1 appends.
type savePersonMsg struct {
	index  int
	person roster.Person
}

func newPersonFormModel(index int, existing roster.Person, now time.Time) personFormModel {
	var inputs [fieldCount]textinput.Model
	for i := range fieldCount {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = 40
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[fieldName].Placeholder = "Olivia Chen"
	inputs[fieldDOB].Placeholder = "mm/dd/yyyy or yyyy-mm-dd"

	if existing.ID == "" {
		existing.ID = roster.NewID()
	}

	m := personFormModel{inputs: inputs, index: index, existing: existing, now: now}
	m.inputs[fieldName].SetValue(existing.Name)
	m.inputs[fieldDOB].SetValue(existing.DOB)
	m.inputs[m.focus].Focus()
	m.preview = m.resolve()
	return m
}

func (m personFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m personFormModel) Update(msg tea.Msg) (personFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m personFormModel) handleKey(msg tea.KeyMsg) (personFormModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewEditor} }
	}

	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1), textinput.Blink
	case "shift+tab", "up":
		return m.moveFocus(-1), textinput.Blink
	case "ctrl+s":
		return m.submit()
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if m.focus < fieldCount-1 {
			return m.moveFocus(1), textinput.Blink
		}
		return m.submit()
	}

	return m.updateInput(msg)
}

func (m personFormModel) moveFocus(delta int) personFormModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	return m
}

func (m personFormModel) updateInput(msg tea.Msg) (personFormModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.preview = m.resolve()
	return m, cmd
}

// resolve builds the person as currently entered.
func (m personFormModel) resolve() roster.Person {
	p := m.existing
	p.Name = strings.TrimSpace(m.inputs[fieldName].Value())
	p.DOB = strings.TrimSpace(m.inputs[fieldDOB].Value())
	return roster.Resolve(p, m.now)
}

func (m personFormModel) submit() (personFormModel, tea.Cmd) {
	p := m.resolve()
	if p.Name == "" {
		m.flash = "name is required"
		return m, clearFlashAfter()
	}
	if p.DOB == "" {
		m.flash = "date of birth is required"
		return m, clearFlashAfter()
	}

	idx := m.index
	return m, func() tea.Msg { return savePersonMsg{index: idx, person: p} }
}

func (m personFormModel) View() string {
	action := "add person"
	if m.index >= 0 {
		action = "edit person"
	}
	s := fmt.Sprintf("\n  %s\n\n", zstyle.Title.Render(action))

	for i := range fieldCount {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-6s", fieldLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())
	}

	s += "\n  " + previewLine(m.preview) + "\n"

	if m.flash != "" {
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

// previewLine shows the derived age and cohort, or why the date is
// rejected.
func previewLine(p roster.Person) string {
	switch {
	case p.Err != "":
		return zstyle.StatusErr.Render(p.Err)
	case p.Age == nil:
		return zstyle.MutedText.Render(" ")
	}

	s := fmt.Sprintf("%s  age %d", p.DOB, *p.Age)
	if p.Generation != nil {
		s += fmt.Sprintf("  %s (%s)", p.Generation.Nickname, p.Generation.Name)
	}
	return zstyle.StatusOK.Render(s)
}
