package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// bulkModel takes one "Name, DOB" per line and replaces or extends the
// group with them.
type bulkModel struct {
	input      textarea.Model
	appendMode bool
	flash      string
}

// bulkApplyMsg carries parsed bulk entries to the root model.
type bulkApplyMsg struct {
	people     []roster.Person
	appendMode bool
}

func newBulkModel() bulkModel {
	ta := textarea.New()
	ta.Placeholder = "Olivia Chen, 03/12/1985\nBenjamin Carter, 1992-07-24"
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(10)
	ta.Focus()
	return bulkModel{input: ta}
}

func (m bulkModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m bulkModel) Update(msg tea.Msg) (bulkModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			return m, func() tea.Msg { return navigateMsg{view: viewEditor} }
		case tea.KeyCtrlT:
			m.appendMode = !m.appendMode
			return m, nil
		case tea.KeyCtrlS:
			return m.apply()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m bulkModel) apply() (bulkModel, tea.Cmd) {
	people, err := roster.ParseBulk(m.input.Value())
	if err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	appendMode := m.appendMode
	return m, func() tea.Msg { return bulkApplyMsg{people: people, appendMode: appendMode} }
}

func (m bulkModel) View() string {
	s := "\n  " + zstyle.MutedText.Render("one person per line: Name, DOB") + "\n\n"
	s += m.input.View() + "\n\n"

	mode := "replace current group"
	if m.appendMode {
		mode = "append to current group"
	}
	s += "  " + zstyle.Highlight.Render(mode) + "\n"

	if m.flash != "" {
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}
	return s
}
