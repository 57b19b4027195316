package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// passwordModel unlocks the group store. On first run the password is
// entered twice.
type passwordModel struct {
	input      textinput.Model
	firstRun   bool
	confirming bool
	firstPass  string
	errMsg     string
}

// passwordSubmitMsg carries the password to the root model.
type passwordSubmitMsg struct {
	password string
}

// passwordErrMsg reports a failed unlock.
type passwordErrMsg struct {
	err error
}

func newPasswordModel(firstRun bool) passwordModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 40

	return passwordModel{input: ti, firstRun: firstRun}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc {
			// skip unlocking; saved groups and settings stay unavailable
			return m, func() tea.Msg { return skipStoreMsg{} }
		}
		if key.Matches(msg, zstyle.KeyEnter) {
			return m.submit()
		}

	case passwordErrMsg:
		m.errMsg = msg.err.Error()
		m.input.SetValue("")
		m.confirming = false
		m.firstPass = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m passwordModel) submit() (passwordModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		return m, nil
	}

	if m.firstRun && !m.confirming {
		m.firstPass = val
		m.confirming = true
		m.input.SetValue("")
		m.errMsg = ""
		return m, nil
	}

	if m.firstRun && val != m.firstPass {
		m.errMsg = "passwords do not match"
		m.confirming = false
		m.firstPass = ""
		m.input.SetValue("")
		return m, nil
	}

	m.errMsg = ""
	return m, func() tea.Msg { return passwordSubmitMsg{password: val} }
}

func (m passwordModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)))
	name := indent.Render(zstyle.MutedText.Render("zchrono"))

	prompt := "master password:"
	switch {
	case m.firstRun && m.confirming:
		prompt = "confirm password:"
	case m.firstRun:
		prompt = "create master password:"
	}

	s := fmt.Sprintf("\n%s\n%s\n\n  %s\n  %s\n", logo, name, prompt, m.input.View())
	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg)
	}
	s += "\n  " + zstyle.MutedText.Render("esc continue without saved groups") + "\n"
	return s
}
