package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/affiliation"
)

type settingsField int

const (
	setAPIKey settingsField = iota
	setModel
	setShareBase
	setFieldCount
)

var settingsLabels = [setFieldCount]string{
	"gemini key",
	"model",
	"share url",
}

// saveSettingsMsg requests saving settings.
type saveSettingsMsg struct {
	gemini GeminiSettings
	share  ShareSettings
}

// settingsModel is the form for the Gemini credentials and share link base.
type settingsModel struct {
	inputs  []textinput.Model
	focus   int
	current GeminiSettings
	envKey  bool
	flash   string
}

func newSettingsModel(gs GeminiSettings, ss ShareSettings, envKey bool) settingsModel {
	inputs := make([]textinput.Model, setFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 50
		inputs[i] = ti
	}

	inputs[setAPIKey].Placeholder = "api key"
	inputs[setAPIKey].SetValue(gs.APIKey)
	inputs[setAPIKey].EchoMode = textinput.EchoPassword
	inputs[setAPIKey].EchoCharacter = '*'

	inputs[setModel].Placeholder = affiliation.DefaultModel
	inputs[setModel].SetValue(gs.Model)

	inputs[setShareBase].Placeholder = "https://example.com/grid (blank copies the token)"
	inputs[setShareBase].SetValue(ss.BaseURL)

	inputs[0].Focus()

	return settingsModel{inputs: inputs, current: gs, envKey: envKey}
}

func (m settingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
			return m.moveFocus(1), nil
		}

		if msg.Type == tea.KeyUp || msg.Type == tea.KeyShiftTab {
			return m.moveFocus(-1), nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			// enter on last field saves; otherwise advance
			if m.focus == int(setFieldCount)-1 {
				return m.save()
			}
			return m.moveFocus(1), nil
		}

		if msg.Type == tea.KeyCtrlS {
			return m.save()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) moveFocus(delta int) settingsModel {
	n := int(setFieldCount)
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + n) % n
	m.inputs[m.focus].Focus()
	return m
}

func (m settingsModel) save() (settingsModel, tea.Cmd) {
	gs := GeminiSettings{
		APIKey: strings.TrimSpace(m.inputs[setAPIKey].Value()),
		Model:  strings.TrimSpace(m.inputs[setModel].Value()),
	}
	ss := ShareSettings{BaseURL: strings.TrimSpace(m.inputs[setShareBase].Value())}
	return m, func() tea.Msg { return saveSettingsMsg{gemini: gs, share: ss} }
}

func (m settingsModel) status() string {
	switch {
	case m.current.Configured():
		return zstyle.StatusOK.Render("configured")
	case m.envKey:
		return zstyle.StatusOK.Render("using $" + apiKeyEnv)
	}
	return zstyle.StatusErr.Render("not configured")
}

func (m settingsModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n  " + zstyle.MutedText.Render("gemini") + " " + m.status() + "\n\n"

	for i, input := range m.inputs {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-12s", settingsLabels[i]))
		if i == m.focus {
			s += accentStyle.Render("▸") + " " + label + input.View() + "\n"
		} else {
			s += "  " + label + input.View() + "\n"
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
