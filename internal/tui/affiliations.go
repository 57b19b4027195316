package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/affiliation"
)

// affiliationsModel waits for and displays the model's affiliation summary.
type affiliationsModel struct {
	spinner spinner.Model
	count   int
	loading bool
	result  string
	errMsg  string
	width   int
}

// runAffiliationsMsg asks the root model to query again.
type runAffiliationsMsg struct{}

// affiliationResultMsg carries the finished query.
type affiliationResultMsg struct {
	text string
	err  error
}

func newAffiliationsModel(count int) affiliationsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accent)
	return affiliationsModel{spinner: sp, count: count, loading: true}
}

func (m affiliationsModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m affiliationsModel) Update(msg tea.Msg) (affiliationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}
		if msg.String() == "r" && !m.loading {
			return m, func() tea.Msg { return runAffiliationsMsg{} }
		}

	case affiliationResultMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.result = renderMarkdown(msg.text, m.width)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m affiliationsModel) View() string {
	s := "\n"
	switch {
	case m.loading:
		s += "  " + m.spinner.View() + " " + zstyle.MutedText.Render(fmt.Sprintf("analyzing %d birth dates...", m.count)) + "\n"
	case m.errMsg != "":
		s += "  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	default:
		s += m.result + "\n"
	}
	return s
}

// errorText turns query failures into something actionable.
func errorText(err error) string {
	switch {
	case errors.Is(err, affiliation.ErrNoDates):
		return "add people with valid dates of birth first"
	case errors.Is(err, affiliation.ErrNotConfigured):
		return "set a Gemini API key in settings or $" + apiKeyEnv
	}
	slog.Error("find affiliations", "err", err)
	return "An error occurred while finding affiliations."
}

// renderMarkdown renders text as terminal markdown, falling back to the raw
// text when rendering fails.
func renderMarkdown(text string, width int) string {
	wrap := 80
	if width > 8 && width-4 < wrap {
		wrap = width - 4
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return indent(text)
	}
	out, err := r.Render(text)
	if err != nil {
		return indent(text)
	}
	return strings.TrimRight(out, "\n")
}
