package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPasswordViewShowsPrompt(t *testing.T) {
	m := newPasswordModel(false)
	view := m.View()

	if !strings.Contains(view, "master password") {
		t.Error("view should show master password prompt")
	}
	if strings.Contains(view, "create") {
		t.Error("non-first-run view should not contain 'create'")
	}
	if !strings.Contains(view, "zchrono") {
		t.Error("view should show tool name")
	}
}

func TestPasswordFirstRunShowsCreate(t *testing.T) {
	m := newPasswordModel(true)
	if !strings.Contains(m.View(), "create master password") {
		t.Error("first-run view should show 'create master password'")
	}
}

func TestPasswordFirstRunConfirm(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret")
	m, _ = m.Update(enterKey())

	if !m.confirming {
		t.Error("should be in confirming state after first entry")
	}
	if !strings.Contains(m.View(), "confirm password") {
		t.Error("view should show confirm prompt")
	}
}

func TestPasswordFirstRunMismatch(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret1")
	m, _ = m.Update(enterKey())
	m.input.SetValue("secret2")
	m, _ = m.Update(enterKey())

	if !strings.Contains(m.View(), "passwords do not match") {
		t.Error("should show mismatch error")
	}
	if m.confirming {
		t.Error("should reset confirming state")
	}
}

func TestPasswordFirstRunMatch(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret")
	m, _ = m.Update(enterKey())
	m.input.SetValue("secret")
	_, cmd := m.Update(enterKey())

	if cmd == nil {
		t.Fatal("should emit command on matching passwords")
	}
	submit, ok := cmd().(passwordSubmitMsg)
	if !ok {
		t.Fatal("should emit passwordSubmitMsg")
	}
	if submit.password != "secret" {
		t.Errorf("password = %q, want %q", submit.password, "secret")
	}
}

func TestPasswordSubmitEmptyIgnored(t *testing.T) {
	m := newPasswordModel(false)
	_, cmd := m.Update(enterKey())
	if cmd != nil {
		t.Error("empty password should not emit command")
	}
}

func TestPasswordQKeyDoesNotQuit(t *testing.T) {
	m := newPasswordModel(false)

	updated, cmd := m.Update(keyMsg('q'))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("pressing 'q' should not quit the password view")
		}
	}
	if updated.input.Value() != "q" {
		t.Fatalf("input = %q, want %q", updated.input.Value(), "q")
	}
}

func TestPasswordCtrlCQuits(t *testing.T) {
	m := newPasswordModel(false)
	_, cmd := m.Update(specialKey(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should produce QuitMsg")
	}
}

func TestPasswordEscSkipsStore(t *testing.T) {
	m := newPasswordModel(false)
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("esc should emit a command")
	}
	if _, ok := cmd().(skipStoreMsg); !ok {
		t.Fatal("esc should emit skipStoreMsg")
	}
}

func TestPasswordErrMsgClearsInput(t *testing.T) {
	m := newPasswordModel(false)
	m.input.SetValue("wrong")

	m, _ = m.Update(passwordErrMsg{err: errors.New("bad password")})

	if m.input.Value() != "" {
		t.Error("input should be cleared on error")
	}
	if !strings.Contains(m.View(), "bad password") {
		t.Error("should display error message")
	}
}
