package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zchrono/internal/affiliation"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// config round-trip tests

func openTestStore(t *testing.T) *zstore.Store {
	t.Helper()
	fs := zfilesystem.NewMemFS()
	s, err := zstore.Open(fs, []byte("test"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGeminiSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	col, err := zstore.NewCollection[configEnvelope](s, "config")
	if err != nil {
		t.Fatal(err)
	}

	want := GeminiSettings{APIKey: "key1", Model: "gemini-2.5-pro"}
	if err := saveConfig(col, configGemini, want); err != nil {
		t.Fatal(err)
	}

	got := loadConfig[GeminiSettings](col, configGemini)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	s := openTestStore(t)
	col, err := zstore.NewCollection[configEnvelope](s, "config")
	if err != nil {
		t.Fatal(err)
	}

	if got := loadConfig[ShareSettings](col, configShare); got != (ShareSettings{}) {
		t.Errorf("missing config = %+v, want zero", got)
	}
	if got := loadConfig[ShareSettings](nil, configShare); got != (ShareSettings{}) {
		t.Errorf("nil collection = %+v, want zero", got)
	}
}

func TestSaveConfigNilCollection(t *testing.T) {
	if err := saveConfig(nil, configGemini, GeminiSettings{}); err == nil {
		t.Error("saving without a store should fail")
	}
}

func TestAffiliationConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings GeminiSettings
		env      string
		want     affiliation.Config
	}{
		{
			name:     "stored key wins",
			settings: GeminiSettings{APIKey: "stored", Model: "m"},
			env:      "env",
			want:     affiliation.Config{APIKey: "stored", Model: "m"},
		},
		{
			name: "env fallback and default model",
			env:  "env",
			want: affiliation.Config{APIKey: "env", Model: affiliation.DefaultModel},
		},
		{
			name: "nothing configured",
			want: affiliation.Config{Model: affiliation.DefaultModel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.AffiliationConfig(tt.env); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShareSettingsLink(t *testing.T) {
	people := []roster.Person{roster.NewPerson("A", "01/01/1990")}
	token := roster.EncodeShare(people)

	if got := (ShareSettings{}).Link(people); got != token {
		t.Errorf("no base: got %q, want %q", got, token)
	}

	got := (ShareSettings{BaseURL: " https://example.com/grid "}).Link(people)
	if !strings.HasPrefix(got, "https://example.com/grid?data=") {
		t.Errorf("with base: got %q", got)
	}

	if got := (ShareSettings{BaseURL: "://bad"}).Link(people); got != token {
		t.Errorf("bad base: got %q, want %q", got, token)
	}
}

// settings form tests

func TestSettingsFormSave(t *testing.T) {
	m := newSettingsModel(GeminiSettings{}, ShareSettings{}, false)
	if !strings.Contains(m.View(), "not configured") {
		t.Error("view should show unconfigured status")
	}

	m.inputs[setAPIKey].SetValue(" key ")
	m.inputs[setShareBase].SetValue("https://example.com")

	_, cmd := m.Update(specialKey(tea.KeyCtrlS))
	if cmd == nil {
		t.Fatal("ctrl+s should save")
	}
	msg, ok := cmd().(saveSettingsMsg)
	if !ok {
		t.Fatal("expected saveSettingsMsg")
	}
	if msg.gemini.APIKey != "key" {
		t.Errorf("api key = %q, want %q", msg.gemini.APIKey, "key")
	}
	if msg.share.BaseURL != "https://example.com" {
		t.Errorf("base url = %q", msg.share.BaseURL)
	}
}

func TestSettingsFormFocus(t *testing.T) {
	m := newSettingsModel(GeminiSettings{}, ShareSettings{}, false)

	m, _ = m.Update(specialKey(tea.KeyTab))
	if m.focus != int(setModel) {
		t.Errorf("focus = %d, want %d", m.focus, setModel)
	}

	m, _ = m.Update(enterKey())
	if m.focus != int(setShareBase) {
		t.Errorf("focus = %d, want %d", m.focus, setShareBase)
	}

	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("enter on last field should save")
	}
	if _, ok := cmd().(saveSettingsMsg); !ok {
		t.Error("expected saveSettingsMsg")
	}

	m, _ = m.Update(specialKey(tea.KeyShiftTab))
	if m.focus != int(setModel) {
		t.Errorf("focus = %d, want %d", m.focus, setModel)
	}
}

func TestSettingsStatus(t *testing.T) {
	m := newSettingsModel(GeminiSettings{}, ShareSettings{}, true)
	if !strings.Contains(m.View(), "using $GEMINI_API_KEY") {
		t.Error("view should show env fallback")
	}

	m = newSettingsModel(GeminiSettings{APIKey: "k"}, ShareSettings{}, true)
	if !strings.Contains(m.View(), "configured") {
		t.Error("view should show configured")
	}
}

func TestSettingsQTypes(t *testing.T) {
	m := newSettingsModel(GeminiSettings{}, ShareSettings{}, false)
	m, cmd := m.Update(keyMsg('q'))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q should not quit a form")
		}
	}
	if m.inputs[setAPIKey].Value() != "q" {
		t.Errorf("value = %q, want %q", m.inputs[setAPIKey].Value(), "q")
	}
}
