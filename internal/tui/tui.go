// Package tui implements the root Bubble Tea model for zchrono.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zchrono/internal/affiliation"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// accent is the highlight color for headers, cursors and the logo.
var accent = zstyle.ZburnAccent

// apiKeyEnv is consulted when no Gemini key is stored.
const apiKeyEnv = "GEMINI_API_KEY"

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewEditor
	viewPersonForm
	viewBulk
	viewGrid
	viewGenerations
	viewAffiliations
	viewGroups
	viewSettings
)

// Options wires the TUI to its environment.
type Options struct {
	Now          func() time.Time
	Getenv       func(string) string
	NewGenerator func(context.Context, affiliation.Config) (affiliation.Generator, error)
}

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	firstRun bool
	opts     Options

	store   *zstore.Store
	groups  *zstore.Collection[roster.Group]
	configs *zstore.Collection[configEnvelope]

	// the group being worked on; group.ID is empty until saved
	group  roster.Group
	people []roster.Person

	gemini GeminiSettings
	share  ShareSettings

	active       viewID
	password     passwordModel
	menu         menuModel
	editor       editorModel
	personForm   personFormModel
	bulk         bulkModel
	grid         gridModel
	generations  generationsModel
	affiliations affiliationsModel
	groupList    groupListModel
	settings     settingsModel

	width  int
	height int
}

// New creates the root TUI model, starting at the password prompt with the
// sample group loaded.
func New(version, dataDir string, firstRun bool, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.NewGenerator == nil {
		opts.NewGenerator = func(ctx context.Context, cfg affiliation.Config) (affiliation.Generator, error) {
			return affiliation.NewGemini(ctx, cfg)
		}
	}

	return Model{
		version:  version,
		dataDir:  dataDir,
		firstRun: firstRun,
		opts:     opts,
		people:   roster.ResolveAll(roster.Defaults(), opts.Now()),
		active:   viewPassword,
		password: newPasswordModel(firstRun),
	}
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.width = msg.Width
		m.generations.width = msg.Width
		m.affiliations.width = msg.Width
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case skipStoreMsg:
		return m.navigate(viewMenu)

	case navigateMsg:
		return m.navigate(msg.view)

	case editPersonMsg:
		return m.editPerson(msg.index)

	case savePersonMsg:
		return m.handleSavePerson(msg.index, msg.person)

	case deletePersonMsg:
		return m.handleDeletePerson(msg.index)

	case clearPeopleMsg:
		m.group = roster.Group{}
		m.people = nil
		return m.navigate(viewEditor)

	case bulkApplyMsg:
		m.people = roster.Merge(m.people, roster.ResolveAll(msg.people, m.opts.Now()), msg.appendMode)
		return m.navigate(viewEditor)

	case saveGroupMsg:
		return m.handleSaveGroup(msg.name)

	case loadGroupMsg:
		m.group = msg.group
		m.people = roster.ResolveAll(msg.group.People, m.opts.Now())
		return m.navigate(viewEditor)

	case deleteGroupMsg:
		return m.handleDeleteGroup(msg.id)

	case saveSettingsMsg:
		return m.handleSaveSettings(msg.gemini, msg.share)

	case runAffiliationsMsg:
		return m.startAffiliations()
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	switch m.active {
	case viewPassword:
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewEditor:
		content = m.editor.View()
	case viewPersonForm:
		content = m.personForm.View()
	case viewBulk:
		content = m.bulk.View()
	case viewGrid:
		content = m.grid.View()
	case viewGenerations:
		content = m.generations.View()
	case viewAffiliations:
		content = m.affiliations.View()
	case viewGroups:
		content = m.groupList.View()
	case viewSettings:
		content = m.settings.View()
	}

	header := zstyle.RenderHeader("zchrono", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewEditor:
		return "Group"
	case viewPersonForm:
		return "Person"
	case viewBulk:
		return "Bulk Input"
	case viewGrid:
		return "Age Grid"
	case viewGenerations:
		return "Generations"
	case viewAffiliations:
		return "Affiliations"
	case viewGroups:
		return "Saved Groups"
	case viewSettings:
		return "Settings"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewEditor:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "a", Desc: "add"},
			{Key: "enter", Desc: "edit"},
			{Key: "d", Desc: "delete"},
			{Key: "b", Desc: "bulk"},
			{Key: "s", Desc: "save"},
			{Key: "n", Desc: "new"},
			{Key: "esc", Desc: "back"},
		}
	case viewPersonForm:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewBulk:
		return []zstyle.HelpPair{
			{Key: "ctrl+s", Desc: "apply"},
			{Key: "ctrl+t", Desc: "append/replace"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewGrid:
		return []zstyle.HelpPair{
			{Key: "g", Desc: "by generation"},
			{Key: "r", Desc: "reverse"},
			{Key: "c", Desc: "copy link"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewGenerations:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "cohorts/sources"},
			{Key: "s", Desc: "sort"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewAffiliations:
		return []zstyle.HelpPair{
			{Key: "r", Desc: "run again"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewGroups:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "load"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewSettings:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "esc", Desc: "back"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewEditor:
		m.editor, cmd = m.editor.Update(msg)
	case viewPersonForm:
		m.personForm, cmd = m.personForm.Update(msg)
	case viewBulk:
		m.bulk, cmd = m.bulk.Update(msg)
	case viewGrid:
		m.grid, cmd = m.grid.Update(msg)
	case viewGenerations:
		m.generations, cmd = m.generations.Update(msg)
	case viewAffiliations:
		m.affiliations, cmd = m.affiliations.Update(msg)
	case viewGroups:
		m.groupList, cmd = m.groupList.Update(msg)
	case viewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{
			err: fmt.Errorf("create data dir: %w", err),
		})
		return m, nil
	}

	return m.attachStore(zfilesystem.NewOSFileSystem(m.dataDir), password)
}

// attachStore opens the store on fsys and its collections, then moves on to
// the menu.
func (m Model) attachStore(fsys zfilesystem.ReadWriteFileFS, password string) (tea.Model, tea.Cmd) {
	s, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	groups, err := zstore.NewCollection[roster.Group](s, "groups")
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	configs, err := zstore.NewCollection[configEnvelope](s, "config")
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = s
	m.groups = groups
	m.configs = configs
	m.gemini = loadConfig[GeminiSettings](configs, configGemini)
	m.share = loadConfig[ShareSettings](configs, configShare)
	return m.navigate(viewMenu)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, m.group.Name, m.people, m.store != nil)
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewEditor:
		m.editor = newEditorModel(m.group.Name, m.people, m.store != nil)
		m.active = viewEditor
		return m, tea.ClearScreen

	case viewBulk:
		m.bulk = newBulkModel()
		m.active = viewBulk
		return m, tea.Batch(m.bulk.Init(), tea.ClearScreen)

	case viewGrid:
		o := m.grid.ordering
		m.grid = newGridModel(m.people, o, m.share)
		m.grid.width = m.width
		m.active = viewGrid
		return m, tea.ClearScreen

	case viewGenerations:
		g := newGenerationsModel()
		g.width = m.width
		m.generations = g
		m.active = viewGenerations
		return m, tea.ClearScreen

	case viewAffiliations:
		return m.startAffiliations()

	case viewGroups:
		return m.loadGroups()

	case viewSettings:
		m.settings = newSettingsModel(m.gemini, m.share, m.opts.Getenv(apiKeyEnv) != "")
		m.active = viewSettings
		return m, tea.Batch(m.settings.Init(), tea.ClearScreen)
	}

	return m, nil
}

func (m Model) editPerson(index int) (tea.Model, tea.Cmd) {
	var p roster.Person
	if index >= 0 && index < len(m.people) {
		p = m.people[index]
	} else {
		index = -1
	}
	m.personForm = newPersonFormModel(index, p, m.opts.Now())
	m.active = viewPersonForm
	return m, m.personForm.Init()
}

func (m Model) handleSavePerson(index int, p roster.Person) (tea.Model, tea.Cmd) {
	p = roster.Resolve(p, m.opts.Now())

	people := make([]roster.Person, len(m.people))
	copy(people, m.people)
	if index >= 0 && index < len(people) {
		people[index] = p
	} else {
		people = append(people, p)
	}
	m.people = people
	return m.navigate(viewEditor)
}

func (m Model) handleDeletePerson(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(m.people) {
		return m, nil
	}
	people := make([]roster.Person, 0, len(m.people)-1)
	people = append(people, m.people[:index]...)
	people = append(people, m.people[index+1:]...)
	m.people = people

	res, cmd := m.navigate(viewEditor)
	em := res.(Model)
	em.editor.cursor = min(index, max(len(people)-1, 0))
	return em, cmd
}

func (m Model) handleSaveGroup(name string) (tea.Model, tea.Cmd) {
	if m.groups == nil {
		m.editor.flash = "store is locked"
		return m, clearFlashAfter()
	}

	now := m.opts.Now()
	g := m.group
	if g.ID == "" {
		g = roster.NewGroup(name, m.people, now)
	} else {
		g.Name = name
		g.People = m.people
		g.UpdatedAt = now
	}

	if err := m.groups.Put(g.ID, g); err != nil {
		slog.Error("save group", "err", err)
		m.editor.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.group = g
	m.editor.name = g.Name
	m.editor.flash = "saved"
	return m, clearFlashAfter()
}

func (m Model) loadGroups() (tea.Model, tea.Cmd) {
	if m.groups == nil {
		m.groupList = newGroupListModel(nil)
		m.groupList.flash = "store is locked"
		m.active = viewGroups
		return m, clearFlashAfter()
	}

	groups, err := m.groups.List()
	if err != nil {
		m.groupList = newGroupListModel(nil)
		m.groupList.flash = "load: " + err.Error()
		m.active = viewGroups
		return m, clearFlashAfter()
	}

	// zstore.List does not guarantee order
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].UpdatedAt.After(groups[j].UpdatedAt)
	})

	m.groupList = newGroupListModel(groups)
	m.active = viewGroups
	return m, tea.ClearScreen
}

func (m Model) handleDeleteGroup(id string) (tea.Model, tea.Cmd) {
	if m.groups == nil {
		return m, nil
	}

	if err := m.groups.Delete(id); err != nil {
		m.groupList.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	if m.group.ID == id {
		// the working copy survives as an unsaved group
		m.group.ID = ""
	}

	cursor := m.groupList.cursor
	res, cmd := m.loadGroups()
	rm := res.(Model)
	rm.groupList.cursor = min(cursor, max(len(rm.groupList.groups)-1, 0))
	return rm, cmd
}

func (m Model) handleSaveSettings(gs GeminiSettings, ss ShareSettings) (tea.Model, tea.Cmd) {
	if m.configs == nil {
		m.gemini = gs
		m.share = ss
		m.settings.current = gs
		m.settings.flash = "store is locked: saved for this session"
		return m, clearFlashAfter()
	}

	if err := saveConfig(m.configs, configGemini, gs); err != nil {
		m.settings.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}
	if err := saveConfig(m.configs, configShare, ss); err != nil {
		m.settings.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.gemini = gs
	m.share = ss
	m.settings.current = gs
	m.settings.flash = "saved"
	return m, clearFlashAfter()
}

// startAffiliations switches to the affiliations view and queries the
// model in the background.
func (m Model) startAffiliations() (tea.Model, tea.Cmd) {
	m.affiliations = newAffiliationsModel(len(m.validDates()))
	m.affiliations.width = m.width
	m.active = viewAffiliations
	return m, tea.Batch(tea.ClearScreen, m.affiliations.Init(), m.affiliationQuery())
}

// affiliationQuery returns a command that runs the analysis for the valid
// dates of birth in the working group.
func (m Model) affiliationQuery() tea.Cmd {
	dobs := m.validDates()
	cfg := m.gemini.AffiliationConfig(m.opts.Getenv(apiKeyEnv))
	newGen := m.opts.NewGenerator
	return func() tea.Msg {
		ctx := context.Background()
		gen, err := newGen(ctx, cfg)
		if err != nil {
			return affiliationResultMsg{err: err}
		}
		text, err := affiliation.NewFinder(gen).Find(ctx, dobs)
		return affiliationResultMsg{text: text, err: err}
	}
}

func (m Model) validDates() []string {
	var dobs []string
	for _, p := range m.people {
		if p.Valid() {
			dobs = append(dobs, p.DOB)
		}
	}
	return dobs
}

// People returns the working group.
func (m Model) People() []roster.Person { return m.people }

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
