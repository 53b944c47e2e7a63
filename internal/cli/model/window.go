// Package model provides the Bubble Tea models of the terminal window.
package model

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// WindowActions receives what the user asks for in the window.
// Implementations must not block; they post work to the main loop.
type WindowActions interface {
	SetLevel(level entity.InhibitLevel)
	Toggle(target entity.InhibitLevel)
	RefreshShortcuts()
	ConfigureShortcuts()
	Quit()
}

// LevelChangedMsg tells the window what is inhibited now.
type LevelChangedMsg struct {
	Level entity.InhibitLevel
}

// ShortcutsMsg updates the global shortcut section of the window.
type ShortcutsMsg struct {
	// Available is false while no shortcut session is bound.
	Available    bool
	CanConfigure bool
	Shortcuts    []entity.BoundShortcut
}

// StatusMsg shows a transient status line. A non-nil Err is shown as an error.
type StatusMsg struct {
	Text string
	Err  error
}

var errConfigureUnavailable = errors.New("the desktop cannot configure global shortcuts")

// WindowModel presents the three inhibit levels and the global shortcuts.
type WindowModel struct {
	theme   *styles.Theme
	keys    styles.WindowKeyMap
	help    help.Model
	actions WindowActions
	focused *atomic.Bool

	level  entity.InhibitLevel
	cursor int

	shortcutsAvailable bool
	canConfigure       bool
	shortcuts          []entity.BoundShortcut

	status string
	err    error
	width  int

	// quit is set when the user quit the application, not just the window.
	quit bool
}

// NewWindowModel creates a window model showing level. focused tracks the
// terminal focus and may be shared with other goroutines.
func NewWindowModel(
	theme *styles.Theme,
	actions WindowActions,
	focused *atomic.Bool,
	level entity.InhibitLevel,
) WindowModel {
	if focused == nil {
		focused = new(atomic.Bool)
	}
	return WindowModel{
		theme:   theme,
		keys:    styles.DefaultWindowKeyMap(),
		help:    styles.NewStyledHelp(theme),
		actions: actions,
		focused: focused,
		level:   level,
		cursor:  int(level),
	}
}

// Level returns the level the window currently shows.
func (m WindowModel) Level() entity.InhibitLevel {
	return m.level
}

// QuitRequested reports whether the user asked to quit the application.
func (m WindowModel) QuitRequested() bool {
	return m.quit
}

// Init implements tea.Model.
func (m WindowModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WindowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.FocusMsg:
		m.focused.Store(true)
		return m, nil

	case tea.BlurMsg:
		m.focused.Store(false)
		return m, nil

	case LevelChangedMsg:
		m.level = msg.Level
		m.cursor = int(msg.Level)
		return m, nil

	case ShortcutsMsg:
		m.shortcutsAvailable = msg.Available
		m.canConfigure = msg.CanConfigure
		m.shortcuts = msg.Shortcuts
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m WindowModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	levels := entity.InhibitLevels()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit = true
		m.actions.Quit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Close):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(levels)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		m.requestLevel(levels[m.cursor])

	case key.Matches(msg, m.keys.None):
		m.cursor = int(entity.InhibitNone)
		m.requestLevel(entity.InhibitNone)

	case key.Matches(msg, m.keys.Suspend):
		m.cursor = int(entity.InhibitSuspend)
		m.requestLevel(entity.InhibitSuspend)

	case key.Matches(msg, m.keys.SuspendAndIdle):
		m.cursor = int(entity.InhibitSuspendAndIdle)
		m.requestLevel(entity.InhibitSuspendAndIdle)

	case key.Matches(msg, m.keys.ToggleSuspend):
		m.clearStatus()
		m.actions.Toggle(entity.InhibitSuspend)

	case key.Matches(msg, m.keys.ToggleSuspendAndIdle):
		m.clearStatus()
		m.actions.Toggle(entity.InhibitSuspendAndIdle)

	case key.Matches(msg, m.keys.Shortcuts):
		m.status = "Refreshing global shortcuts..."
		m.err = nil
		m.actions.RefreshShortcuts()

	case key.Matches(msg, m.keys.Configure):
		if !m.canConfigure {
			m.status = ""
			m.err = errConfigureUnavailable
			return m, nil
		}
		m.clearStatus()
		m.actions.ConfigureShortcuts()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *WindowModel) requestLevel(level entity.InhibitLevel) {
	m.clearStatus()
	if level == m.level {
		return
	}
	m.actions.SetLevel(level)
}

func (m *WindowModel) clearStatus() {
	m.status = ""
	m.err = nil
}

// View implements tea.Model.
func (m WindowModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("Keep Me Awake"))
	b.WriteString("  ")
	b.WriteString(t.LevelBadge(m.level))
	b.WriteString("\n\n")

	b.WriteString(t.Subtitle.Render("Inhibit"))
	b.WriteString("\n")
	for i, level := range entity.InhibitLevels() {
		b.WriteString(m.renderLevel(i, level))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(t.Subtitle.Render("Global shortcuts"))
	b.WriteString("\n")
	b.WriteString(m.renderShortcuts())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s %v", styles.IconX, m.err)))
		b.WriteString("\n\n")
	} else if m.status != "" {
		b.WriteString(t.Subtle.Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m WindowModel) renderLevel(i int, level entity.InhibitLevel) string {
	t := m.theme
	marker := "( )"
	if level == m.level {
		marker = "(•)"
	}
	line := fmt.Sprintf("%s %s", marker, level.Label())
	if i == m.cursor {
		return t.ListItemSelected.Render(styles.IconCursor + " " + line)
	}
	return t.ListItem.Render("  " + line)
}

func (m WindowModel) renderShortcuts() string {
	t := m.theme
	if !m.shortcutsAvailable {
		return t.ListItemDesc.Render("Not available on this desktop.") + "\n"
	}
	if len(m.shortcuts) == 0 {
		return t.ListItemDesc.Render("No shortcuts bound.") + "\n"
	}

	var b strings.Builder
	for _, s := range m.shortcuts {
		trigger := s.TriggerDescription
		if trigger == "" {
			trigger = "unassigned"
		}
		b.WriteString(t.ListItem.Render(s.Description))
		b.WriteString(" ")
		b.WriteString(t.BadgeMuted.Render(trigger))
		b.WriteString("\n")
	}
	return b.String()
}
