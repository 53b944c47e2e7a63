package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// WindowKeyMap defines the keybindings of the main window.
type WindowKeyMap struct {
	Up                   key.Binding
	Down                 key.Binding
	Select               key.Binding
	None                 key.Binding
	Suspend              key.Binding
	SuspendAndIdle       key.Binding
	ToggleSuspend        key.Binding
	ToggleSuspendAndIdle key.Binding
	Shortcuts            key.Binding
	Configure            key.Binding
	Help                 key.Binding
	Close                key.Binding
	Quit                 key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k WindowKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Help, k.Close, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k WindowKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.None, k.Suspend, k.SuspendAndIdle},
		{k.ToggleSuspend, k.ToggleSuspendAndIdle},
		{k.Shortcuts, k.Configure},
		{k.Help, k.Close, k.Quit},
	}
}

// DefaultWindowKeyMap returns the default window keybindings.
func DefaultWindowKeyMap() WindowKeyMap {
	return WindowKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "inhibit"),
		),
		None: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "nothing"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "suspend"),
		),
		SuspendAndIdle: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "suspend and idle"),
		),
		ToggleSuspend: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle suspend"),
		),
		ToggleSuspendAndIdle: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle suspend and idle"),
		),
		Shortcuts: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "list shortcuts"),
		),
		Configure: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "configure shortcuts"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "close window"),
		),
		Quit: key.NewBinding(
			key.WithKeys("Q", "ctrl+c"),
			key.WithHelp("Q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
