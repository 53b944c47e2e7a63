package entity

// ShortcutID identifies a global shortcut within a session.
// IDs are chosen by the application and stay stable across runs.
type ShortcutID string

const (
	// ShortcutToggleSuspend toggles inhibiting suspend.
	ShortcutToggleSuspend ShortcutID = "toggle-inhibit-suspend"
	// ShortcutToggleSuspendAndIdle toggles inhibiting suspend and idle.
	ShortcutToggleSuspendAndIdle ShortcutID = "toggle-inhibit-suspend-and-idle"
)

// Shortcut is a global shortcut declared by the application.
type Shortcut struct {
	ID          ShortcutID
	Description string
	// PreferredTrigger is an accelerator such as "<Super>F11".
	// It is advisory only; the service may assign a different trigger.
	PreferredTrigger string
}

// BoundShortcut is a shortcut as reported back by the activation service.
type BoundShortcut struct {
	ID                 ShortcutID
	Description        string
	TriggerDescription string
}

// Target returns the inhibit level a toggle shortcut switches to.
func (id ShortcutID) Target() (InhibitLevel, bool) {
	switch id {
	case ShortcutToggleSuspend:
		return InhibitSuspend, true
	case ShortcutToggleSuspendAndIdle:
		return InhibitSuspendAndIdle, true
	default:
		return InhibitNone, false
	}
}

// DeclaredShortcuts returns the application's shortcut set using the given
// preferred triggers. Empty triggers leave the choice to the service.
func DeclaredShortcuts(toggleSuspend, toggleSuspendAndIdle string) []Shortcut {
	return []Shortcut{
		{
			ID:               ShortcutToggleSuspend,
			Description:      "Toggle inhibit suspend",
			PreferredTrigger: toggleSuspend,
		},
		{
			ID:               ShortcutToggleSuspendAndIdle,
			Description:      "Toggle inhibit suspend and idle",
			PreferredTrigger: toggleSuspendAndIdle,
		},
	}
}
