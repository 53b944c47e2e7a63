package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/cli/model"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// Window is the terminal window as seen by the coordinator.
type Window interface {
	port.WindowIdentifier
	// Run shows the window until it is closed and reports whether the user
	// asked to quit the application.
	Run(ctx context.Context, actions model.WindowActions, level entity.InhibitLevel) (quit bool, err error)
	// Ready is closed once the window has been shown.
	Ready() <-chan struct{}
	// Send delivers a message to the window without blocking.
	Send(msg tea.Msg)
}

// LevelEmitter broadcasts level changes to other processes.
type LevelEmitter interface {
	EmitLevelChanged(level entity.InhibitLevel) error
}

// noWindow identifies no window.
type noWindow struct{}

func (noWindow) ParentWindow() string             { return "" }
func (noWindow) ActivationToken() (string, bool) { return "", false }
