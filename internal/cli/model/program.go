package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// Window runs WindowModel in the terminal and identifies it to desktop
// services. It is safe for concurrent use.
type Window struct {
	theme  *styles.Theme
	parent string
	token  string
	opts   []tea.ProgramOption

	focused   atomic.Bool
	open      atomic.Bool
	closed    atomic.Bool
	inbox     *mailbox
	ready     chan struct{}
	readyOnce sync.Once
}

// NewWindow creates a window. parent is the XDG identifier of the terminal
// window and token the activation token handed to the process; both may be
// empty.
func NewWindow(theme *styles.Theme, parent, token string, opts ...tea.ProgramOption) *Window {
	return &Window{
		theme:  theme,
		parent: parent,
		token:  token,
		opts:   opts,
		inbox:  newMailbox(),
		ready:  make(chan struct{}),
	}
}

// ParentWindow implements port.WindowIdentifier.
func (w *Window) ParentWindow() string {
	if !w.open.Load() {
		return ""
	}
	return w.parent
}

// ActivationToken implements port.WindowIdentifier. It only hands out a
// token while the terminal has focus.
func (w *Window) ActivationToken() (string, bool) {
	if !w.open.Load() || !w.focused.Load() {
		return "", false
	}
	return w.token, true
}

// Ready is closed once the window has been shown.
func (w *Window) Ready() <-chan struct{} {
	return w.ready
}

// Send delivers msg to the window without blocking. Messages sent before
// the window is shown are queued; messages sent after it closed are dropped.
func (w *Window) Send(msg tea.Msg) {
	if w.closed.Load() {
		return
	}
	w.inbox.put(msg)
}

// Run shows the window until the user closes it or ctx is done. User
// requests go to actions. It returns whether the user asked to quit the
// whole application.
func (w *Window) Run(ctx context.Context, actions WindowActions, level entity.InhibitLevel) (bool, error) {
	m := NewWindowModel(w.theme, actions, &w.focused, level)

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	}, w.opts...)
	p := tea.NewProgram(m, opts...)

	pumpCtx, stopPump := context.WithCancel(ctx)
	var pump sync.WaitGroup
	pump.Add(1)
	go func() {
		defer pump.Done()
		w.inbox.pump(pumpCtx, p.Send)
	}()

	// Focus is reported on change only; assume focus until told otherwise
	// since the window was just started from this terminal.
	w.focused.Store(true)
	w.open.Store(true)
	w.readyOnce.Do(func() { close(w.ready) })
	final, err := p.Run()
	w.closed.Store(true)
	w.open.Store(false)
	w.focused.Store(false)

	stopPump()
	pump.Wait()
	w.inbox.drain()

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("run window: %w", err)
	}
	if fm, ok := final.(WindowModel); ok {
		return fm.QuitRequested(), nil
	}
	return false, nil
}

// mailbox is an unbounded FIFO feeding a tea.Program, whose Send blocks
// until the program reads the message.
type mailbox struct {
	mu    sync.Mutex
	queue []tea.Msg
	wake  chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{wake: make(chan struct{}, 1)}
}

func (b *mailbox) put(msg tea.Msg) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *mailbox) take() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.queue
	b.queue = nil
	return q
}

func (b *mailbox) drain() {
	b.take()
}

// pump forwards queued messages in order until ctx is done.
func (b *mailbox) pump(ctx context.Context, send func(tea.Msg)) {
	for {
		for _, msg := range b.take() {
			if ctx.Err() != nil {
				return
			}
			send(msg)
		}
		select {
		case <-ctx.Done():
			return
		case <-b.wake:
		}
	}
}
