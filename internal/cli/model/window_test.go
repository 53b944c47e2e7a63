package model

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

type recordedActions struct {
	levels     []entity.InhibitLevel
	toggles    []entity.InhibitLevel
	refreshes  int
	configures int
	quits      int
}

func (a *recordedActions) SetLevel(level entity.InhibitLevel) { a.levels = append(a.levels, level) }
func (a *recordedActions) Toggle(target entity.InhibitLevel)  { a.toggles = append(a.toggles, target) }
func (a *recordedActions) RefreshShortcuts()                  { a.refreshes++ }
func (a *recordedActions) ConfigureShortcuts()                { a.configures++ }
func (a *recordedActions) Quit()                              { a.quits++ }

func newTestModel(level entity.InhibitLevel) (WindowModel, *recordedActions) {
	actions := &recordedActions{}
	return NewWindowModel(styles.NewTheme(""), actions, nil, level), actions
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m WindowModel, msg tea.Msg) (WindowModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(WindowModel)
	require.True(t, ok)
	return wm, cmd
}

func TestWindowModel_NumberKeysRequestLevel(t *testing.T) {
	m, actions := newTestModel(entity.InhibitNone)

	m, _ = update(t, m, runes("3"))
	m, _ = update(t, m, runes("2"))

	assert.Equal(t, []entity.InhibitLevel{entity.InhibitSuspendAndIdle, entity.InhibitSuspend}, actions.levels)
	// The shown level only follows the controller.
	assert.Equal(t, entity.InhibitNone, m.Level())
}

func TestWindowModel_SelectingCurrentLevelIsNoop(t *testing.T) {
	m, actions := newTestModel(entity.InhibitSuspend)

	_, _ = update(t, m, runes("2"))

	assert.Empty(t, actions.levels)
}

func TestWindowModel_CursorAndEnter(t *testing.T) {
	m, actions := newTestModel(entity.InhibitNone)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, int(entity.InhibitSuspendAndIdle), m.cursor, "cursor stops at the last level")

	m, _ = update(t, m, runes("k"))
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []entity.InhibitLevel{entity.InhibitSuspend}, actions.levels)
}

func TestWindowModel_ToggleKeys(t *testing.T) {
	m, actions := newTestModel(entity.InhibitNone)

	m, _ = update(t, m, runes("s"))
	_, _ = update(t, m, runes("i"))

	assert.Equal(t, []entity.InhibitLevel{entity.InhibitSuspend, entity.InhibitSuspendAndIdle}, actions.toggles)
}

func TestWindowModel_LevelChangedMovesCursor(t *testing.T) {
	m, _ := newTestModel(entity.InhibitNone)

	m, _ = update(t, m, LevelChangedMsg{Level: entity.InhibitSuspendAndIdle})

	assert.Equal(t, entity.InhibitSuspendAndIdle, m.Level())
	assert.Equal(t, int(entity.InhibitSuspendAndIdle), m.cursor)
	assert.Contains(t, m.View(), "suspend-and-idle")
}

func TestWindowModel_ConfigureRequiresSupport(t *testing.T) {
	m, actions := newTestModel(entity.InhibitNone)

	m, _ = update(t, m, runes("c"))
	assert.Equal(t, 0, actions.configures)
	assert.ErrorIs(t, m.err, errConfigureUnavailable)

	m, _ = update(t, m, ShortcutsMsg{Available: true, CanConfigure: true})
	m, _ = update(t, m, runes("c"))
	assert.Equal(t, 1, actions.configures)
	assert.NoError(t, m.err)
}

func TestWindowModel_RefreshShortcuts(t *testing.T) {
	m, actions := newTestModel(entity.InhibitNone)

	m, _ = update(t, m, runes("l"))
	assert.Equal(t, 1, actions.refreshes)

	m, _ = update(t, m, ShortcutsMsg{
		Available: true,
		Shortcuts: []entity.BoundShortcut{
			{ID: entity.ShortcutToggleSuspend, Description: "Toggle inhibit suspend", TriggerDescription: "Super+F11"},
		},
	})
	view := m.View()
	assert.Contains(t, view, "Toggle inhibit suspend")
	assert.Contains(t, view, "Super+F11")
}

func TestWindowModel_StatusError(t *testing.T) {
	m, _ := newTestModel(entity.InhibitNone)

	m, _ = update(t, m, StatusMsg{Err: errors.New("inhibition unavailable")})

	assert.Contains(t, m.View(), "inhibition unavailable")
}

func TestWindowModel_CloseDoesNotQuitApplication(t *testing.T) {
	m, actions := newTestModel(entity.InhibitNone)

	m, cmd := update(t, m, runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.QuitRequested())
	assert.Equal(t, 0, actions.quits)
}

func TestWindowModel_QuitApplication(t *testing.T) {
	m, actions := newTestModel(entity.InhibitNone)

	m, cmd := update(t, m, runes("Q"))

	require.NotNil(t, cmd)
	assert.True(t, m.QuitRequested())
	assert.Equal(t, 1, actions.quits)
}

func TestWindowModel_FocusTracking(t *testing.T) {
	focused := new(atomic.Bool)
	m := NewWindowModel(styles.NewTheme(""), &recordedActions{}, focused, entity.InhibitNone)

	m, _ = update(t, m, tea.FocusMsg{})
	assert.True(t, focused.Load())

	_, _ = update(t, m, tea.BlurMsg{})
	assert.False(t, focused.Load())
}

func TestWindow_IdentifiersOnlyWhileOpenAndFocused(t *testing.T) {
	w := NewWindow(styles.NewTheme(""), "x11:1a", "token")

	assert.Empty(t, w.ParentWindow())
	_, ok := w.ActivationToken()
	assert.False(t, ok)

	w.open.Store(true)
	assert.Equal(t, "x11:1a", w.ParentWindow())
	_, ok = w.ActivationToken()
	assert.False(t, ok)

	w.focused.Store(true)
	token, ok := w.ActivationToken()
	assert.True(t, ok)
	assert.Equal(t, "token", token)
}

func TestWindow_SendQueuesUntilClosed(t *testing.T) {
	w := NewWindow(styles.NewTheme(""), "", "")

	w.Send(LevelChangedMsg{Level: entity.InhibitSuspend})
	assert.Len(t, w.inbox.take(), 1, "queued until the window is shown")

	w.closed.Store(true)
	w.Send(LevelChangedMsg{Level: entity.InhibitNone})
	assert.Empty(t, w.inbox.take())
}

func TestMailbox_PumpPreservesOrder(t *testing.T) {
	box := newMailbox()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []tea.Msg
	done := make(chan struct{})
	go func() {
		defer close(done)
		box.pump(ctx, func(msg tea.Msg) {
			mu.Lock()
			got = append(got, msg)
			mu.Unlock()
		})
	}()

	for i := 0; i < 50; i++ {
		box.put(i)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 50
	}, time.Second, time.Millisecond)

	cancel()
	<-done

	for i, msg := range got {
		assert.Equal(t, i, msg)
	}
}
