package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/application/port/mocks"
	"github.com/bnema/keepmeawake/internal/application/usecase"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

type activationRecorder struct {
	mu  sync.Mutex
	ids []entity.ShortcutID
	got chan entity.ShortcutID
}

func newActivationRecorder() *activationRecorder {
	return &activationRecorder{got: make(chan entity.ShortcutID, 16)}
}

func (r *activationRecorder) handle(_ context.Context, id entity.ShortcutID) {
	r.mu.Lock()
	r.ids = append(r.ids, id)
	r.mu.Unlock()
	r.got <- id
}

func (r *activationRecorder) wait(t *testing.T, n int) []entity.ShortcutID {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.got:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for activation %d of %d", i+1, n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.ShortcutID(nil), r.ids...)
}

func declared() []entity.Shortcut {
	return entity.DeclaredShortcuts("<Super>i", "<Super><Shift>i")
}

func newSession(portal *fakePortal, keepAlive *fakeKeepAlive, window port.WindowIdentifier, rec *activationRecorder) *usecase.GlobalShortcutSession {
	return usecase.NewGlobalShortcutSession(portal, keepAlive, window, declared(), rec.handle)
}

func TestGlobalShortcutSession_EstablishBindsAndHolds(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	keepAlive := &fakeKeepAlive{}
	s := newSession(portal, keepAlive, fakeWindow{parent: "x11:1a"}, newActivationRecorder())
	defer s.Teardown(ctx)

	require.NoError(t, s.Establish(ctx))

	assert.Equal(t, usecase.ShortcutsBound, s.State())
	assert.Equal(t, uint32(2), s.Version())
	assert.True(t, s.CanConfigure())
	assert.Equal(t, 1, keepAlive.Held())
	assert.Equal(t, []string{"x11:1a"}, portal.bindParents)

	bound := s.BoundShortcuts()
	require.Len(t, bound, 2)
	assert.Equal(t, entity.ShortcutToggleSuspend, bound[0].ID)
	assert.Equal(t, entity.ShortcutToggleSuspendAndIdle, bound[1].ID)
	assert.Equal(t, "Press <Super>i", bound[0].TriggerDescription)
}

func TestGlobalShortcutSession_EstablishTwiceIsNoOp(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	keepAlive := &fakeKeepAlive{}
	s := newSession(portal, keepAlive, fakeWindow{}, newActivationRecorder())
	defer s.Teardown(ctx)

	require.NoError(t, s.Establish(ctx))
	require.NoError(t, s.Establish(ctx))

	assert.Equal(t, 1, portal.sessions)
	assert.Equal(t, 1, keepAlive.Held())
}

func TestGlobalShortcutSession_OldVersionRejectsConfigureLocally(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(1)
	s := newSession(portal, &fakeKeepAlive{}, fakeWindow{focused: true, token: "tok"}, newActivationRecorder())
	defer s.Teardown(ctx)

	require.NoError(t, s.Establish(ctx))
	assert.False(t, s.CanConfigure())

	err := s.Configure(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrConfigureFailed)
	assert.ErrorIs(t, err, usecase.ErrConfigureUnsupported)
	assert.Empty(t, portal.Configures(), "service must not be asked")
}

func TestGlobalShortcutSession_ConfigureBeforeEstablish(t *testing.T) {
	s := newSession(newFakePortal(2), &fakeKeepAlive{}, fakeWindow{}, newActivationRecorder())

	err := s.Configure(testContext())
	assert.ErrorIs(t, err, usecase.ErrConfigureFailed)
	assert.ErrorIs(t, err, usecase.ErrNotBound)
}

func TestGlobalShortcutSession_ConfigurePassesTokenOnlyWhenFocused(t *testing.T) {
	ctx := testContext()

	focusedWindow := mocks.NewMockWindowIdentifier(t)
	focusedWindow.EXPECT().ParentWindow().Return("x11:2b")
	focusedWindow.EXPECT().ActivationToken().Return("tok", true).Once()

	focusedPortal := newFakePortal(2)
	focused := newSession(focusedPortal, &fakeKeepAlive{}, focusedWindow, newActivationRecorder())
	require.NoError(t, focused.Establish(ctx))
	require.NoError(t, focused.Configure(ctx))
	focused.Teardown(ctx)

	unfocusedWindow := mocks.NewMockWindowIdentifier(t)
	unfocusedWindow.EXPECT().ParentWindow().Return("")
	unfocusedWindow.EXPECT().ActivationToken().Return("stale", false).Once()

	unfocusedPortal := newFakePortal(2)
	unfocused := newSession(unfocusedPortal, &fakeKeepAlive{}, unfocusedWindow, newActivationRecorder())
	require.NoError(t, unfocused.Establish(ctx))
	require.NoError(t, unfocused.Configure(ctx))
	unfocused.Teardown(ctx)

	require.Len(t, focusedPortal.Configures(), 1)
	assert.Equal(t, "tok", focusedPortal.Configures()[0].token)
	assert.Equal(t, "x11:2b", focusedPortal.Configures()[0].parent)

	require.Len(t, unfocusedPortal.Configures(), 1)
	assert.Empty(t, unfocusedPortal.Configures()[0].token)
}

func TestGlobalShortcutSession_ConfigureServiceError(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	portal.configureErr = errRefused
	s := newSession(portal, &fakeKeepAlive{}, fakeWindow{}, newActivationRecorder())
	defer s.Teardown(ctx)

	require.NoError(t, s.Establish(ctx))
	err := s.Configure(ctx)
	assert.ErrorIs(t, err, usecase.ErrConfigureFailed)
	assert.ErrorIs(t, err, errRefused)
	assert.Equal(t, usecase.ShortcutsBound, s.State())
}

func TestGlobalShortcutSession_BindFailureLeavesNothingBehind(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	portal.bindErr = errRefused
	keepAlive := &fakeKeepAlive{}
	s := newSession(portal, keepAlive, fakeWindow{}, newActivationRecorder())
	defer s.Teardown(ctx)

	err := s.Establish(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrBindingFailed)
	assert.Equal(t, usecase.ShortcutsUninitialized, s.State())
	assert.Zero(t, keepAlive.Held())
	assert.Equal(t, []port.ShortcutSessionHandle{"/session/1"}, portal.Closed())

	// A later attempt starts from scratch.
	portal.mu.Lock()
	portal.bindErr = nil
	portal.mu.Unlock()
	require.NoError(t, s.Establish(ctx))
	assert.Equal(t, usecase.ShortcutsBound, s.State())
	assert.Equal(t, 2, portal.sessions)
	assert.Equal(t, 1, keepAlive.Held())
}

func TestGlobalShortcutSession_NegotiationFailure(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	portal.versionErr = errRefused
	keepAlive := &fakeKeepAlive{}
	s := newSession(portal, keepAlive, fakeWindow{}, newActivationRecorder())

	err := s.Establish(ctx)
	assert.ErrorIs(t, err, usecase.ErrNegotiationFailed)
	assert.Zero(t, portal.sessions)
	assert.Zero(t, keepAlive.Held())

	portal.versionErr = nil
	portal.createErr = errRefused
	err = s.Establish(ctx)
	assert.ErrorIs(t, err, usecase.ErrNegotiationFailed)
	assert.Equal(t, usecase.ShortcutsUninitialized, s.State())
}

func TestGlobalShortcutSession_ActivationsDeliveredInOrder(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	rec := newActivationRecorder()
	s := newSession(portal, &fakeKeepAlive{}, fakeWindow{}, rec)
	defer s.Teardown(ctx)

	require.NoError(t, s.Establish(ctx))

	order := []entity.ShortcutID{
		entity.ShortcutToggleSuspend,
		entity.ShortcutToggleSuspendAndIdle,
		entity.ShortcutToggleSuspend,
	}
	for i, id := range order {
		portal.activations <- port.ShortcutActivation{ShortcutID: id, Timestamp: uint64(i)}
	}

	assert.Equal(t, order, rec.wait(t, len(order)))
}

func TestGlobalShortcutSession_UnknownActivationIgnored(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	rec := newActivationRecorder()
	s := newSession(portal, &fakeKeepAlive{}, fakeWindow{}, rec)
	defer s.Teardown(ctx)

	require.NoError(t, s.Establish(ctx))

	portal.activations <- port.ShortcutActivation{ShortcutID: "frobnicate"}
	portal.activations <- port.ShortcutActivation{ShortcutID: entity.ShortcutToggleSuspendAndIdle}

	assert.Equal(t, []entity.ShortcutID{entity.ShortcutToggleSuspendAndIdle}, rec.wait(t, 1))
	assert.Equal(t, usecase.ShortcutsBound, s.State())
}

func TestGlobalShortcutSession_TeardownNeverEstablished(t *testing.T) {
	portal := newFakePortal(2)
	keepAlive := &fakeKeepAlive{}
	s := newSession(portal, keepAlive, fakeWindow{}, newActivationRecorder())

	s.Teardown(testContext())
	s.Teardown(testContext())

	assert.Equal(t, usecase.ShortcutsTornDown, s.State())
	assert.Empty(t, portal.Closed())
	assert.Zero(t, keepAlive.Held())
}

func TestGlobalShortcutSession_TeardownIsIdempotent(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	keepAlive := &fakeKeepAlive{}
	s := newSession(portal, keepAlive, fakeWindow{}, newActivationRecorder())

	require.NoError(t, s.Establish(ctx))
	s.Teardown(ctx)
	s.Teardown(ctx)

	assert.Equal(t, []port.ShortcutSessionHandle{"/session/1"}, portal.Closed())
	assert.Zero(t, keepAlive.Held())
	assert.False(t, s.CanConfigure())
	assert.Empty(t, s.BoundShortcuts())
	assert.ErrorIs(t, s.Establish(ctx), usecase.ErrSessionTornDown)
}

func TestGlobalShortcutSession_NoActivationsAfterTeardown(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	rec := newActivationRecorder()
	s := newSession(portal, &fakeKeepAlive{}, fakeWindow{}, rec)

	require.NoError(t, s.Establish(ctx))
	s.Teardown(ctx)

	portal.activations <- port.ShortcutActivation{ShortcutID: entity.ShortcutToggleSuspend}
	select {
	case id := <-rec.got:
		t.Fatalf("handler ran after teardown for %s", id)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGlobalShortcutSession_TeardownDuringNegotiation(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	portal.bindGate = make(chan struct{})
	portal.bindEntered = make(chan struct{})
	keepAlive := &fakeKeepAlive{}
	s := newSession(portal, keepAlive, fakeWindow{}, newActivationRecorder())

	result := make(chan error, 1)
	go func() { result <- s.Establish(ctx) }()

	<-portal.bindEntered
	assert.Equal(t, usecase.ShortcutsNegotiating, s.State())
	assert.ErrorIs(t, s.Establish(ctx), usecase.ErrEstablishInProgress)

	s.Teardown(ctx)
	close(portal.bindGate)

	select {
	case err := <-result:
		assert.ErrorIs(t, err, usecase.ErrSessionTornDown)
	case <-time.After(2 * time.Second):
		t.Fatal("establish did not return")
	}
	assert.Equal(t, usecase.ShortcutsTornDown, s.State())
	assert.Zero(t, keepAlive.Held())
	assert.Equal(t, []port.ShortcutSessionHandle{"/session/1"}, portal.Closed())
}

func TestGlobalShortcutSession_ListBoundShortcutsRefreshesTriggers(t *testing.T) {
	ctx := testContext()
	portal := newFakePortal(2)
	s := newSession(portal, &fakeKeepAlive{}, fakeWindow{}, newActivationRecorder())
	defer s.Teardown(ctx)

	_, err := s.ListBoundShortcuts(ctx)
	assert.ErrorIs(t, err, usecase.ErrNotBound)

	require.NoError(t, s.Establish(ctx))
	portal.mu.Lock()
	portal.live = []entity.BoundShortcut{
		{ID: entity.ShortcutToggleSuspendAndIdle, TriggerDescription: "Ctrl+Alt+I"},
		{ID: entity.ShortcutToggleSuspend, Description: "Toggle inhibit suspend", TriggerDescription: "Ctrl+I"},
		{ID: "stranger", TriggerDescription: "F12"},
	}
	portal.mu.Unlock()

	live, err := s.ListBoundShortcuts(ctx)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, entity.ShortcutToggleSuspend, live[0].ID)
	assert.Equal(t, "Ctrl+I", live[0].TriggerDescription)
	assert.Equal(t, entity.ShortcutToggleSuspendAndIdle, live[1].ID)
	assert.Equal(t, "Toggle inhibit suspend and idle", live[1].Description)
	assert.Equal(t, live, s.BoundShortcuts())
}

func TestShortcutSessionState_String(t *testing.T) {
	assert.Equal(t, "bound", usecase.ShortcutsBound.String())
	assert.Equal(t, "torn-down", usecase.ShortcutsTornDown.String())
	assert.Equal(t, "ShortcutSessionState(9)", usecase.ShortcutSessionState(9).String())
}
