package portal

import (
	"regexp"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

func TestSenderComponent(t *testing.T) {
	assert.Equal(t, "1_42", senderComponent(":1.42"))
	assert.Equal(t, "", senderComponent(""))
}

func TestNewTokenIsValidPathElement(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	a, b := newToken(), newToken()
	assert.Regexp(t, valid, a)
	assert.NotEqual(t, a, b)
	assert.True(t, dbus.ObjectPath("/x/"+a).IsValid())
}

func TestUninhibitUnknownCookie(t *testing.T) {
	p := NewInhibitor(nil)
	assert.ErrorIs(t, p.Uninhibit(t.Context(), 7), port.ErrUnknownCookie)
}

func TestRequestPath(t *testing.T) {
	c := &Client{sender: "1_7"}
	assert.Equal(t,
		dbus.ObjectPath("/org/freedesktop/portal/desktop/request/1_7/tok"),
		c.requestPath("tok"))
}

func TestParseResponse(t *testing.T) {
	code, results, err := parseResponse(&dbus.Signal{Body: []interface{}{
		uint32(0),
		map[string]dbus.Variant{"background": dbus.MakeVariant(true)},
	}})
	require.NoError(t, err)
	assert.Equal(t, responseSuccess, code)
	assert.Equal(t, true, results["background"].Value())

	_, _, err = parseResponse(&dbus.Signal{Body: []interface{}{"nope"}})
	assert.ErrorIs(t, err, ErrUnexpectedReply)
}

func TestSessionHandleAcceptsStringAndPath(t *testing.T) {
	h, err := sessionHandle(map[string]dbus.Variant{
		"session_handle": dbus.MakeVariant(dbus.ObjectPath("/s/1")),
	})
	require.NoError(t, err)
	assert.Equal(t, port.ShortcutSessionHandle("/s/1"), h)

	h, err = sessionHandle(map[string]dbus.Variant{
		"session_handle": dbus.MakeVariant("/s/2"),
	})
	require.NoError(t, err)
	assert.Equal(t, port.ShortcutSessionHandle("/s/2"), h)

	_, err = sessionHandle(map[string]dbus.Variant{})
	assert.ErrorIs(t, err, ErrUnexpectedReply)

	_, err = sessionHandle(map[string]dbus.Variant{"session_handle": dbus.MakeVariant(uint32(3))})
	assert.ErrorIs(t, err, ErrUnexpectedReply)
}

func TestBoundShortcutsDecodesWireForm(t *testing.T) {
	// This is how godbus decodes a(sa{sv}) inside a variant.
	wire := [][]interface{}{
		{"toggle-inhibit-suspend", map[string]dbus.Variant{
			"description":         dbus.MakeVariant("Toggle inhibit suspend"),
			"trigger_description": dbus.MakeVariant("Super+F11"),
		}},
		{"toggle-inhibit-suspend-and-idle", map[string]dbus.Variant{}},
	}
	bound, err := boundShortcuts(map[string]dbus.Variant{"shortcuts": dbus.MakeVariant(wire)})
	require.NoError(t, err)
	require.Len(t, bound, 2)
	assert.Equal(t, entity.BoundShortcut{
		ID:                 entity.ShortcutToggleSuspend,
		Description:        "Toggle inhibit suspend",
		TriggerDescription: "Super+F11",
	}, bound[0])
	assert.Equal(t, entity.ShortcutToggleSuspendAndIdle, bound[1].ID)
	assert.Empty(t, bound[1].TriggerDescription)

	none, err := boundShortcuts(map[string]dbus.Variant{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestToSpecOmitsEmptyTrigger(t *testing.T) {
	spec := toSpec(entity.Shortcut{ID: "a", Description: "A"})
	assert.Equal(t, "a", spec.ID)
	assert.Contains(t, spec.Options, "description")
	assert.NotContains(t, spec.Options, "preferred_trigger")

	spec = toSpec(entity.Shortcut{ID: "b", Description: "B", PreferredTrigger: "<Super>F11"})
	assert.Equal(t, "<Super>F11", spec.Options["preferred_trigger"].Value())
}

func TestParseActivated(t *testing.T) {
	a, session, err := parseActivated(&dbus.Signal{Body: []interface{}{
		dbus.ObjectPath("/s/1"), "toggle-inhibit-suspend", uint64(1234), map[string]dbus.Variant{},
	}})
	require.NoError(t, err)
	assert.Equal(t, port.ShortcutSessionHandle("/s/1"), session)
	assert.Equal(t, entity.ShortcutToggleSuspend, a.ShortcutID)
	assert.Equal(t, uint64(1234), a.Timestamp)

	_, _, err = parseActivated(&dbus.Signal{Body: []interface{}{"x"}})
	assert.ErrorIs(t, err, ErrUnexpectedReply)
}

func receive(t *testing.T, sub *subscription) *dbus.Signal {
	t.Helper()
	select {
	case sig := <-sub.C:
		return sig
	case <-time.After(time.Second):
		t.Fatal("no signal delivered")
		return nil
	}
}

func TestRouterDeliversMatchingSignalsInOrder(t *testing.T) {
	in := make(chan *dbus.Signal, 8)
	r := newRouter(in)
	defer r.stop()

	activated := r.subscribe(matchSignal(portalPath, globalShortcutsIface+".Activated"))
	other := r.subscribe(matchSignal("/elsewhere", requestIface+".Response"))
	defer activated.Close()
	defer other.Close()

	in <- &dbus.Signal{Path: portalPath, Name: globalShortcutsIface + ".Activated", Body: []interface{}{1}}
	in <- &dbus.Signal{Path: "/elsewhere", Name: requestIface + ".Response"}
	in <- &dbus.Signal{Path: portalPath, Name: globalShortcutsIface + ".Activated", Body: []interface{}{2}}

	assert.Equal(t, 1, receive(t, activated).Body[0])
	assert.Equal(t, 2, receive(t, activated).Body[0])
	assert.Equal(t, dbus.ObjectPath("/elsewhere"), receive(t, other).Path)
}

func TestRouterClosedSubscriptionDoesNotStall(t *testing.T) {
	in := make(chan *dbus.Signal)
	r := newRouter(in)
	defer r.stop()

	stalled := r.subscribe(func(*dbus.Signal) bool { return true })
	live := r.subscribe(func(*dbus.Signal) bool { return true })
	defer live.Close()
	stalled.Close()
	stalled.Close()

	for i := 0; i < 32; i++ {
		in <- &dbus.Signal{Body: []interface{}{i}}
		assert.Equal(t, i, receive(t, live).Body[0])
	}
}
