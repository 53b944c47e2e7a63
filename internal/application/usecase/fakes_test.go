package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

var errRefused = errors.New("refused by session")

// fakeKeepAlive counts outstanding holds.
type fakeKeepAlive struct {
	mu     sync.Mutex
	held   int
	issued int
}

type fakeHold struct {
	owner *fakeKeepAlive
	once  sync.Once
}

func (h *fakeHold) Release() {
	h.once.Do(func() {
		h.owner.mu.Lock()
		h.owner.held--
		h.owner.mu.Unlock()
	})
}

func (k *fakeKeepAlive) Hold() port.HoldGuard {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held++
	k.issued++
	return &fakeHold{owner: k}
}

func (k *fakeKeepAlive) Held() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held
}

// fakeInhibitor records active cookies and the high-water mark of
// simultaneously active ones.
type fakeInhibitor struct {
	mu        sync.Mutex
	next      port.InhibitCookie
	active    map[port.InhibitCookie]entity.InhibitFlags
	maxActive int
	windows   []string
	calls     []entity.InhibitFlags
	failFlags entity.InhibitFlags
}

func newFakeInhibitor() *fakeInhibitor {
	return &fakeInhibitor{active: make(map[port.InhibitCookie]entity.InhibitFlags)}
}

func (f *fakeInhibitor) Inhibit(_ context.Context, window string, flags entity.InhibitFlags, _ string) (port.InhibitCookie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = append(f.windows, window)
	f.calls = append(f.calls, flags)
	if f.failFlags != 0 && flags == f.failFlags {
		return 0, errRefused
	}
	f.next++
	f.active[f.next] = flags
	if len(f.active) > f.maxActive {
		f.maxActive = len(f.active)
	}
	return f.next, nil
}

func (f *fakeInhibitor) Uninhibit(_ context.Context, cookie port.InhibitCookie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.active[cookie]; !ok {
		return errors.New("unknown cookie")
	}
	delete(f.active, cookie)
	return nil
}

func (f *fakeInhibitor) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.active)
}

// fakeWindow is a WindowIdentifier with fixed answers.
type fakeWindow struct {
	parent  string
	token   string
	focused bool
}

func (w fakeWindow) ParentWindow() string { return w.parent }

func (w fakeWindow) ActivationToken() (string, bool) { return w.token, w.focused }

type configureCall struct {
	session port.ShortcutSessionHandle
	parent  string
	token   string
}

// fakePortal is a scriptable global shortcut service.
type fakePortal struct {
	mu sync.Mutex

	version      uint32
	versionErr   error
	createErr    error
	bindErr      error
	configureErr error
	listErr      error
	live         []entity.BoundShortcut

	// bindGate, when set, blocks BindShortcuts until it is closed.
	bindGate    chan struct{}
	bindEntered chan struct{}

	sessions      int
	closed        []port.ShortcutSessionHandle
	bindParents   []string
	configures    []configureCall
	activations   chan port.ShortcutActivation
	subscriptions int
}

func newFakePortal(version uint32) *fakePortal {
	return &fakePortal{
		version:     version,
		activations: make(chan port.ShortcutActivation, 16),
	}
}

func (p *fakePortal) Version(context.Context) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version, p.versionErr
}

func (p *fakePortal) CreateSession(context.Context) (port.ShortcutSessionHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return "", p.createErr
	}
	p.sessions++
	return port.ShortcutSessionHandle("/session/" + string(rune('0'+p.sessions))), nil
}

func (p *fakePortal) BindShortcuts(
	_ context.Context,
	_ port.ShortcutSessionHandle,
	parentWindow string,
	shortcuts []entity.Shortcut,
) ([]entity.BoundShortcut, error) {
	p.mu.Lock()
	gate, entered := p.bindGate, p.bindEntered
	p.bindParents = append(p.bindParents, parentWindow)
	p.mu.Unlock()

	if gate != nil {
		if entered != nil {
			close(entered)
		}
		<-gate
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bindErr != nil {
		return nil, p.bindErr
	}
	bound := make([]entity.BoundShortcut, 0, len(shortcuts))
	for _, s := range shortcuts {
		bound = append(bound, entity.BoundShortcut{
			ID:                 s.ID,
			Description:        s.Description,
			TriggerDescription: "Press " + s.PreferredTrigger,
		})
	}
	return bound, nil
}

func (p *fakePortal) Activations(context.Context, port.ShortcutSessionHandle) (<-chan port.ShortcutActivation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscriptions++
	return p.activations, nil
}

func (p *fakePortal) ConfigureShortcuts(_ context.Context, session port.ShortcutSessionHandle, parentWindow, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configures = append(p.configures, configureCall{session: session, parent: parentWindow, token: token})
	return p.configureErr
}

func (p *fakePortal) ListShortcuts(context.Context, port.ShortcutSessionHandle) ([]entity.BoundShortcut, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live, p.listErr
}

func (p *fakePortal) CloseSession(_ context.Context, session port.ShortcutSessionHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = append(p.closed, session)
	return nil
}

func (p *fakePortal) Closed() []port.ShortcutSessionHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]port.ShortcutSessionHandle(nil), p.closed...)
}

func (p *fakePortal) Configures() []configureCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]configureCall(nil), p.configures...)
}
