package port

// HoldGuard is a process keep-alive token.
// The process does not exit on inactivity while any guard is held.
type HoldGuard interface {
	// Release gives up the hold. Subsequent calls are no-ops.
	Release()
}

// KeepAlive hands out process keep-alive tokens.
type KeepAlive interface {
	Hold() HoldGuard
}
