package logging

import (
	"context"
	"runtime"
	"runtime/debug"
)

// RecoverPanic logs a panic with its stack trace and re-panics.
// Defer it at the top of long-running goroutines.
func RecoverPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}

	FromContext(ctx).Error().
		Interface("panic", r).
		Str("go_version", runtime.Version()).
		Str("stack", string(debug.Stack())).
		Msg("panic")
	panic(r)
}
