package port

import "context"

// BackgroundRequester asks the platform for permission to keep running in
// the background once the window is closed.
type BackgroundRequester interface {
	RequestBackground(ctx context.Context, parentWindow, reason string) (bool, error)
}
