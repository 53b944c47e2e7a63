package port

import "context"

// Notifier shows desktop notifications.
type Notifier interface {
	// Notify shows a notification with the given title and message.
	Notify(ctx context.Context, title, message string) error
}
