package port

// WindowIdentifier supplies identifiers of the currently active window to
// services that parent dialogs to it.
type WindowIdentifier interface {
	// ParentWindow returns the XDG window identifier such as "x11:1a00004",
	// or "" when no identifier is known.
	ParentWindow() string

	// ActivationToken returns a token proving the request originates from a
	// focused window. ok is false when the window is not focused.
	ActivationToken() (token string, ok bool)
}
