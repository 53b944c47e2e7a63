package usecase

import "errors"

// ErrAcquisitionFailed means the session inhibition could not be obtained.
var ErrAcquisitionFailed = errors.New("inhibition unavailable")

// Global shortcut session errors. All of them are non-fatal: the application
// stays usable without global shortcuts.
var (
	// ErrNegotiationFailed means the service is absent or the handshake failed.
	ErrNegotiationFailed = errors.New("global shortcuts negotiation failed")
	// ErrBindingFailed means the service rejected the shortcut set.
	ErrBindingFailed = errors.New("global shortcuts binding failed")
	// ErrConfigureFailed means the service could not show its configuration.
	ErrConfigureFailed = errors.New("global shortcuts configuration failed")
	// ErrUnknownActivationID means the service activated a shortcut this
	// application never bound. It is only ever logged.
	ErrUnknownActivationID = errors.New("unknown shortcut activated")
	// ErrNotBound means the session is not in the bound state.
	ErrNotBound = errors.New("global shortcuts session not bound")
	// ErrConfigureUnsupported means the negotiated protocol version does not
	// support live reconfiguration.
	ErrConfigureUnsupported = errors.New("global shortcuts service does not support configuration")
	// ErrEstablishInProgress means another establishment is still negotiating.
	ErrEstablishInProgress = errors.New("global shortcuts session is being established")
	// ErrSessionTornDown means the session was torn down and cannot be reused.
	ErrSessionTornDown = errors.New("global shortcuts session torn down")
)
