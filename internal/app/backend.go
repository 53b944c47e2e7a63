package app

import (
	"context"
	"fmt"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/build"
	"github.com/bnema/keepmeawake/internal/infrastructure/config"
	"github.com/bnema/keepmeawake/internal/infrastructure/login1"
	"github.com/bnema/keepmeawake/internal/infrastructure/portal"
	"github.com/bnema/keepmeawake/internal/logging"
)

// inhibitorBackend is a SessionInhibitor that must be closed on exit.
type inhibitorBackend interface {
	port.SessionInhibitor
	Close(ctx context.Context) error
}

// chooseBackend resolves auto: sandboxed apps can only reach the portal,
// elsewhere the portal is preferred when it answers.
func chooseBackend(want config.InhibitBackend, flatpak bool, portalAvailable func() bool) config.InhibitBackend {
	if want != config.InhibitBackendAuto {
		return want
	}
	if flatpak || portalAvailable() {
		return config.InhibitBackendPortal
	}
	return config.InhibitBackendLogind
}

func openInhibitor(
	ctx context.Context,
	want config.InhibitBackend,
	flatpak bool,
	client *portal.Client,
) (inhibitorBackend, error) {
	log := logging.FromContext(ctx)

	portalInhibitor := portal.NewInhibitor(client)
	backend := chooseBackend(want, flatpak, func() bool {
		return portalInhibitor.Available(ctx)
	})
	log.Info().Str("backend", string(backend)).Msg("app: inhibit backend selected")

	switch backend {
	case config.InhibitBackendPortal:
		return portalInhibitor, nil
	case config.InhibitBackendLogind:
		inhibitor, err := login1.Connect(build.AppName)
		if err != nil {
			return nil, fmt.Errorf("logind backend: %w", err)
		}
		return inhibitor, nil
	default:
		return nil, fmt.Errorf("unknown inhibit backend %q", backend)
	}
}
