package internal

import (
	"context"
	"time"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/bridge"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
	pkgWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/pkg/whatsapp"
)

// Session is the WhatsApp client as seen by the startup and routine tasks.
type Session interface {
	pkgWhatsApp.Subscriber
	Connect() error
	IsConnected() bool
	IsLoggedIn() bool
	RefreshWAVersion(ctx context.Context, force bool) (pkgWhatsApp.WAVersionRefreshStatus, bool, error)
}

// Startup wires the session events to the bridge and connects the session.
// A connect error is a startup failure and is returned to the caller.
func Startup(ctx context.Context, session Session, b *bridge.Bridge) error {
	log.Print(nil).Info("Running Startup Tasks")

	b.Attach(session)

	if env.GetEnvBoolOrDefault("WHATSAPP_WAVERSION_REFRESH_ON_START", false) {
		ctxRefresh, cancel := context.WithTimeout(ctx, 30*time.Second)
		status, _, err := session.RefreshWAVersion(ctxRefresh, true)
		cancel()
		if err != nil {
			log.SysErr("startup", err).Warn("WA Web version refresh on start failed; using built-in version")
		} else {
			log.Print(nil).WithField("version", formatVersion(status)).Info("WA Web version refreshed on start")
		}
	}

	if err := session.Connect(); err != nil {
		return err
	}

	log.Print(nil).
		WithField("connected", session.IsConnected()).
		WithField("logged_in", session.IsLoggedIn()).
		Info("WhatsApp client initialized")
	return nil
}
