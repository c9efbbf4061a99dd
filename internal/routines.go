package internal

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
	pkgWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/pkg/whatsapp"
)

const (
	healthCheckCronSpec         = "0 */5 * * * *"
	defaultWAVersionRefreshSpec = "0 0 3 * * *"
)

// Routines registers the periodic session tasks and starts the scheduler.
func Routines(c *cron.Cron, session Session) {
	log.Print(nil).Info("Running Routine Tasks")

	if env.GetEnvBoolOrDefault("WHATSAPP_ENABLE_HEALTH_CHECK_CRON", true) {
		_, err := c.AddFunc(healthCheckCronSpec, func() {
			checkSessionHealth(session)
		})
		if err != nil {
			log.SysErr("cron", err).Error("Failed to add health check cron job")
		}
	} else {
		log.Print(nil).Info("Health check cron disabled; relying on whatsmeow event handlers")
	}

	if env.GetEnvBoolOrDefault("WHATSAPP_ENABLE_WAVERSION_REFRESH_CRON", false) {
		spec := env.GetEnvStringOrDefault("WHATSAPP_WAVERSION_REFRESH_CRON_SPEC", defaultWAVersionRefreshSpec)
		force := env.GetEnvBoolOrDefault("WHATSAPP_WAVERSION_REFRESH_CRON_FORCE", false)
		_, err := c.AddFunc(spec, func() {
			refreshWAVersion(session, force)
		})
		if err != nil {
			log.SysErr("cron", err).Error("Failed to add WA Web version refresh cron job")
		} else {
			log.Print(nil).WithField("spec", spec).WithField("force", force).Info("WA Web version refresh cron enabled")
		}
	}

	c.Start()
}

// checkSessionHealth logs whether the session is usable and reports it back.
func checkSessionHealth(session Session) bool {
	isConnected := session.IsConnected()
	isLoggedIn := session.IsLoggedIn()

	entry := log.SessionOp("health").WithField("connected", isConnected).WithField("logged_in", isLoggedIn)
	if !isConnected || !isLoggedIn {
		entry.Warn("Client unhealthy")
		return false
	}
	entry.Info("Client healthy")
	return true
}

func refreshWAVersion(session Session, force bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, refreshed, err := session.RefreshWAVersion(ctx, force)
	versionStr := formatVersion(status)
	if err != nil {
		log.Print(nil).WithField("version", versionStr).WithField("force", force).Error("WA Web version refresh failed: " + err.Error())
		return
	}
	log.Print(nil).WithField("version", versionStr).WithField("refreshed", refreshed).WithField("force", force).Info("WA Web version refresh completed")
}

func formatVersion(status pkgWhatsApp.WAVersionRefreshStatus) string {
	v := status.CurrentVersion
	return strconv.FormatUint(uint64(v[0]), 10) + "." + strconv.FormatUint(uint64(v[1]), 10) + "." + strconv.FormatUint(uint64(v[2]), 10)
}
