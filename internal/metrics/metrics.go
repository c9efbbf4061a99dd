package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_webhook_deliveries_total",
		Help: "Webhook deliveries by event and result (delivered, rejected, failed).",
	}, []string{"event", "result"})

	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_commands_total",
		Help: "Command requests by operation and result (ok, invalid, failed).",
	}, []string{"operation", "result"})

	SessionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_session_events_total",
		Help: "WhatsApp session events seen by the bridge.",
	}, []string{"event"})
)

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
