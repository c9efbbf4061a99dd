package internal

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/metrics"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/state"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/auth"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"

	ctlGroups "github.com/gdbrns/go-whatsapp-web-relay-api/internal/groups"
	ctlHealth "github.com/gdbrns/go-whatsapp-web-relay-api/internal/health"
	ctlIndex "github.com/gdbrns/go-whatsapp-web-relay-api/internal/index"
	ctlMessages "github.com/gdbrns/go-whatsapp-web-relay-api/internal/messages"
	ctlQR "github.com/gdbrns/go-whatsapp-web-relay-api/internal/qr"
	ctlWebhooks "github.com/gdbrns/go-whatsapp-web-relay-api/internal/webhooks"
)

// Services are the dependencies the HTTP routes delegate to.
type Services struct {
	Store    *state.Store
	Webhooks ctlWebhooks.Destination
	Messages ctlMessages.Client
	Groups   ctlGroups.ChatFinder
	Session  ctlHealth.Session
}

func Routes(app *fiber.App, svc Services) {
	ctlQRCode := ctlQR.New(svc.Store)
	ctlWebhook := ctlWebhooks.New(svc.Webhooks)
	ctlMessage := ctlMessages.New(svc.Messages)
	ctlGroup := ctlGroups.New(svc.Groups)
	ctlHealthCheck := ctlHealth.New(svc.Session)

	// Route for Index
	// ---------------------------------------------
	if router.BaseURL == "" {
		app.Get("/", ctlIndex.Index)
	} else {
		app.Get(router.BaseURL, ctlIndex.Index)
		app.Get(router.BaseURL+"/", ctlIndex.Index)
	}

	// Route for OpenAPI / Swagger
	// ---------------------------------------------
	app.Get(router.BaseURL+"/api-docs/*", swagger.HandlerDefault)

	// Route for Operations
	// ---------------------------------------------
	app.Get(router.BaseURL+"/health", ctlHealthCheck.Get)
	app.Get(router.BaseURL+"/metrics", metrics.Handler())

	// Route for Session
	// ---------------------------------------------
	app.Get(router.BaseURL+"/qr", ctlQRCode.Get)

	// ============================================================
	// COMMAND ROUTES (JWT Bearer token when HTTP_AUTH_JWT_SECRET is set)
	// ============================================================
	handlers := func(h fiber.Handler) []fiber.Handler {
		if router.AuthJWTSecret == "" {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{auth.BearerAuth(router.AuthJWTSecret), h}
	}

	// Webhook routes
	app.Post(router.BaseURL+"/webhook", handlers(ctlWebhook.SetWebhook)...)

	// Message routes
	app.Post(router.BaseURL+"/messages/send", handlers(ctlMessage.Send)...)
	app.Post(router.BaseURL+"/messages/media", handlers(ctlMessage.SendMedia)...)
	app.Post(router.BaseURL+"/messages/react", handlers(ctlMessage.React)...)

	// Group routes
	app.Post(router.BaseURL+"/groups/participants/add", handlers(ctlGroup.AddParticipants)...)
}
