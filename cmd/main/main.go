package main

// @title Go WhatsApp Web Relay REST API
// @version 1.0.0
// @description HTTP relay over a single WhatsApp Web session: send messages, media and reactions, manage group participants, and receive session events through a webhook

// @contact.name gdbrns
// @contact.url https://github.com/gdbrns/go-whatsapp-web-relay-api

// @license.name MIT
// @license.url https://github.com/gdbrns/go-whatsapp-web-relay-api/blob/main/LICENSE

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token, required only when HTTP_AUTH_JWT_SECRET is set

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	cron "github.com/robfig/cron/v3"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"

	"github.com/gdbrns/go-whatsapp-web-relay-api/docs"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"
	pkgWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/pkg/whatsapp"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/bridge"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/state"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/webhook"
)

type Server struct {
	Address string
	Port    string
}

func main() {
	ctx := context.Background()

	// Intialize Cron
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
	), cron.WithSeconds())

	// Initialize Fiber
	app := fiber.New(fiber.Config{
		ErrorHandler:   router.HttpErrorHandler,
		BodyLimit:      router.BodyLimitBytes(),
		ReadBufferSize: 8192,
	})

	// Request ID + panic recovery (structured JSON)
	app.Use(router.HttpRequestID())
	app.Use(router.RecoveryMiddleware())

	// Router Compression
	app.Use(compress.New(compress.Config{
		Level: compress.Level(router.GZipLevel),
		Next: func(c *fiber.Ctx) bool {
			return strings.Contains(c.Path(), "api-docs")
		},
	}))

	// Router CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: router.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST",
	}))

	// Router Security
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
	}))

	// Router RealIP + request context enrichment
	app.Use(router.HttpRealIP())

	// Relay State, Webhook Notifier and WhatsApp Client
	store := state.New()
	notifier := webhook.NewNotifier(store, webhook.OptionsFromEnv()...)

	client, err := pkgWhatsApp.Open(ctx, pkgWhatsApp.ConfigFromEnv())
	if err != nil {
		log.SysErr("startup", err).Fatal("Failed to initialize WhatsApp client")
	}

	var bridgeOpts []bridge.Option
	if env.GetEnvBoolOrDefault("WHATSAPP_QR_TERMINAL", true) {
		bridgeOpts = append(bridgeOpts, bridge.WithTerminal(os.Stdout))
	}
	relay := bridge.New(store, notifier, bridgeOpts...)

	// Load Internal Routes
	docs.SwaggerInfo.BasePath = router.BaseURL + "/"
	internal.Routes(app, internal.Services{
		Store:    store,
		Webhooks: notifier,
		Messages: client,
		Groups:   client,
		Session:  client,
	})

	// Running Startup Tasks
	if err := internal.Startup(ctx, client, relay); err != nil {
		_ = client.Destroy()
		log.SysErr("startup", err).Fatal("Failed to initialize WhatsApp client")
	}

	// Running Routines Tasks
	internal.Routines(c, client)

	// Get Server Configuration with defaults
	var serverConfig Server

	// SERVER_ADDRESS: default "0.0.0.0" (all interfaces)
	serverConfig.Address = env.GetEnvStringOrDefault("SERVER_ADDRESS", "0.0.0.0")

	// PORT: default "3000"
	serverConfig.Port = env.GetEnvStringOrDefault("PORT", "3000")

	// Start Server
	go func() {
		log.Print(nil).Info("Server is running on port " + serverConfig.Port)
		if err := app.Listen(serverConfig.Address + ":" + serverConfig.Port); err != nil {
			log.Print(nil).Fatal(err.Error())
		}
	}()

	// Watch for Shutdown Signal
	sigShutdown := make(chan os.Signal, 1)
	signal.Notify(sigShutdown, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sigShutdown
	log.Print(nil).Info("Shutting down")

	// Wait 5 Seconds Before Graceful Shutdown
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// Try To Shutdown Server
	if err := app.ShutdownWithContext(ctxShutdown); err != nil {
		log.SysErr("http", err).Error("Failed to shutdown HTTP server")
	}

	// Try To Shutdown Cron
	c.Stop()

	// Try To Shutdown WhatsApp Client
	if err := client.Destroy(); err != nil {
		log.SysErr("whatsapp", err).Error("Failed to close WhatsApp client")
	}

	// Drain In-Flight Webhook Deliveries
	if err := notifier.Close(ctxShutdown); err != nil {
		log.SysErr("webhook", err).Warn("Webhook deliveries still in flight at exit")
	}
}
