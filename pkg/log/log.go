package log

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
)

var logger = logrus.New()

func init() {
	configureFromEnv()
}

func configureFromEnv() {
	level := env.GetEnvStringOrDefault("LOG_LEVEL", "info")
	if err := Configure(level, env.GetEnvStringOrDefault("LOG_FORMAT", "text")); err != nil {
		logger.WithError(err).Warn("Invalid LOG_LEVEL '" + level + "', keeping " + logger.GetLevel().String())
	}
}

// AddHook attaches a logrus hook to the shared logger.
func AddHook(hook logrus.Hook) {
	logger.AddHook(hook)
}

// Configure sets the level and the output format ("text" or "json") of the shared logger.
// An unknown level leaves the current one untouched and is reported back.
func Configure(level, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		logger.Formatter = &logrus.JSONFormatter{TimestampFormat: time.RFC3339}
	default:
		logger.Formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
			DisableColors:   false,
			ForceColors:     true,
		}
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

func Print(c *fiber.Ctx) *logrus.Entry {
	if c == nil {
		return logger.WithFields(logrus.Fields{})
	}

	remoteIP := c.IP()
	if v := c.Locals("remote_ip"); v != nil {
		if ip, ok := v.(string); ok && ip != "" {
			remoteIP = ip
		}
	}
	fields := logrus.Fields{
		"remote_ip": remoteIP,
		"method":    c.Method(),
		"uri":       c.OriginalURL(),
	}
	if id, ok := c.Locals("request_id").(string); ok && id != "" {
		fields["request_id"] = id
	}
	return logger.WithFields(fields)
}

// SessionOp is used for WhatsApp session lifecycle logs (qr, ready, disconnect).
func SessionOp(event string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"module": "session",
		"event":  event,
	})
}

func MessageOp(c *fiber.Ctx, op, to string) *logrus.Entry {
	return Print(c).WithFields(logrus.Fields{
		"module": "message",
		"op":     op,
		"to":     to,
	})
}

func GroupOp(c *fiber.Ctx, op, groupID string) *logrus.Entry {
	return Print(c).WithFields(logrus.Fields{
		"module":   "group",
		"op":       op,
		"group_id": groupID,
	})
}

func WebhookOp(event, url string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"module": "webhook",
		"event":  event,
		"url":    url,
	})
}

func SysErr(component string, err error) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"module": component,
	}).WithError(err)
}
