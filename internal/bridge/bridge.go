// Package bridge relays WhatsApp session events to the webhook notifier
// and keeps the latest pairing QR code for GET /qr.
package bridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
	qrCode "github.com/skip2/go-qrcode"
	"github.com/vincent-petithory/dataurl"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/metrics"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/state"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/webhook"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
	pkgWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/pkg/whatsapp"
)

type Notifier interface {
	Notify(event webhook.EventKind, data map[string]interface{})
}

// QREncoder turns a raw pairing code into the string served by GET /qr.
type QREncoder func(code string) (string, error)

type Bridge struct {
	store    *state.Store
	notifier Notifier
	encodeQR QREncoder
	terminal io.Writer
}

type Option func(*Bridge)

func WithQREncoder(enc QREncoder) Option {
	return func(b *Bridge) {
		b.encodeQR = enc
	}
}

// WithTerminal also prints every pairing code as a half-block QR to w.
func WithTerminal(w io.Writer) Option {
	return func(b *Bridge) {
		b.terminal = w
	}
}

func New(store *state.Store, notifier Notifier, opts ...Option) *Bridge {
	b := &Bridge{
		store:    store,
		notifier: notifier,
		encodeQR: EncodeQRDataURL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EncodeQRDataURL renders code as a 256px PNG QR and returns it as a base64 data URL.
func EncodeQRDataURL(code string) (string, error) {
	if code == "" {
		return "", errors.New("pairing code is empty")
	}
	png, err := qrCode.Encode(code, qrCode.Medium, 256)
	if err != nil {
		return "", err
	}
	return dataurl.New(png, "image/png").String(), nil
}

// Attach registers one handler per session event.
func (b *Bridge) Attach(sub pkgWhatsApp.Subscriber) {
	sub.OnQR(b.handleQR)
	sub.OnReady(b.handleReady)
	sub.OnMessage(b.handleMessage)
	sub.OnDisconnected(b.handleDisconnected)
	sub.OnAuthFailure(b.handleAuthFailure)
}

func (b *Bridge) guard(event webhook.EventKind) {
	if rec := recover(); rec != nil {
		log.SessionOp(string(event)).Error(fmt.Sprintf("panic in session event handler: %v", rec))
	}
}

func (b *Bridge) handleQR(code string) {
	defer b.guard(webhook.EventQRReceived)
	metrics.SessionEvents.WithLabelValues(string(webhook.EventQRReceived)).Inc()

	log.SessionOp("qr").Info("QR RECEIVED")
	if b.terminal != nil {
		qrterminal.GenerateHalfBlock(code, qrterminal.L, b.terminal)
	}

	qr, err := b.encodeQR(code)
	if err != nil {
		log.SessionOp("qr").WithError(err).Error("Failed to encode QR code")
		return
	}

	b.store.SetQRCode(qr)
	b.notifier.Notify(webhook.EventQRReceived, map[string]interface{}{"qr": qr})
}

func (b *Bridge) handleReady() {
	defer b.guard(webhook.EventClientReady)
	metrics.SessionEvents.WithLabelValues(string(webhook.EventClientReady)).Inc()

	b.notifier.Notify(webhook.EventClientReady, map[string]interface{}{"status": "ready"})
}

func (b *Bridge) handleMessage(msg pkgWhatsApp.IncomingMessage) {
	defer b.guard(webhook.EventMessageReceived)
	metrics.SessionEvents.WithLabelValues(string(webhook.EventMessageReceived)).Inc()

	b.notifier.Notify(webhook.EventMessageReceived, map[string]interface{}{
		"from":      msg.From,
		"body":      msg.Body,
		"timestamp": msg.Timestamp,
	})
}

func (b *Bridge) handleDisconnected(reason string) {
	defer b.guard(webhook.EventClientDisconnected)
	metrics.SessionEvents.WithLabelValues(string(webhook.EventClientDisconnected)).Inc()

	log.SessionOp("disconnected").Warn("Client was disconnected: " + reason)
	b.notifier.Notify(webhook.EventClientDisconnected, map[string]interface{}{"reason": reason})
}

func (b *Bridge) handleAuthFailure(err error) {
	defer b.guard(webhook.EventAuthFailure)
	metrics.SessionEvents.WithLabelValues(string(webhook.EventAuthFailure)).Inc()

	message := "unknown authentication failure"
	if err != nil {
		message = err.Error()
	}
	log.SessionOp("auth_failure").Error("Authentication failure: " + message)
	b.notifier.Notify(webhook.EventAuthFailure, map[string]interface{}{"error": message})
}
