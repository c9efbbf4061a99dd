package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/metrics"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/state"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "WhatsApp-Web-Relay/1.0"
)

// Notifier delivers event envelopes to the configured webhook destination.
// Delivery is best-effort: one attempt, failures are logged and dropped.
type Notifier struct {
	store  *state.Store
	client *resty.Client
	now    func() time.Time

	mu       sync.Mutex
	closed   bool
	inflight int
	idle     chan struct{}
}

type Option func(*Notifier)

func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.client.SetTimeout(d)
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(n *Notifier) {
		if ua != "" {
			n.client.SetHeader("User-Agent", ua)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// OptionsFromEnv reads WEBHOOK_TIMEOUT and WEBHOOK_USER_AGENT.
func OptionsFromEnv() []Option {
	return []Option{
		WithTimeout(env.GetEnvDurationOrDefault("WEBHOOK_TIMEOUT", defaultTimeout)),
		WithUserAgent(env.GetEnvStringOrDefault("WEBHOOK_USER_AGENT", defaultUserAgent)),
	}
}

func NewNotifier(store *state.Store, opts ...Option) *Notifier {
	n := &Notifier{
		store: store,
		client: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", defaultUserAgent).
			SetHeader("Content-Type", "application/json"),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetDestination replaces the webhook URL. No well-formedness check is made.
func (n *Notifier) SetDestination(url string) {
	n.store.SetWebhookURL(url)
	log.WebhookOp("", url).Info("Webhook URL set to: " + url)
}

// Notify posts the event in the background and returns immediately.
// It is a no-op while no destination is configured.
func (n *Notifier) Notify(event EventKind, data map[string]interface{}) {
	url, ok := n.store.WebhookURL()
	if !ok {
		return
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		log.WebhookOp(string(event), url).Warn("Notifier is draining, event dropped")
		return
	}
	n.inflight++
	n.mu.Unlock()

	go n.deliver(url, NewEnvelope(event, data, n.now()))
}

func (n *Notifier) deliver(url string, envelope Envelope) {
	defer n.done()
	defer func() {
		if rec := recover(); rec != nil {
			log.WebhookOp(string(envelope.Event), url).Error(fmt.Sprintf("panic during webhook delivery: %v", rec))
			metrics.WebhookDeliveries.WithLabelValues(string(envelope.Event), "failed").Inc()
		}
	}()

	resp, err := n.client.R().
		SetHeader("X-Webhook-Event", string(envelope.Event)).
		SetBody(envelope).
		Post(url)
	if err != nil {
		log.WebhookOp(string(envelope.Event), url).WithError(err).Error("Error sending webhook")
		metrics.WebhookDeliveries.WithLabelValues(string(envelope.Event), "failed").Inc()
		return
	}

	if !resp.IsSuccess() {
		log.WebhookOp(string(envelope.Event), url).
			WithField("status", resp.StatusCode()).
			Warn(fmt.Sprintf("Webhook rejected with HTTP %d", resp.StatusCode()))
		metrics.WebhookDeliveries.WithLabelValues(string(envelope.Event), "rejected").Inc()
		return
	}

	log.WebhookOp(string(envelope.Event), url).Debug("Webhook delivered")
	metrics.WebhookDeliveries.WithLabelValues(string(envelope.Event), "delivered").Inc()
}

func (n *Notifier) done() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inflight--
	if n.inflight == 0 && n.idle != nil {
		close(n.idle)
		n.idle = nil
	}
}

// Wait blocks until in-flight deliveries finish or ctx is done.
// Events notified while waiting are waited for too.
func (n *Notifier) Wait(ctx context.Context) error {
	n.mu.Lock()
	if n.inflight == 0 {
		n.mu.Unlock()
		return nil
	}
	if n.idle == nil {
		n.idle = make(chan struct{})
	}
	idle := n.idle
	n.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting new events and waits for in-flight deliveries.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	return n.Wait(ctx)
}
