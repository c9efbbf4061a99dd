package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/proto"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waCompanionReg"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
)

var (
	ErrClientNotReady  = errors.New("WhatsApp client is not ready")
	ErrMessageNotFound = errors.New("message not found")
	ErrChatNotFound    = errors.New("chat not found")
	ErrInvalidGroupID  = errors.New("WhatsApp Group ID is Not Group Server")
)

// Reasons reported to OnDisconnected subscribers.
const (
	ReasonLogout       = "LOGOUT"
	ReasonConflict     = "CONFLICT"
	ReasonDisconnected = "DISCONNECTED"
)

type Config struct {
	DatastoreType   string
	DatastoreURI    string
	ProxyURL        string
	SendRate        float64
	SendBurst       int
	MediaMaxSize    int
	MediaTimeout    time.Duration
	MessageCacheTTL time.Duration
	DeviceOS        string
}

func ConfigFromEnv() Config {
	return Config{
		DatastoreType:   env.GetEnvStringOrDefault("WHATSAPP_DATASTORE_TYPE", "sqlite"),
		DatastoreURI:    env.GetEnvStringOrDefault("WHATSAPP_DATASTORE_URI", ""),
		ProxyURL:        env.GetEnvStringOrDefault("WHATSAPP_CLIENT_PROXY_URL", ""),
		SendRate:        env.GetEnvFloat64OrDefault("WHATSAPP_SEND_RATE", 0),
		SendBurst:       env.GetEnvIntOrDefault("WHATSAPP_SEND_BURST", 1),
		MediaMaxSize:    env.GetEnvSizeOrDefault("WHATSAPP_MEDIA_MAX_SIZE", 64*1024*1024),
		MediaTimeout:    env.GetEnvDurationOrDefault("WHATSAPP_MEDIA_TIMEOUT", 60*time.Second),
		MessageCacheTTL: env.GetEnvDurationOrDefault("WHATSAPP_MESSAGE_CACHE_TTL", 24*time.Hour),
		DeviceOS:        env.GetEnvStringOrDefault("WHATSAPP_DEVICE_OS", runtime.GOOS),
	}
}

// Client wraps a single whatsmeow session and exposes the relay's commands.
type Client struct {
	*Events

	cfg       Config
	container *sqlstore.Container
	wa        *whatsmeow.Client
	media     *resty.Client
	keys      *cache.Cache
	limiter   *rate.Limiter
	versions  *versionRefresher

	qrCancel    context.CancelFunc
	destroyOnce sync.Once
}

// Open prepares the session store and the whatsmeow client without connecting.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	container, err := openDatastore(ctx, cfg.DatastoreType, cfg.DatastoreURI)
	if err != nil {
		return nil, err
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("load device: %w", err)
	}

	store.DeviceProps.Os = proto.String(cfg.DeviceOS)
	store.DeviceProps.PlatformType = waCompanionReg.DeviceProps_CHROME.Enum()
	store.DeviceProps.RequireFullSync = proto.Bool(false)

	wa := whatsmeow.NewClient(device, log.WhatsApp("Client"))
	if cfg.ProxyURL != "" {
		if err := wa.SetProxyAddress(cfg.ProxyURL); err != nil {
			_ = container.Close()
			return nil, fmt.Errorf("set proxy: %w", err)
		}
	}
	wa.EnableAutoReconnect = true
	wa.AutoTrustIdentity = true

	c := newClient(cfg)
	c.container = container
	c.wa = wa
	wa.AddEventHandler(c.handleEvent)
	return c, nil
}

func newClient(cfg Config) *Client {
	ttl := cfg.MessageCacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	limit := rate.Inf
	if cfg.SendRate > 0 {
		limit = rate.Limit(cfg.SendRate)
	}
	burst := cfg.SendBurst
	if burst <= 0 {
		burst = 1
	}
	mediaTimeout := cfg.MediaTimeout
	if mediaTimeout <= 0 {
		mediaTimeout = 60 * time.Second
	}

	return &Client{
		Events:   NewEvents(),
		cfg:      cfg,
		media:    resty.New().SetTimeout(mediaTimeout).SetHeader("User-Agent", "Mozilla/5.0 (WhatsApp-Web-Relay)"),
		keys:     cache.New(ttl, ttl/2),
		limiter:  rate.NewLimiter(limit, burst),
		versions: newVersionRefresher(),
	}
}

// Connect starts the session. An unpaired device streams pairing codes to OnQR
// subscribers until it is paired or the QR channel ends.
func (c *Client) Connect() error {
	if c.wa.Store.ID != nil {
		return c.wa.Connect()
	}

	qrCtx, cancel := context.WithCancel(context.Background())
	qrChan, err := c.wa.GetQRChannel(qrCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("open qr channel: %w", err)
	}
	if err := c.wa.Connect(); err != nil {
		cancel()
		return err
	}
	c.qrCancel = cancel
	go c.watchQR(qrChan)
	return nil
}

func (c *Client) watchQR(qrChan <-chan whatsmeow.QRChannelItem) {
	for evt := range qrChan {
		switch evt.Event {
		case "code":
			log.SessionOp("qr").Debug(fmt.Sprintf("Pairing code received, valid for %s", evt.Timeout))
			c.EmitQR(evt.Code)
		case whatsmeow.QRChannelSuccess.Event:
			log.SessionOp("qr").Info("Device paired")
		case whatsmeow.QRChannelTimeout.Event:
			c.EmitAuthFailure(errors.New("whatsapp qr channel timed out"))
		case whatsmeow.QRChannelErrUnexpectedEvent.Event:
			c.EmitAuthFailure(errors.New("whatsapp qr channel entered an unexpected state"))
		case whatsmeow.QRChannelClientOutdated.Event:
			c.EmitAuthFailure(ErrWAVersionOutdatedForQR)
		case whatsmeow.QRChannelScannedWithoutMultidevice.Event:
			c.EmitAuthFailure(errors.New("whatsapp qr scanned without multi-device enabled"))
		case "error":
			if evt.Error != nil {
				c.EmitAuthFailure(evt.Error)
			} else {
				c.EmitAuthFailure(errors.New("whatsapp qr channel reported an unspecified error"))
			}
		}
	}
}

func (c *Client) handleEvent(evt interface{}) {
	switch e := evt.(type) {
	case *events.Connected:
		log.SessionOp("connected").Info("Client is ready!")
		c.EmitReady()
	case *events.Message:
		c.rememberKey(messageKey{ID: e.Info.ID, Chat: e.Info.Chat, Sender: e.Info.Sender, FromMe: e.Info.IsFromMe})
		if e.Info.IsFromMe {
			return
		}
		c.EmitMessage(incomingFromEvent(e))
	case *events.LoggedOut:
		log.SessionOp("logged_out").Warn(fmt.Sprintf("Client logged out, reason=%v", e.Reason))
		c.EmitDisconnected(ReasonLogout)
	case *events.StreamReplaced:
		log.SessionOp("stream_replaced").Warn("Session opened elsewhere")
		c.EmitDisconnected(ReasonConflict)
	case *events.Disconnected:
		log.SessionOp("disconnected").Warn("Client disconnected")
		c.EmitDisconnected(ReasonDisconnected)
	case *events.KeepAliveTimeout:
		log.SessionOp("keepalive").Warn(fmt.Sprintf("Keepalive timeout, errors=%d, lastSuccess=%s", e.ErrorCount, e.LastSuccess.Format(time.RFC3339)))
	case *events.ConnectFailure:
		c.EmitAuthFailure(fmt.Errorf("connection failure: reason=%v, message=%s", e.Reason, e.Message))
	case *events.PairError:
		c.EmitAuthFailure(fmt.Errorf("pairing failed: %w", e.Error))
	case *events.ClientOutdated:
		c.EmitAuthFailure(ErrWAVersionOutdatedForQR)
	case *events.TemporaryBan:
		c.EmitAuthFailure(fmt.Errorf("temporarily banned: %v", e))
	}
}

func (c *Client) IsConnected() bool {
	return c.wa != nil && c.wa.IsConnected()
}

func (c *Client) IsLoggedIn() bool {
	return c.wa != nil && c.wa.IsLoggedIn()
}

func (c *Client) ready() error {
	if !c.IsConnected() {
		return fmt.Errorf("%w: not connected", ErrClientNotReady)
	}
	if !c.IsLoggedIn() {
		return fmt.Errorf("%w: not logged in", ErrClientNotReady)
	}
	return nil
}

// Destroy disconnects the session and closes the session store. Safe to call more than once.
func (c *Client) Destroy() error {
	var err error
	c.destroyOnce.Do(func() {
		if c.qrCancel != nil {
			c.qrCancel()
		}
		if c.wa != nil {
			c.wa.Disconnect()
		}
		if c.container != nil {
			err = c.container.Close()
		}
		c.keys.Flush()
	})
	return err
}
