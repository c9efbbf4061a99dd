package whatsapp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
)

var ErrWAVersionOutdatedForQR = errors.New("whatsapp client version is outdated for QR pairing")

type WAVersionRefreshStatus struct {
	CurrentVersion store.WAVersionContainer `json:"current_version"`
	LastRefreshed  *time.Time               `json:"last_refreshed,omitempty"`
	LastError      string                   `json:"last_error,omitempty"`
}

// versionRefresher throttles and deduplicates WhatsApp Web version lookups.
type versionRefresher struct {
	group       singleflight.Group
	http        *resty.Client
	minInterval time.Duration
	fetch       func(ctx context.Context) (*store.WAVersionContainer, error)

	mu            sync.RWMutex
	lastRefreshed *time.Time
	lastError     string
}

func newVersionRefresher() *versionRefresher {
	r := &versionRefresher{
		http:        resty.New().SetTimeout(15 * time.Second),
		minInterval: env.GetEnvDurationOrDefault("WHATSAPP_WAVERSION_REFRESH_MIN_INTERVAL", 10*time.Minute),
	}
	r.fetch = func(ctx context.Context) (*store.WAVersionContainer, error) {
		return whatsmeow.GetLatestVersion(ctx, r.http.GetClient())
	}
	return r
}

// RefreshWAVersion fetches the latest WhatsApp Web version and applies it via store.SetWAVersion.
// Unless force is set, calls within WHATSAPP_WAVERSION_REFRESH_MIN_INTERVAL (default 10m) are skipped.
func (c *Client) RefreshWAVersion(ctx context.Context, force bool) (WAVersionRefreshStatus, bool, error) {
	return c.versions.refresh(ctx, force)
}

func (r *versionRefresher) refresh(ctx context.Context, force bool) (WAVersionRefreshStatus, bool, error) {
	if !force && r.minInterval > 0 {
		r.mu.RLock()
		last := r.lastRefreshed
		r.mu.RUnlock()
		if last != nil && time.Since(*last) < r.minInterval {
			return r.status(), false, nil
		}
	}

	_, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		latest, err := r.fetch(ctx)
		if err == nil && latest == nil {
			err = errors.New("latest WhatsApp Web version is nil")
		}

		now := time.Now()
		r.mu.Lock()
		r.lastRefreshed = &now
		if err != nil {
			r.lastError = err.Error()
		} else {
			r.lastError = ""
		}
		r.mu.Unlock()

		if err != nil {
			return nil, err
		}
		store.SetWAVersion(*latest)
		return store.GetWAVersion(), nil
	})
	return r.status(), true, err
}

func (r *versionRefresher) status() WAVersionRefreshStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last *time.Time
	if r.lastRefreshed != nil {
		t := *r.lastRefreshed
		last = &t
	}
	return WAVersionRefreshStatus{
		CurrentVersion: store.GetWAVersion(),
		LastRefreshed:  last,
		LastError:      r.lastError,
	}
}
