package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/bridge"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/state"
	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/webhook"
	pkgWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/pkg/whatsapp"
)

type stubSession struct {
	*pkgWhatsApp.Events

	connectErr error
	connects   int
	refreshes  []bool
	refreshErr error
	connected  bool
	loggedIn   bool
}

func newStubSession() *stubSession {
	return &stubSession{Events: pkgWhatsApp.NewEvents()}
}

func (s *stubSession) Connect() error {
	s.connects++
	return s.connectErr
}

func (s *stubSession) IsConnected() bool { return s.connected }
func (s *stubSession) IsLoggedIn() bool  { return s.loggedIn }

func (s *stubSession) RefreshWAVersion(_ context.Context, force bool) (pkgWhatsApp.WAVersionRefreshStatus, bool, error) {
	s.refreshes = append(s.refreshes, force)
	return pkgWhatsApp.WAVersionRefreshStatus{}, true, s.refreshErr
}

func TestStartupAttachesBridgeAndConnects(t *testing.T) {
	store := state.New()
	session := newStubSession()
	b := bridge.New(store, webhook.NewNotifier(store), bridge.WithQREncoder(func(code string) (string, error) {
		return "qr:" + code, nil
	}))

	require.NoError(t, Startup(context.Background(), session, b))
	assert.Equal(t, 1, session.connects)
	assert.Empty(t, session.refreshes)

	session.EmitQR("abc")
	qr, ok := store.QRCode()
	assert.True(t, ok)
	assert.Equal(t, "qr:abc", qr)
}

func TestStartupReturnsConnectError(t *testing.T) {
	store := state.New()
	session := newStubSession()
	session.connectErr = errors.New("store locked")

	err := Startup(context.Background(), session, bridge.New(store, webhook.NewNotifier(store)))
	assert.EqualError(t, err, "store locked")
}

func TestStartupRefreshesVersionWhenEnabled(t *testing.T) {
	t.Setenv("WHATSAPP_WAVERSION_REFRESH_ON_START", "true")
	store := state.New()
	session := newStubSession()
	session.refreshErr = errors.New("offline")

	require.NoError(t, Startup(context.Background(), session, bridge.New(store, webhook.NewNotifier(store))))
	assert.Equal(t, []bool{true}, session.refreshes)
	assert.Equal(t, 1, session.connects)
}

func TestCheckSessionHealth(t *testing.T) {
	session := newStubSession()
	assert.False(t, checkSessionHealth(session))

	session.connected = true
	assert.False(t, checkSessionHealth(session))

	session.loggedIn = true
	assert.True(t, checkSessionHealth(session))
}

func TestRoutinesRegistersJobs(t *testing.T) {
	t.Setenv("WHATSAPP_ENABLE_WAVERSION_REFRESH_CRON", "true")
	t.Setenv("WHATSAPP_WAVERSION_REFRESH_CRON_FORCE", "true")

	c := cron.New(cron.WithSeconds())
	session := newStubSession()
	Routines(c, session)
	defer c.Stop()

	assert.Len(t, c.Entries(), 2)

	refreshWAVersion(session, true)
	assert.Equal(t, []bool{true}, session.refreshes)
}

func TestFormatVersion(t *testing.T) {
	status := pkgWhatsApp.WAVersionRefreshStatus{}
	status.CurrentVersion[0], status.CurrentVersion[1], status.CurrentVersion[2] = 2, 3000, 1012345
	assert.Equal(t, "2.3000.1012345", formatVersion(status))
}
