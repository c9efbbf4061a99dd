package messages

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"
	pkgWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/pkg/whatsapp"
)

type stubMessage struct {
	reactions []string
	err       error
}

func (m *stubMessage) React(_ context.Context, reaction string) error {
	m.reactions = append(m.reactions, reaction)
	return m.err
}

type stubClient struct {
	calls int

	sent       [][2]string
	sendErr    error
	mediaErr   error
	sendMedia  []string
	message    *stubMessage
	messageErr error
}

func (s *stubClient) SendMessage(_ context.Context, to, body string) error {
	s.calls++
	s.sent = append(s.sent, [2]string{to, body})
	return s.sendErr
}

func (s *stubClient) MediaFromURL(_ context.Context, url string) (*pkgWhatsApp.Media, error) {
	s.calls++
	if s.mediaErr != nil {
		return nil, s.mediaErr
	}
	return &pkgWhatsApp.Media{MimeType: "image/png", FileName: "a.png", Data: []byte("png")}, nil
}

func (s *stubClient) SendMedia(_ context.Context, to string, media *pkgWhatsApp.Media, caption string) error {
	s.calls++
	s.sendMedia = append(s.sendMedia, to+"|"+media.FileName+"|"+caption)
	return s.sendErr
}

func (s *stubClient) GetMessageByID(_ context.Context, id string) (pkgWhatsApp.Reactable, error) {
	s.calls++
	if s.messageErr != nil {
		return nil, s.messageErr
	}
	return s.message, nil
}

func newApp(client Client) *fiber.App {
	ctl := New(client)
	app := fiber.New(fiber.Config{ErrorHandler: router.HttpErrorHandler})
	app.Post("/messages/send", ctl.Send)
	app.Post("/messages/media", ctl.SendMedia)
	app.Post("/messages/react", ctl.React)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestValidationNeverReachesClient(t *testing.T) {
	tests := []struct {
		path string
		body string
		want string
	}{
		{"/messages/send", `{}`, "To and message are required"},
		{"/messages/send", `{"to":"628123456789"}`, "To and message are required"},
		{"/messages/send", `{"message":"hi"}`, "To and message are required"},
		{"/messages/send", `{"to":"","message":"hi"}`, "To and message are required"},
		{"/messages/media", `{"to":"628123456789"}`, "To and mediaUrl are required"},
		{"/messages/media", `{"mediaUrl":"https://x/y.png","caption":"c"}`, "To and mediaUrl are required"},
		{"/messages/react", `{"messageId":"ABC"}`, "MessageId and reaction are required"},
		{"/messages/react", `{"reaction":"👍"}`, "MessageId and reaction are required"},
	}
	for _, tt := range tests {
		client := &stubClient{}
		code, body := post(t, newApp(client), tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, code, tt.body)
		assert.Equal(t, tt.want, body["error"], tt.body)
		assert.Zero(t, client.calls, tt.body)
	}
}

func TestEmptyAndMalformedBodies(t *testing.T) {
	client := &stubClient{}
	app := newApp(client)

	req := httptest.NewRequest(http.MethodPost, "/messages/send", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	code, body := post(t, app, "/messages/send", `{"to":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", body["error"])
	assert.Zero(t, client.calls)
}

func TestSendMessage(t *testing.T) {
	client := &stubClient{}
	code, body := post(t, newApp(client), "/messages/send", `{"to":"628123456789","message":"hello"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{"success": true}, body)
	assert.Equal(t, [][2]string{{"628123456789", "hello"}}, client.sent)
}

func TestSendMessageDelegateError(t *testing.T) {
	client := &stubClient{sendErr: errors.New("chat not found")}
	code, body := post(t, newApp(client), "/messages/send", `{"to":"x","message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]interface{}{"error": "chat not found"}, body)
}

func TestSendMedia(t *testing.T) {
	client := &stubClient{}
	code, body := post(t, newApp(client), "/messages/media", `{"to":"628123456789","mediaUrl":"https://x/a.png","caption":"look"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []string{"628123456789|a.png|look"}, client.sendMedia)
}

func TestSendMediaFetchFailureSkipsSend(t *testing.T) {
	client := &stubClient{mediaErr: errors.New("media fetch failed: 404")}
	code, body := post(t, newApp(client), "/messages/media", `{"to":"628123456789","mediaUrl":"https://x/a.png"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "media fetch failed: 404", body["error"])
	assert.Empty(t, client.sendMedia)
}

func TestReact(t *testing.T) {
	msg := &stubMessage{}
	client := &stubClient{message: msg}
	code, body := post(t, newApp(client), "/messages/react", `{"messageId":"ABC","reaction":"👍"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []string{"👍"}, msg.reactions)
}

func TestReactUnknownMessage(t *testing.T) {
	client := &stubClient{messageErr: pkgWhatsApp.ErrMessageNotFound}
	code, body := post(t, newApp(client), "/messages/react", `{"messageId":"ABC","reaction":"👍"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, pkgWhatsApp.ErrMessageNotFound.Error(), body["error"])
}

func TestReactFailure(t *testing.T) {
	msg := &stubMessage{err: errors.New("not connected")}
	client := &stubClient{message: msg}
	code, body := post(t, newApp(client), "/messages/react", `{"messageId":"ABC","reaction":"👍"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "not connected", body["error"])
}
