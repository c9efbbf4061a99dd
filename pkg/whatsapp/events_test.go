package whatsapp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

type captured struct {
	qr           []string
	ready        int
	messages     []IncomingMessage
	disconnected []string
	failures     []error
}

func capture(sub Subscriber) *captured {
	c := &captured{}
	sub.OnQR(func(code string) { c.qr = append(c.qr, code) })
	sub.OnReady(func() { c.ready++ })
	sub.OnMessage(func(msg IncomingMessage) { c.messages = append(c.messages, msg) })
	sub.OnDisconnected(func(reason string) { c.disconnected = append(c.disconnected, reason) })
	sub.OnAuthFailure(func(err error) { c.failures = append(c.failures, err) })
	return c
}

func TestEventsFanOutInOrder(t *testing.T) {
	e := NewEvents()
	var order []string
	e.OnReady(func() { order = append(order, "first") })
	e.OnReady(func() { order = append(order, "second") })

	e.EmitReady()
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEventsWithoutSubscribers(t *testing.T) {
	e := NewEvents()
	assert.NotPanics(t, func() {
		e.EmitQR("code")
		e.EmitReady()
		e.EmitMessage(IncomingMessage{})
		e.EmitDisconnected("LOGOUT")
		e.EmitAuthFailure(errors.New("x"))
	})
}

func inbound(body *waE2E.Message, fromMe bool) *events.Message {
	chat := types.NewJID("6281234567890", types.DefaultUserServer)
	return &events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{Chat: chat, Sender: chat, IsFromMe: fromMe},
			ID:            "3EB0AAAA",
			Timestamp:     time.Unix(1700000000, 0),
		},
		Message: body,
	}
}

func TestHandleEventMapping(t *testing.T) {
	c := newClient(Config{})
	got := capture(c)

	c.handleEvent(&events.Connected{})
	c.handleEvent(inbound(&waE2E.Message{Conversation: proto.String("hello")}, false))
	c.handleEvent(inbound(&waE2E.Message{Conversation: proto.String("mine")}, true))
	c.handleEvent(&events.LoggedOut{})
	c.handleEvent(&events.StreamReplaced{})
	c.handleEvent(&events.Disconnected{})
	c.handleEvent(&events.ConnectFailure{Message: "nope"})
	c.handleEvent(&events.PairError{Error: errors.New("bad pair")})
	c.handleEvent(&events.ClientOutdated{})

	assert.Equal(t, 1, got.ready)
	require.Len(t, got.messages, 1)
	assert.Equal(t, IncomingMessage{
		ID:        "3EB0AAAA",
		From:      "6281234567890@s.whatsapp.net",
		Body:      "hello",
		Timestamp: 1700000000,
	}, got.messages[0])
	assert.Equal(t, []string{ReasonLogout, ReasonConflict, ReasonDisconnected}, got.disconnected)
	require.Len(t, got.failures, 3)
	assert.Contains(t, got.failures[0].Error(), "nope")
	assert.Contains(t, got.failures[1].Error(), "bad pair")
	assert.ErrorIs(t, got.failures[2], ErrWAVersionOutdatedForQR)

	_, ok := c.keys.Get("3EB0AAAA")
	assert.True(t, ok, "own and inbound messages are remembered for reactions")
}

func TestMessageBody(t *testing.T) {
	tests := []struct {
		msg  *waE2E.Message
		want string
	}{
		{nil, ""},
		{&waE2E.Message{Conversation: proto.String("plain")}, "plain"},
		{&waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: proto.String("link https://x")}}, "link https://x"},
		{&waE2E.Message{ImageMessage: &waE2E.ImageMessage{Caption: proto.String("pic")}}, "pic"},
		{&waE2E.Message{VideoMessage: &waE2E.VideoMessage{Caption: proto.String("clip")}}, "clip"},
		{&waE2E.Message{DocumentMessage: &waE2E.DocumentMessage{Caption: proto.String("doc")}}, "doc"},
		{&waE2E.Message{StickerMessage: &waE2E.StickerMessage{}}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, messageBody(tt.msg))
	}
}
