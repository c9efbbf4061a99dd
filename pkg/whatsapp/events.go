package whatsapp

import (
	"sync"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types/events"
)

// IncomingMessage is the relay's view of an inbound chat message.
type IncomingMessage struct {
	ID        string
	From      string
	Body      string
	Timestamp int64
}

// Subscriber registers callbacks for the session lifecycle events the relay cares about.
type Subscriber interface {
	OnQR(fn func(code string))
	OnReady(fn func())
	OnMessage(fn func(msg IncomingMessage))
	OnDisconnected(fn func(reason string))
	OnAuthFailure(fn func(err error))
}

// Events is a Subscriber that fans emitted events out to every registered callback
// in registration order, on the emitting goroutine.
type Events struct {
	mu           sync.RWMutex
	qr           []func(string)
	ready        []func()
	message      []func(IncomingMessage)
	disconnected []func(string)
	authFailure  []func(error)
}

func NewEvents() *Events {
	return &Events{}
}

func (e *Events) OnQR(fn func(code string)) {
	e.mu.Lock()
	e.qr = append(e.qr, fn)
	e.mu.Unlock()
}

func (e *Events) OnReady(fn func()) {
	e.mu.Lock()
	e.ready = append(e.ready, fn)
	e.mu.Unlock()
}

func (e *Events) OnMessage(fn func(msg IncomingMessage)) {
	e.mu.Lock()
	e.message = append(e.message, fn)
	e.mu.Unlock()
}

func (e *Events) OnDisconnected(fn func(reason string)) {
	e.mu.Lock()
	e.disconnected = append(e.disconnected, fn)
	e.mu.Unlock()
}

func (e *Events) OnAuthFailure(fn func(err error)) {
	e.mu.Lock()
	e.authFailure = append(e.authFailure, fn)
	e.mu.Unlock()
}

func (e *Events) EmitQR(code string) {
	e.mu.RLock()
	handlers := e.qr
	e.mu.RUnlock()
	for _, fn := range handlers {
		fn(code)
	}
}

func (e *Events) EmitReady() {
	e.mu.RLock()
	handlers := e.ready
	e.mu.RUnlock()
	for _, fn := range handlers {
		fn()
	}
}

func (e *Events) EmitMessage(msg IncomingMessage) {
	e.mu.RLock()
	handlers := e.message
	e.mu.RUnlock()
	for _, fn := range handlers {
		fn(msg)
	}
}

func (e *Events) EmitDisconnected(reason string) {
	e.mu.RLock()
	handlers := e.disconnected
	e.mu.RUnlock()
	for _, fn := range handlers {
		fn(reason)
	}
}

func (e *Events) EmitAuthFailure(err error) {
	e.mu.RLock()
	handlers := e.authFailure
	e.mu.RUnlock()
	for _, fn := range handlers {
		fn(err)
	}
}

func incomingFromEvent(evt *events.Message) IncomingMessage {
	return IncomingMessage{
		ID:        evt.Info.ID,
		From:      evt.Info.Chat.String(),
		Body:      messageBody(evt.Message),
		Timestamp: evt.Info.Timestamp.Unix(),
	}
}

// messageBody returns the text of a message, or the caption of a media message.
func messageBody(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	switch {
	case msg.GetConversation() != "":
		return msg.GetConversation()
	case msg.GetExtendedTextMessage() != nil:
		return msg.GetExtendedTextMessage().GetText()
	case msg.GetImageMessage() != nil:
		return msg.GetImageMessage().GetCaption()
	case msg.GetVideoMessage() != nil:
		return msg.GetVideoMessage().GetCaption()
	case msg.GetDocumentMessage() != nil:
		return msg.GetDocumentMessage().GetCaption()
	}
	return ""
}
