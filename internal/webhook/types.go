package webhook

import "time"

type EventKind string

const (
	EventQRReceived         EventKind = "qr_received"
	EventClientReady        EventKind = "client_ready"
	EventMessageReceived    EventKind = "message_received"
	EventClientDisconnected EventKind = "client_disconnected"
	EventAuthFailure        EventKind = "auth_failure"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Envelope is the JSON body POSTed to the webhook destination.
type Envelope struct {
	Event     EventKind              `json:"event"`
	Data      map[string]interface{} `json:"data"`
	Timestamp string                 `json:"timestamp"`
}

func NewEnvelope(event EventKind, data map[string]interface{}, now time.Time) Envelope {
	return Envelope{
		Event:     event,
		Data:      data,
		Timestamp: now.UTC().Format(TimestampLayout),
	}
}
