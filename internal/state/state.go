// Package state owns the two pieces of mutable relay state shared between
// the HTTP handlers and the session event bridge.
package state

import "sync/atomic"

// Store holds the webhook destination and the latest pairing QR code.
// Both fields are independent; last write wins.
type Store struct {
	webhookURL atomic.Pointer[string]
	qrCode     atomic.Pointer[string]
}

func New() *Store {
	return &Store{}
}

func (s *Store) SetWebhookURL(url string) {
	s.webhookURL.Store(&url)
}

// WebhookURL returns the configured destination and whether one was ever set.
func (s *Store) WebhookURL() (string, bool) {
	if p := s.webhookURL.Load(); p != nil {
		return *p, true
	}
	return "", false
}

func (s *Store) SetQRCode(dataURL string) {
	s.qrCode.Store(&dataURL)
}

func (s *Store) QRCode() (string, bool) {
	if p := s.qrCode.Load(); p != nil {
		return *p, true
	}
	return "", false
}
