package whatsapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/forPelevin/gomoji"
	"github.com/patrickmn/go-cache"
	"github.com/rivo/uniseg"

	"go.mau.fi/whatsmeow/types"
)

// Reactable is a message a reaction can be applied to.
type Reactable interface {
	React(ctx context.Context, reaction string) error
}

// messageKey is what WhatsApp needs to address an existing message. No content is kept.
type messageKey struct {
	ID     types.MessageID
	Chat   types.JID
	Sender types.JID
	FromMe bool
}

// Message is a previously seen or sent message.
type Message struct {
	client *Client
	key    messageKey
}

func (c *Client) rememberKey(key messageKey) {
	if key.ID == "" {
		return
	}
	c.keys.Set(key.ID, key, cache.DefaultExpiration)
}

// GetMessageByID finds a message sent or received during the message cache TTL,
// or addresses one directly through its serialized id.
func (c *Client) GetMessageByID(ctx context.Context, id string) (Reactable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.ready(); err != nil {
		return nil, err
	}

	if key, ok := parseSerializedMessageID(id); ok {
		return &Message{client: c, key: key}, nil
	}
	if v, ok := c.keys.Get(id); ok {
		return &Message{client: c, key: v.(messageKey)}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, id)
}

// React sends a single-emoji reaction to the message.
func (m *Message) React(ctx context.Context, reaction string) error {
	if err := ValidateReaction(reaction); err != nil {
		return err
	}
	if err := m.client.ready(); err != nil {
		return err
	}

	sender := m.key.Sender
	if m.key.FromMe && m.client.wa.Store.ID != nil {
		sender = m.client.wa.Store.ID.ToNonAD()
	}
	msg := m.client.wa.BuildReaction(m.key.Chat, sender, m.key.ID, reaction)
	_, err := m.client.send(ctx, m.key.Chat, msg)
	return err
}

func ValidateReaction(reaction string) error {
	if !gomoji.ContainsEmoji(reaction) || uniseg.GraphemeClusterCount(reaction) != 1 {
		return errors.New("WhatsApp Message React Emoji Must Be Contain Only 1 Emoji Character")
	}
	return nil
}
