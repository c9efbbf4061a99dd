package whatsapp

import (
	"errors"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow/types"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/validation"
)

// LegacyUserServer is the user suffix WhatsApp Web clients expose ("123@c.us").
const LegacyUserServer = "c.us"

// ComposeJID turns a phone number, a bare group id or a full chat id into a JID.
// "+" prefixes are dropped and "c.us" is mapped to the multi-device user server.
func ComposeJID(id string) (types.JID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.EmptyJID, errors.New("chat id cannot be empty")
	}

	user, server := id, ""
	if at := strings.IndexByte(id, '@'); at >= 0 {
		user, server = id[:at], id[at+1:]
	}
	user = strings.TrimPrefix(strings.TrimSpace(user), "+")
	if user == "" {
		return types.EmptyJID, fmt.Errorf("chat id %q has no user part", id)
	}

	switch server {
	case "":
		if strings.ContainsRune(user, '-') || len(user) >= 18 {
			return types.NewJID(user, types.GroupServer), nil
		}
		if err := validation.ValidatePhone(user); err != nil {
			return types.EmptyJID, err
		}
		return types.NewJID(user, types.DefaultUserServer), nil
	case LegacyUserServer, types.DefaultUserServer:
		return types.NewJID(user, types.DefaultUserServer), nil
	case types.GroupServer, types.HiddenUserServer, types.NewsletterServer:
		return types.NewJID(user, server), nil
	}
	return types.ParseJID(user + "@" + server)
}

// parseSerializedMessageID accepts the WhatsApp Web serialized message id
// "<fromMe>_<chat>_<id>[_<participant>]".
func parseSerializedMessageID(serialized string) (messageKey, bool) {
	parts := strings.Split(serialized, "_")
	if len(parts) != 3 && len(parts) != 4 {
		return messageKey{}, false
	}

	var fromMe bool
	switch parts[0] {
	case "true":
		fromMe = true
	case "false":
	default:
		return messageKey{}, false
	}

	chat, err := ComposeJID(parts[1])
	if err != nil || parts[2] == "" {
		return messageKey{}, false
	}

	key := messageKey{ID: parts[2], Chat: chat, Sender: chat, FromMe: fromMe}
	if len(parts) == 4 {
		participant, err := ComposeJID(parts[3])
		if err != nil {
			return messageKey{}, false
		}
		key.Sender = participant
	}
	return key, true
}
