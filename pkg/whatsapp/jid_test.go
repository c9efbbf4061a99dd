package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/types"
)

func TestComposeJID(t *testing.T) {
	tests := []struct {
		in   string
		want types.JID
	}{
		{"6281234567890", types.NewJID("6281234567890", types.DefaultUserServer)},
		{"+6281234567890", types.NewJID("6281234567890", types.DefaultUserServer)},
		{"6281234567890@c.us", types.NewJID("6281234567890", types.DefaultUserServer)},
		{"6281234567890@s.whatsapp.net", types.NewJID("6281234567890", types.DefaultUserServer)},
		{"120363025246125888@g.us", types.NewJID("120363025246125888", types.GroupServer)},
		{"120363025246125888", types.NewJID("120363025246125888", types.GroupServer)},
		{"6281234567890-1600000000", types.NewJID("6281234567890-1600000000", types.GroupServer)},
		{"12345678901234@lid", types.NewJID("12345678901234", types.HiddenUserServer)},
	}
	for _, tt := range tests {
		got, err := ComposeJID(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "  ", "@c.us", "0812345"} {
		_, err := ComposeJID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSerializedMessageID(t *testing.T) {
	key, ok := parseSerializedMessageID("true_6281234567890@c.us_3EB0C767D26A1D5F0A1B")
	require.True(t, ok)
	assert.True(t, key.FromMe)
	assert.Equal(t, "3EB0C767D26A1D5F0A1B", key.ID)
	assert.Equal(t, types.NewJID("6281234567890", types.DefaultUserServer), key.Chat)
	assert.Equal(t, key.Chat, key.Sender)

	key, ok = parseSerializedMessageID("false_120363025246125888@g.us_ABCDEF_6281234567890@c.us")
	require.True(t, ok)
	assert.False(t, key.FromMe)
	assert.Equal(t, types.GroupServer, key.Chat.Server)
	assert.Equal(t, types.NewJID("6281234567890", types.DefaultUserServer), key.Sender)

	for _, bad := range []string{"3EB0C767D26A1D5F0A1B", "maybe_6281234567890@c.us_ID", "true_6281234567890@c.us_", "a_b"} {
		_, ok := parseSerializedMessageID(bad)
		assert.False(t, ok, bad)
	}
}
