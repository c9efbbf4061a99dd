package whatsapp

import (
	"context"
	"errors"
	"fmt"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
)

var ErrParticipantMustBeUser = errors.New("WhatsApp Participant ID must be a Personal JID")

// GroupChat is a group the session can manage.
type GroupChat interface {
	AddParticipants(ctx context.Context, participants []string) error
}

type Group struct {
	client *Client
	info   *types.GroupInfo
}

// GetChatByID looks up a group the session belongs to.
func (c *Client) GetChatByID(ctx context.Context, id string) (GroupChat, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	jid, err := ComposeJID(id)
	if err != nil {
		return nil, err
	}
	if jid.Server != types.GroupServer {
		return nil, ErrInvalidGroupID
	}

	info, err := c.wa.GetGroupInfo(ctx, jid)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrChatNotFound, id, err)
	}
	return &Group{client: c, info: info}, nil
}

// AddParticipants adds users to the group. Rejections for individual users are logged.
func (g *Group) AddParticipants(ctx context.Context, participants []string) error {
	jids := make([]types.JID, 0, len(participants))
	for _, participant := range participants {
		jid, err := ComposeJID(participant)
		if err != nil {
			return fmt.Errorf("participant %q: %w", participant, err)
		}
		if jid.Server == types.GroupServer {
			return fmt.Errorf("participant %q: %w", participant, ErrParticipantMustBeUser)
		}
		jids = append(jids, jid)
	}

	result, err := g.client.wa.UpdateGroupParticipants(ctx, g.info.JID, jids, whatsmeow.ParticipantChangeAdd)
	if err != nil {
		return err
	}
	for _, p := range result {
		if p.Error != 0 {
			log.SessionOp("group").
				WithField("group_id", g.info.JID.String()).
				WithField("participant", p.JID.String()).
				Warn(fmt.Sprintf("Participant not added, code=%d", p.Error))
		}
	}
	return nil
}
