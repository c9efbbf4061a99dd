package groups

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/metrics"
	typWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/internal/types"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/validation"
	pkgWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/pkg/whatsapp"
)

// ChatFinder looks up a group chat by id.
type ChatFinder interface {
	GetChatByID(ctx context.Context, id string) (pkgWhatsApp.GroupChat, error)
}

type Controller struct {
	chats ChatFinder
}

func New(chats ChatFinder) *Controller {
	return &Controller{chats: chats}
}

// AddParticipants
// @Summary     Add Group Participants
// @Description Add one or more participants to a group
// @Tags        Groups
// @Accept      json
// @Produce     json
// @Param       body body     typWhatsApp.RequestAddParticipants true "Group and participants"
// @Success     200  {object} router.SuccessResponse
// @Failure     400  {object} router.ErrorResponse
// @Failure     500  {object} router.ErrorResponse
// @Security    BearerAuth
// @Router      /groups/participants/add [post]
func (ctl *Controller) AddParticipants(c *fiber.Ctx) error {
	var req typWhatsApp.RequestAddParticipants
	if err := router.ParseJSON(c, &req); err != nil {
		metrics.Commands.WithLabelValues("add_participants", "invalid").Inc()
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	if !validation.Present(req.GroupID) || !validation.PresentList(req.Participants) {
		log.GroupOp(c, "AddParticipants", req.GroupID).Warn("Missing groupId or participants")
		metrics.Commands.WithLabelValues("add_participants", "invalid").Inc()
		return router.ResponseBadRequest(c, "GroupId and participants are required")
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	chat, err := ctl.chats.GetChatByID(ctx, req.GroupID)
	if err != nil {
		log.GroupOp(c, "AddParticipants", req.GroupID).WithError(err).Error("Failed to get group")
		metrics.Commands.WithLabelValues("add_participants", "failed").Inc()
		return router.ResponseInternalError(c, err.Error())
	}

	if err := chat.AddParticipants(ctx, req.Participants); err != nil {
		log.GroupOp(c, "AddParticipants", req.GroupID).WithError(err).Error("Failed to add participants")
		metrics.Commands.WithLabelValues("add_participants", "failed").Inc()
		return router.ResponseInternalError(c, err.Error())
	}

	log.GroupOp(c, "AddParticipants", req.GroupID).WithField("count", len(req.Participants)).Info("Participants added")
	metrics.Commands.WithLabelValues("add_participants", "ok").Inc()
	return router.ResponseSuccess(c, "")
}
