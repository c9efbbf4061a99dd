package messages

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

// Client is the part of the WhatsApp client the message commands need.
type Client interface {
	SendMessage(ctx context.Context, to string, body string) error
	MediaFromURL(ctx context.Context, mediaURL string) (*pkgWhatsApp.Media, error)
	SendMedia(ctx context.Context, to string, media *pkgWhatsApp.Media, caption string) error
	GetMessageByID(ctx context.Context, id string) (pkgWhatsApp.Reactable, error)
}

type Controller struct {
	client Client
}

func New(client Client) *Controller {
	return &Controller{client: client}
}

func userContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

// Send
// @Summary     Send Text Message
// @Description Send a text message to a user or group
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       body body     typWhatsApp.RequestSendMessage true "Message"
// @Success     200  {object} router.SuccessResponse
// @Failure     400  {object} router.ErrorResponse
// @Failure     500  {object} router.ErrorResponse
// @Security    BearerAuth
// @Router      /messages/send [post]
func (ctl *Controller) Send(c *fiber.Ctx) error {
	var req typWhatsApp.RequestSendMessage
	if err := router.ParseJSON(c, &req); err != nil {
		metrics.Commands.WithLabelValues("send", "invalid").Inc()
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	if !validation.Present(req.To, req.Message) {
		log.MessageOp(c, "SendMessage", req.To).Warn("Missing to or message")
		metrics.Commands.WithLabelValues("send", "invalid").Inc()
		return router.ResponseBadRequest(c, "To and message are required")
	}

	if err := ctl.client.SendMessage(userContext(c), req.To, req.Message); err != nil {
		log.MessageOp(c, "SendMessage", req.To).WithError(err).Error("Failed to send message")
		metrics.Commands.WithLabelValues("send", "failed").Inc()
		return router.ResponseInternalError(c, err.Error())
	}

	log.MessageOp(c, "SendMessage", req.To).Info("Message sent")
	metrics.Commands.WithLabelValues("send", "ok").Inc()
	return router.ResponseSuccess(c, "")
}

// SendMedia
// @Summary     Send Media Message
// @Description Fetch media from a URL and send it with an optional caption
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       body body     typWhatsApp.RequestSendMedia true "Media"
// @Success     200  {object} router.SuccessResponse
// @Failure     400  {object} router.ErrorResponse
// @Failure     500  {object} router.ErrorResponse
// @Security    BearerAuth
// @Router      /messages/media [post]
func (ctl *Controller) SendMedia(c *fiber.Ctx) error {
	var req typWhatsApp.RequestSendMedia
	if err := router.ParseJSON(c, &req); err != nil {
		metrics.Commands.WithLabelValues("media", "invalid").Inc()
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	if !validation.Present(req.To, req.MediaURL) {
		log.MessageOp(c, "SendMedia", req.To).Warn("Missing to or mediaUrl")
		metrics.Commands.WithLabelValues("media", "invalid").Inc()
		return router.ResponseBadRequest(c, "To and mediaUrl are required")
	}

	ctx := userContext(c)
	media, err := ctl.client.MediaFromURL(ctx, req.MediaURL)
	if err != nil {
		log.MessageOp(c, "SendMedia", req.To).WithError(err).WithField("media_url", req.MediaURL).Error("Failed to load media")
		metrics.Commands.WithLabelValues("media", "failed").Inc()
		return router.ResponseInternalError(c, err.Error())
	}

	if err := ctl.client.SendMedia(ctx, req.To, media, req.Caption); err != nil {
		log.MessageOp(c, "SendMedia", req.To).WithError(err).Error("Failed to send media")
		metrics.Commands.WithLabelValues("media", "failed").Inc()
		return router.ResponseInternalError(c, err.Error())
	}

	log.MessageOp(c, "SendMedia", req.To).WithField("mime_type", media.MimeType).Info("Media sent")
	metrics.Commands.WithLabelValues("media", "ok").Inc()
	return router.ResponseSuccess(c, "")
}

// React
// @Summary     React To Message
// @Description React to a message with a single emoji
// @Tags        Messages
// @Accept      json
// @Produce     json
// @Param       body body     typWhatsApp.RequestReact true "Reaction"
// @Success     200  {object} router.SuccessResponse
// @Failure     400  {object} router.ErrorResponse
// @Failure     500  {object} router.ErrorResponse
// @Security    BearerAuth
// @Router      /messages/react [post]
func (ctl *Controller) React(c *fiber.Ctx) error {
	var req typWhatsApp.RequestReact
	if err := router.ParseJSON(c, &req); err != nil {
		metrics.Commands.WithLabelValues("react", "invalid").Inc()
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	if !validation.Present(req.MessageID, req.Reaction) {
		log.MessageOp(c, "React", "").WithField("message_id", req.MessageID).Warn("Missing messageId or reaction")
		metrics.Commands.WithLabelValues("react", "invalid").Inc()
		return router.ResponseBadRequest(c, "MessageId and reaction are required")
	}

	ctx := userContext(c)
	msg, err := ctl.client.GetMessageByID(ctx, req.MessageID)
	if err != nil {
		log.MessageOp(c, "React", "").WithField("message_id", req.MessageID).WithError(err).Error("Failed to find message")
		metrics.Commands.WithLabelValues("react", "failed").Inc()
		return router.ResponseInternalError(c, err.Error())
	}

	if err := msg.React(ctx, req.Reaction); err != nil {
		log.MessageOp(c, "React", "").WithField("message_id", req.MessageID).WithError(err).Error("Failed to react")
		metrics.Commands.WithLabelValues("react", "failed").Inc()
		return router.ResponseInternalError(c, err.Error())
	}

	log.MessageOp(c, "React", "").WithField("message_id", req.MessageID).Info("Reaction sent")
	metrics.Commands.WithLabelValues("react", "ok").Inc()
	return router.ResponseSuccess(c, "")
}
