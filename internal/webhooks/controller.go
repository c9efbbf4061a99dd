package webhooks

import (
	"github.com/gofiber/fiber/v2"

	typWhatsApp "github.com/gdbrns/go-whatsapp-web-relay-api/internal/types"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/validation"
)

// Destination receives the webhook URL every session event is posted to.
type Destination interface {
	SetDestination(url string)
}

type Controller struct {
	destination Destination
}

func New(destination Destination) *Controller {
	return &Controller{destination: destination}
}

// SetWebhook
// @Summary     Set Webhook URL
// @Description Replace the URL that receives session events. Any non-empty string is accepted.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       body body     typWhatsApp.RequestWebhook true "Webhook destination"
// @Success     200  {object} router.SuccessResponse
// @Failure     400  {object} router.ErrorResponse
// @Security    BearerAuth
// @Router      /webhook [post]
func (ctl *Controller) SetWebhook(c *fiber.Ctx) error {
	var req typWhatsApp.RequestWebhook
	if err := router.ParseJSON(c, &req); err != nil {
		log.Print(c).WithError(err).Warn("Invalid webhook request body")
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	if !validation.Present(req.URL) {
		log.Print(c).Warn("Missing webhook url")
		return router.ResponseBadRequest(c, "URL is required")
	}

	ctl.destination.SetDestination(req.URL)
	return router.ResponseSuccess(c, "Webhook URL updated")
}
