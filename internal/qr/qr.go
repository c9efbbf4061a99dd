package qr

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-whatsapp-web-relay-api/internal/state"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"
)

type Response struct {
	QR string `json:"qr"`
}

type Controller struct {
	store *state.Store
}

func New(store *state.Store) *Controller {
	return &Controller{store: store}
}

// Get
// @Summary     Get The Latest Pairing QR Code
// @Description Returns the most recent pairing QR code as a PNG data URL
// @Tags        Session
// @Produce     json
// @Success     200 {object} Response
// @Failure     404 {object} router.ErrorResponse
// @Router      /qr [get]
func (ctl *Controller) Get(c *fiber.Ctx) error {
	code, ok := ctl.store.QRCode()
	if !ok {
		return router.ResponseNotFound(c, "QR code not generated yet")
	}
	return router.ResponseJSON(c, http.StatusOK, Response{QR: code})
}
