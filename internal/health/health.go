package health

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"
)

// Session reports the state of the WhatsApp connection.
type Session interface {
	IsConnected() bool
	IsLoggedIn() bool
}

type Response struct {
	Status    string `json:"status"`
	Connected bool   `json:"connected"`
	LoggedIn  bool   `json:"logged_in"`
}

type Controller struct {
	session Session
}

func New(session Session) *Controller {
	return &Controller{session: session}
}

// Get
// @Summary     Health Check
// @Description Reports whether the WhatsApp session is connected and logged in
// @Tags        Root
// @Produce     json
// @Success     200 {object} Response
// @Failure     503 {object} Response
// @Router      /health [get]
func (ctl *Controller) Get(c *fiber.Ctx) error {
	if ctl.session == nil {
		return router.ResponseJSON(c, http.StatusServiceUnavailable, Response{Status: "unavailable"})
	}

	resp := Response{
		Status:    "ok",
		Connected: ctl.session.IsConnected(),
		LoggedIn:  ctl.session.IsLoggedIn(),
	}
	if !resp.Connected || !resp.LoggedIn {
		resp.Status = "degraded"
	}
	return router.ResponseJSON(c, http.StatusOK, resp)
}
