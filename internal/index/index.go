package index

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/router"
)

type StatusResponse struct {
	Status string `json:"status"`
}

// Index
// @Summary     Show The Status of The Server
// @Description Get The Server Status
// @Tags        Root
// @Produce     json
// @Success     200 {object} StatusResponse
// @Router      / [get]
func Index(c *fiber.Ctx) error {
	return router.ResponseJSON(c, http.StatusOK, StatusResponse{Status: "API is running"})
}
