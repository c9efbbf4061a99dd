package router

import (
	"github.com/gofiber/fiber/v2"
)

// ParseJSON decodes the request body into out. An empty body leaves out untouched,
// so missing fields surface as validation errors rather than parse errors.
func ParseJSON(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if c.Get(fiber.HeaderContentType) == "" {
		c.Request().Header.SetContentType(fiber.MIMEApplicationJSON)
	}
	return c.BodyParser(out)
}
