package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
)

// SuccessResponse is the body of every successful command.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func logSuccess(c *fiber.Ctx, code int, message string) {
	statusMessage := http.StatusText(code)

	if message == "" || statusMessage == message {
		log.Print(c).Info(fmt.Sprintf("%d %v", code, statusMessage))
	} else {
		log.Print(c).Info(fmt.Sprintf("%d %v", code, message))
	}
}

func logError(c *fiber.Ctx, code int, message string) {
	statusMessage := http.StatusText(code)
	if message == "" {
		message = statusMessage
	}

	entry := log.Print(c)
	if code < http.StatusInternalServerError {
		entry.Warn(fmt.Sprintf("%d %v", code, message))
		return
	}
	entry.Error(fmt.Sprintf("%d %v", code, message))
}

func ResponseSuccess(c *fiber.Ctx, message string) error {
	response := SuccessResponse{
		Success: true,
		Message: strings.TrimSpace(message),
	}

	logSuccess(c, http.StatusOK, response.Message)
	return c.Status(http.StatusOK).JSON(response)
}

// ResponseJSON writes an arbitrary body with the given status.
func ResponseJSON(c *fiber.Ctx, code int, body interface{}) error {
	if code >= http.StatusBadRequest {
		logError(c, code, http.StatusText(code))
	} else {
		logSuccess(c, code, "")
	}
	return c.Status(code).JSON(body)
}

func responseError(c *fiber.Ctx, code int, message string) error {
	if strings.TrimSpace(message) == "" {
		message = http.StatusText(code)
	}

	logError(c, code, message)
	return c.Status(code).JSON(ErrorResponse{Error: message})
}

func ResponseNotFound(c *fiber.Ctx, message string) error {
	return responseError(c, http.StatusNotFound, message)
}

func ResponseUnauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="Authentication Required"`)
	return responseError(c, http.StatusUnauthorized, message)
}

func ResponseBadRequest(c *fiber.Ctx, message string) error {
	return responseError(c, http.StatusBadRequest, message)
}

func ResponseInternalError(c *fiber.Ctx, message string) error {
	return responseError(c, http.StatusInternalServerError, message)
}
