// Package response renders the JSON envelope every endpoint replies
// with. Success and failure share one shape so clients branch on the
// success flag alone.
package response

import "github.com/gofiber/fiber/v2"

// Envelope is the wire shape of every API reply
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success replies 200 with a message and an optional payload
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Envelope{Success: true, Message: message, Data: data})
}

// Created replies 201 for a newly created resource
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Error replies with the given status and an error message
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Error: message})
}

// The helpers below name the statuses the handlers map domain errors
// onto: invalid input, missing or bad credentials, a role the caller
// does not hold, an unknown id, and an already-decided request.

// BadRequest replies 400
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized replies 401
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden replies 403
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound replies 404
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict replies 409
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError replies 500
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
