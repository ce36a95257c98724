package response

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with one of two envelopes: a success payload
// or a flat error message.

type SuccessEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type FailureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(FailureEnvelope{
		Success: false,
		Error:   message,
	})
}

func ServiceError(c *fiber.Ctx, message string) error {
	return Failure(c, fiber.StatusInternalServerError, message)
}

func RateLimited(c *fiber.Ctx) error {
	return Failure(c, fiber.StatusTooManyRequests, "Rate limit exceeded")
}
