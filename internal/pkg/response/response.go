package response

import (
	"github.com/gofiber/fiber/v2"
)

// Body is the canonical single-item envelope.
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageBody is the canonical paginated envelope. Every list endpoint uses
// this shape; the item type varies, the wrapper never does.
type PageBody struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
	TotalItems int64       `json:"total_items"`
	IsPrevious bool        `json:"is_previous"`
	IsNext     bool        `json:"is_next"`
}

// Success sends 200 with the standard success envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Body{Success: true, Message: message, Data: data})
}

// Created sends 201 with the standard success envelope.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Body{Success: true, Message: message, Data: data})
}

// Error sends the standard error envelope with the given status code.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(Body{Success: false, Message: message})
}

// Unauthorized sends 401 in the standard error shape. Used by the auth
// middleware so all errors look alike.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}
