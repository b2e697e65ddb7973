package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is an error body. Code is stable, clients may branch on it.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Page is one window of a list.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func ErrorCode(c *fiber.Ctx, status int, code, message string) error {
	return JSON(c, status, ErrorResponse{Message: message, Code: code})
}

func List[T any](c *fiber.Ctx, items []T, total, limit, offset int) error {
	if items == nil {
		items = []T{}
	}
	return JSON(c, fiber.StatusOK, Page[T]{Items: items, Total: total, Limit: limit, Offset: offset})
}
