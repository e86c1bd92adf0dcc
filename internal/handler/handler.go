// Package handler holds the fiber handlers of the HTTP JSON API.
package handler

import (
	"aptilab/internal/domain"
	"aptilab/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// bindJSON decodes the request body into out and validates it.
func bindJSON(c *fiber.Ctx, v *validation.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
	}
	return v.Struct(out)
}
