package middleware

import (
	"lxp-core/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidatePagination validates limit/offset query parameters.
func (vm *ValidationMiddleware) ValidatePagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		offset := c.QueryInt("offset", 0)

		if errors := vm.validator.ValidatePagination(limit, offset); len(errors) > 0 {
			return errors
		}

		c.Locals("validated_limit", limit)
		c.Locals("validated_offset", offset)
		return c.Next()
	}
}
