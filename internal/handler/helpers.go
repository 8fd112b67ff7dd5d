package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/insightclass/insightclass-api/internal/models"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/store"
	"github.com/insightclass/insightclass-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func userIDFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func userRoleFromContext(c *fiber.Ctx) models.Role {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return models.Role(strings.ToLower(strings.TrimSpace(role)))
		}
	}
	return ""
}

func authorFromContext(c *fiber.Ctx) service.Author {
	return service.Author{
		ID:   userIDFromContext(c),
		Role: userRoleFromContext(c),
	}
}

// sendStoreError maps the store's error taxonomy to HTTP statuses. Validation
// and reference failures carry their message; everything else stays opaque.
func sendStoreError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.Is(err, store.ErrValidation):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateKey):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrUnknownReference):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrPersistence):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
