package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/utils"
)

// AuthHandler wires the login endpoint.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth endpoints to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Login(payload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrors):
			return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
		case errors.Is(err, service.ErrRoleMismatch):
			return utils.SendError(c, fiber.StatusUnauthorized, "credential does not match the selected role")
		default:
			h.logger.Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "login succeeded", response)
}
