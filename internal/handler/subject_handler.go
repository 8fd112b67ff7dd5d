package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/utils"
)

// SubjectHandler wires subject directory endpoints.
type SubjectHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(service service.DirectoryService, logger zerolog.Logger) *SubjectHandler {
	return &SubjectHandler{
		service: service,
		logger:  logger.With().Str("component", "subject_handler").Logger(),
	}
}

// Register attaches read endpoints; RegisterManage attaches manager-only mutations.
func (h *SubjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterManage attaches the mutating endpoints. Extra handlers run on the
// mutating routes only, leaving the listing open to every session.
func (h *SubjectHandler) RegisterManage(router fiber.Router, pre ...fiber.Handler) {
	router.Post("", append(pre, h.create)...)
	router.Delete("/:code", append(pre, h.remove)...)
}

func (h *SubjectHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "subjects retrieved", h.service.ListSubjects())
}

func (h *SubjectHandler) create(c *fiber.Ctx) error {
	var payload dto.SubjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	subject, err := h.service.AddSubject(c.Context(), payload)
	if err != nil {
		return sendStoreError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "subject created", subject)
}

// remove tolerates unknown codes: deleting what is already gone succeeds.
func (h *SubjectHandler) remove(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := h.service.RemoveSubject(c.Context(), code); err != nil {
		return sendStoreError(c, err)
	}

	return utils.SendSuccess(c, "subject removed", fiber.Map{"code": code})
}
