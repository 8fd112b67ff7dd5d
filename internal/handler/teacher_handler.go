package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/utils"
)

// TeacherHandler wires teacher directory endpoints.
type TeacherHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(service service.DirectoryService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches read endpoints.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterManage attaches the mutating endpoints on their routes only.
func (h *TeacherHandler) RegisterManage(router fiber.Router, pre ...fiber.Handler) {
	router.Post("", append(pre, h.create)...)
	router.Delete("/:id", append(pre, h.remove)...)
}

func (h *TeacherHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "teachers retrieved", h.service.ListTeachers())
}

func (h *TeacherHandler) create(c *fiber.Ctx) error {
	var payload dto.TeacherCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	teacher, err := h.service.AddTeacher(c.Context(), payload)
	if err != nil {
		return sendStoreError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "teacher created", teacher)
}

func (h *TeacherHandler) remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.RemoveTeacher(c.Context(), id); err != nil {
		return sendStoreError(c, err)
	}

	return utils.SendSuccess(c, "teacher removed", fiber.Map{"id": id})
}
