package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/utils"
)

// StudentHandler wires student directory endpoints.
type StudentHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.DirectoryService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches read endpoints.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterManage attaches the mutating endpoints on their routes only.
func (h *StudentHandler) RegisterManage(router fiber.Router, pre ...fiber.Handler) {
	router.Post("", append(pre, h.create)...)
	router.Delete("/:id", append(pre, h.remove)...)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "students retrieved", h.service.ListStudents())
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.service.AddStudent(c.Context(), payload)
	if err != nil {
		return sendStoreError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", student)
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.RemoveStudent(c.Context(), id); err != nil {
		return sendStoreError(c, err)
	}

	return utils.SendSuccess(c, "student removed", fiber.Map{"id": id})
}
