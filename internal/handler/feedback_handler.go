package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/models"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/store"
	"github.com/insightclass/insightclass-api/internal/utils"
)

// FeedbackHandler wires the versioned feedback endpoints.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register attaches feedback endpoints to the router group.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/summary", h.summary)
}

func (h *FeedbackHandler) create(c *fiber.Ctx) error {
	var payload dto.FeedbackCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	author := authorFromContext(c)
	if author.ID == "" || author.Role == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "session identity missing")
	}

	feedback, err := h.service.Submit(c.Context(), author, payload)
	if err != nil {
		return sendStoreError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback submitted", feedback)
}

func (h *FeedbackHandler) list(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if !callerMaySeeListing(c, filter) {
		return utils.SendError(c, fiber.StatusForbidden, "listing must be scoped to your own feedback")
	}

	items := h.service.List(filter)
	return utils.SendSuccess(c, "feedback retrieved", dto.FeedbackListResponse{Items: items})
}

func (h *FeedbackHandler) summary(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if !callerMaySeeListing(c, filter) {
		return utils.SendError(c, fiber.StatusForbidden, "summary must be scoped to your own feedback")
	}

	return utils.SendSuccess(c, "feedback summary computed", h.service.Summary(filter))
}

func (h *FeedbackHandler) filterFromQuery(c *fiber.Ctx) (store.FeedbackFilter, error) {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return store.FeedbackFilter{}, fiber.NewError(fiber.StatusBadRequest, "invalid limit")
	}

	return store.FeedbackFilter{
		AuthorID:   c.Query("author_id"),
		AuthorRole: models.Role(c.Query("author_role")),
		TargetID:   c.Query("target_id"),
		TargetType: models.TargetType(c.Query("target_type")),
		Limit:      limit,
	}, nil
}

// callerMaySeeListing allows managers to browse everything; other roles must
// scope the listing to feedback they authored or feedback addressed to them.
func callerMaySeeListing(c *fiber.Ctx, filter store.FeedbackFilter) bool {
	role := userRoleFromContext(c)
	if role == models.RoleManager {
		return true
	}

	// Teachers may browse feedback about a specific subject they review.
	if role == models.RoleTeacher && filter.TargetType == models.TargetSubject && filter.TargetID != "" {
		return true
	}

	callerID := userIDFromContext(c)
	if callerID == "" {
		return false
	}
	return filter.AuthorID == callerID || filter.TargetID == callerID
}
