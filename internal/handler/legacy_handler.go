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

// LegacyFeedbackHandler serves the pre-versioned /feedback endpoints kept for
// wire compatibility with the original front-end. On this surface the manager
// role travels as "coordenador" and the subject target as "curso"; the
// mapping never leaves this handler.
type LegacyFeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewLegacyFeedbackHandler constructs the handler.
func NewLegacyFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *LegacyFeedbackHandler {
	return &LegacyFeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "legacy_feedback_handler").Logger(),
	}
}

// RegisterSubmit attaches the legacy submission endpoint. Extra handlers run
// on the POST route only, so a rate limiter here never throttles the listing.
func (h *LegacyFeedbackHandler) RegisterSubmit(router fiber.Router, pre ...fiber.Handler) {
	router.Post("", append(pre, h.submit)...)
}

// RegisterList attaches the legacy listing endpoint.
func (h *LegacyFeedbackHandler) RegisterList(router fiber.Router, pre ...fiber.Handler) {
	router.Get("", append(pre, h.list)...)
}

func (h *LegacyFeedbackHandler) submit(c *fiber.Ctx) error {
	var payload dto.WireFeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	author := authorFromContext(c)
	if author.ID == "" || author.Role == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "session identity missing")
	}

	targetType, ok := dto.TargetFromWire(payload.TargetType)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "unknown target type")
	}

	request := dto.FeedbackCreateRequest{
		Text:        payload.Text,
		TargetType:  string(targetType),
		IsAnonymous: payload.IsAnonymous,
		Label:       payload.Label,
	}
	switch targetType {
	case models.TargetTeacher:
		request.TargetID = payload.TeacherID
	case models.TargetSubject:
		request.TargetID = payload.CourseCode
	default:
		request.TargetID = payload.CourseCode
	}

	feedback, err := h.service.Submit(c.Context(), author, request)
	if err != nil {
		return sendStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewWireFeedbackItem(feedback))
}

func (h *LegacyFeedbackHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	filter := store.FeedbackFilter{Limit: limit}

	if courseCode := c.Query("course_code"); courseCode != "" {
		filter.TargetType = models.TargetSubject
		filter.TargetID = courseCode
	}
	if wireRole := c.Query("author_role"); wireRole != "" {
		role, ok := dto.RoleFromWire(wireRole)
		if !ok {
			return utils.SendError(c, fiber.StatusBadRequest, "unknown author role")
		}
		filter.AuthorRole = role
	}

	return c.JSON(dto.NewWireFeedbackList(h.service.List(filter)))
}
