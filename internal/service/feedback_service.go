package service

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/models"
	"github.com/insightclass/insightclass-api/internal/observability"
	"github.com/insightclass/insightclass-api/internal/store"
	"github.com/insightclass/insightclass-api/pkg/sentiment"
)

// Author is the session identity submitting a feedback entry.
type Author struct {
	ID   string
	Role models.Role
}

// FeedbackService exposes the feedback use cases.
type FeedbackService interface {
	Submit(ctx context.Context, author Author, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	List(filter store.FeedbackFilter) []dto.FeedbackResponse
	Summary(filter store.FeedbackFilter) dto.FeedbackSummaryResponse
}

type feedbackService struct {
	store      *store.Store
	validator  *validator.Validate
	classifier sentiment.Classifier
	feed       *FeedbackFeed
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

// NewFeedbackService builds a feedback service. The classifier and feed are
// optional; nil disables auto-labeling or live fan-out respectively.
func NewFeedbackService(st *store.Store, validate *validator.Validate, classifier sentiment.Classifier, feed *FeedbackFeed, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		store:      st,
		validator:  validate,
		classifier: classifier,
		feed:       feed,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "feedback_service").Logger(),
	}
}

var collapseWhitespace = regexp.MustCompile(`\s+`)

func (s *feedbackService) cleanText(text string) string {
	stripped := html.UnescapeString(s.sanitizer.Sanitize(text))
	return strings.TrimSpace(collapseWhitespace.ReplaceAllString(stripped, " "))
}

func (s *feedbackService) Submit(ctx context.Context, author Author, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	params := store.CreateFeedbackParams{
		AuthorID:    author.ID,
		AuthorRole:  author.Role,
		Text:        s.cleanText(payload.Text),
		TargetType:  models.TargetType(payload.TargetType),
		TargetID:    payload.TargetID,
		TargetName:  payload.TargetName,
		IsAnonymous: payload.IsAnonymous,
		Label:       models.Label(payload.Label),
	}

	if params.Label == "" && s.classifier != nil {
		params.Label = s.classify(ctx, params)
	}

	feedback, err := s.store.CreateFeedback(ctx, params)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().
		Str("feedback_id", feedback.ID).
		Str("author_role", string(feedback.AuthorRole)).
		Str("target_type", string(feedback.TargetType)).
		Msg("feedback submitted")
	observability.FeedbackCreated().WithLabelValues(string(feedback.AuthorRole), string(feedback.Label)).Inc()

	response := dto.NewFeedbackResponse(feedback)
	if s.feed != nil {
		s.feed.Publish(ctx, response)
	}
	return response, nil
}

// classify asks the sentiment model for a label. A feedback is never rejected
// because labeling failed; the record is simply stored without a label.
// The model API speaks the legacy wire vocabulary, so role and target are
// mapped before the call.
func (s *feedbackService) classify(ctx context.Context, params store.CreateFeedbackParams) models.Label {
	courseCode := ""
	if params.TargetType == models.TargetSubject {
		courseCode = params.TargetID
	}

	result, err := s.classifier.Classify(ctx, sentiment.Input{
		Text:       params.Text,
		AuthorRole: dto.RoleToWire(params.AuthorRole),
		TargetType: dto.TargetToWire(params.TargetType),
		CourseCode: courseCode,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("sentiment classification failed, storing without label")
		return ""
	}

	return models.Label(result.Label)
}

func (s *feedbackService) List(filter store.FeedbackFilter) []dto.FeedbackResponse {
	return dto.NewFeedbackResponseSlice(s.store.ListFeedback(filter))
}

func (s *feedbackService) Summary(filter store.FeedbackFilter) dto.FeedbackSummaryResponse {
	return dto.NewFeedbackSummaryResponse(s.store.ListFeedback(filter))
}
