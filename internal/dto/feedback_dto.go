package dto

import (
	"time"

	"github.com/insightclass/insightclass-api/internal/models"
)

// FeedbackCreateRequest describes the payload for submitting feedback. The
// author identity always comes from the session token, never from the body.
type FeedbackCreateRequest struct {
	Text        string `json:"text" validate:"required,min=1"`
	TargetType  string `json:"target_type" validate:"required,oneof=professor aluno turma materia coordenacao"`
	TargetID    string `json:"target_id" validate:"omitempty"`
	TargetName  string `json:"target_name" validate:"omitempty"`
	IsAnonymous bool   `json:"is_anonymous"`
	Label       string `json:"label" validate:"omitempty,oneof=positivo neutro negativo"`
}

// FeedbackResponse is the serialized representation returned to API clients.
// AuthorName is omitted entirely for anonymous feedback.
type FeedbackResponse struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	AuthorRole  string    `json:"author_role"`
	AuthorName  string    `json:"author_name,omitempty"`
	Text        string    `json:"text"`
	TargetType  string    `json:"target_type"`
	TargetID    string    `json:"target_id,omitempty"`
	TargetName  string    `json:"target_name,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	Label       string    `json:"label,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:          model.ID,
		AuthorID:    model.AuthorID,
		AuthorRole:  string(model.AuthorRole),
		AuthorName:  model.AuthorName,
		Text:        model.Text,
		TargetType:  string(model.TargetType),
		TargetID:    model.TargetID,
		TargetName:  model.TargetName,
		IsAnonymous: model.IsAnonymous,
		Label:       string(model.Label),
		SubmittedAt: model.SubmittedAt,
	}
}

// NewFeedbackResponseSlice converts a slice of models into DTOs.
func NewFeedbackResponseSlice(feedbacks []models.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		out = append(out, NewFeedbackResponse(feedback))
	}
	return out
}

// FeedbackListResponse wraps a listing in an items envelope.
type FeedbackListResponse struct {
	Items []FeedbackResponse `json:"items"`
}

// FeedbackSummaryResponse carries per-label counts for a filtered listing.
type FeedbackSummaryResponse struct {
	Total    int `json:"total"`
	Positive int `json:"positivo"`
	Neutral  int `json:"neutro"`
	Negative int `json:"negativo"`
}

// NewFeedbackSummaryResponse tallies labels over a listing.
func NewFeedbackSummaryResponse(feedbacks []models.Feedback) FeedbackSummaryResponse {
	summary := FeedbackSummaryResponse{Total: len(feedbacks)}
	for _, feedback := range feedbacks {
		switch feedback.Label {
		case models.LabelPositive:
			summary.Positive++
		case models.LabelNeutral:
			summary.Neutral++
		case models.LabelNegative:
			summary.Negative++
		}
	}
	return summary
}
