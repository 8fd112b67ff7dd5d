package dto

import (
	"github.com/insightclass/insightclass-api/internal/models"
)

// The legacy wire protocol names two tokens differently from the internal
// vocabulary: the manager role travels as "coordenador" and the subject
// target as "curso". The mapping lives here, at the transport boundary, and
// nowhere else.
const (
	wireRoleManager   = "coordenador"
	wireTargetSubject = "curso"
)

// RoleToWire converts an internal role to its legacy wire token.
func RoleToWire(role models.Role) string {
	if role == models.RoleManager {
		return wireRoleManager
	}
	return string(role)
}

// RoleFromWire converts a legacy wire role token to the internal role.
func RoleFromWire(token string) (models.Role, bool) {
	if token == wireRoleManager {
		return models.RoleManager, true
	}
	role := models.Role(token)
	if role.Valid() {
		return role, true
	}
	return "", false
}

// TargetToWire converts an internal target type to its legacy wire token.
func TargetToWire(target models.TargetType) string {
	if target == models.TargetSubject {
		return wireTargetSubject
	}
	return string(target)
}

// TargetFromWire converts a legacy wire target token to the internal type.
func TargetFromWire(token string) (models.TargetType, bool) {
	if token == wireTargetSubject {
		return models.TargetSubject, true
	}
	target := models.TargetType(token)
	if target.Valid() {
		return target, true
	}
	return "", false
}

// WireFeedbackRequest is the legacy POST /feedback body.
type WireFeedbackRequest struct {
	Text        string `json:"texto" validate:"required,min=1"`
	TargetType  string `json:"target_type" validate:"required"`
	CourseCode  string `json:"course_code" validate:"omitempty"`
	TeacherID   string `json:"teacher_id" validate:"omitempty"`
	IsAnonymous bool   `json:"is_anonymous"`
	Label       string `json:"label" validate:"omitempty,oneof=positivo neutro negativo"`
}

// WireFeedbackItem is a feedback record as serialized on the legacy wire.
type WireFeedbackItem struct {
	ID          string `json:"id"`
	Text        string `json:"texto"`
	AuthorRole  string `json:"author_role"`
	AuthorName  string `json:"author_name,omitempty"`
	TargetType  string `json:"target_type"`
	CourseCode  string `json:"course_code,omitempty"`
	TeacherID   string `json:"teacher_id,omitempty"`
	IsAnonymous bool   `json:"is_anonymous"`
	Label       string `json:"label,omitempty"`
	SubmittedAt string `json:"submitted_at"`
}

// WireFeedbackList is the legacy GET /feedback response envelope.
type WireFeedbackList struct {
	Items []WireFeedbackItem `json:"items"`
}

// NewWireFeedbackItem converts an internal response into its legacy wire shape.
func NewWireFeedbackItem(feedback FeedbackResponse) WireFeedbackItem {
	item := WireFeedbackItem{
		ID:          feedback.ID,
		Text:        feedback.Text,
		AuthorRole:  RoleToWire(models.Role(feedback.AuthorRole)),
		AuthorName:  feedback.AuthorName,
		TargetType:  TargetToWire(models.TargetType(feedback.TargetType)),
		IsAnonymous: feedback.IsAnonymous,
		Label:       feedback.Label,
		SubmittedAt: feedback.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	switch models.TargetType(feedback.TargetType) {
	case models.TargetSubject:
		item.CourseCode = feedback.TargetID
	case models.TargetTeacher:
		item.TeacherID = feedback.TargetID
	}
	return item
}

// NewWireFeedbackList converts a listing into the legacy envelope.
func NewWireFeedbackList(feedbacks []FeedbackResponse) WireFeedbackList {
	items := make([]WireFeedbackItem, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		items = append(items, NewWireFeedbackItem(feedback))
	}
	return WireFeedbackList{Items: items}
}
