package dto

import "github.com/insightclass/insightclass-api/internal/models"

// SubjectCreateRequest describes the payload for registering a subject.
type SubjectCreateRequest struct {
	Code string `json:"code" validate:"required,min=2"`
	Name string `json:"name" validate:"required,min=2"`
}

// SubjectResponse is the serialized subject representation.
type SubjectResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSubjectResponse converts a model into a DTO.
func NewSubjectResponse(model models.Subject) SubjectResponse {
	return SubjectResponse{Code: model.Code, Name: model.Name}
}

// NewSubjectResponseSlice converts a slice of models into DTOs.
func NewSubjectResponseSlice(subjects []models.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, NewSubjectResponse(subject))
	}
	return out
}

// TeacherCreateRequest describes the payload for registering a teacher and
// the paired login credential.
type TeacherCreateRequest struct {
	Name         string   `json:"name" validate:"required,min=2"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=3"`
	SubjectCodes []string `json:"subjectCodes" validate:"omitempty,dive,min=2"`
}

// TeacherResponse is the serialized teacher representation. Credentials are
// never echoed back.
type TeacherResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	SubjectCodes []string `json:"subjectCodes"`
}

// NewTeacherResponse converts a model into a DTO.
func NewTeacherResponse(model models.Teacher) TeacherResponse {
	codes := model.SubjectCodes
	if codes == nil {
		codes = []string{}
	}
	return TeacherResponse{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		SubjectCodes: codes,
	}
}

// NewTeacherResponseSlice converts a slice of models into DTOs.
func NewTeacherResponseSlice(teachers []models.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		out = append(out, NewTeacherResponse(teacher))
	}
	return out
}

// StudentCreateRequest describes the payload for registering a student and
// the paired login credential.
type StudentCreateRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=3"`
	ClassCode string `json:"classCode" validate:"required,min=1"`
}

// StudentResponse is the serialized student representation.
type StudentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ClassCode string `json:"classCode"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		ClassCode: model.ClassCode,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, NewStudentResponse(student))
	}
	return out
}
