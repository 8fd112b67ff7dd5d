package dto

// LoginRequest describes the credential triple submitted at login. The role
// is part of the request so a valid credential used under the wrong view is
// rejected without revealing which field was wrong.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=aluno professor gestor"`
}

// SessionResponse is the role-scoped identity established by a login.
type SessionResponse struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	Name         string   `json:"name,omitempty"`
	ClassCode    string   `json:"classCode,omitempty"`
	SubjectCodes []string `json:"subjectCodes,omitempty"`
}

// LoginResponse carries the signed token and the established session.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}
