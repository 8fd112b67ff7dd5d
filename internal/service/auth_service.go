package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/models"
	"github.com/insightclass/insightclass-api/internal/store"
)

var (
	// ErrInvalidCredentials indicates no credential matched; which field was
	// wrong is deliberately not revealed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleMismatch indicates a valid credential used under the wrong role view.
	ErrRoleMismatch = errors.New("credential does not match the selected role")
)

// AuthService authenticates credential triples and issues session tokens.
type AuthService interface {
	Login(payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	store     *store.Store
	validator *validator.Validate
	secret    []byte
	expiry    time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds an auth service signing HS256 tokens with the secret.
func NewAuthService(st *store.Store, validate *validator.Validate, secret string, expiry time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		store:     st,
		validator: validate,
		secret:    []byte(secret),
		expiry:    expiry,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	credential, ok := s.store.Authenticate(payload.Username, payload.Password)
	if !ok {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}
	if credential.Role != models.Role(payload.Role) {
		return dto.LoginResponse{}, ErrRoleMismatch
	}

	session := s.resolveSession(credential)
	token, err := s.signToken(session)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("username", session.Username).Str("role", session.Role).Msg("login succeeded")

	return dto.LoginResponse{Token: token, Session: session}, nil
}

// resolveSession binds the credential to its role profile. Managers have no
// directory entity and use a fixed identity.
func (s *authService) resolveSession(credential models.UserCredential) dto.SessionResponse {
	session := dto.SessionResponse{
		Username: credential.Username,
		Role:     string(credential.Role),
	}

	switch credential.Role {
	case models.RoleStudent:
		if student, ok := s.store.StudentByEmail(credential.Username); ok {
			session.ID = student.ID
			session.Name = student.Name
			session.ClassCode = student.ClassCode
		}
	case models.RoleTeacher:
		if teacher, ok := s.store.TeacherByEmail(credential.Username); ok {
			session.ID = teacher.ID
			session.Name = teacher.Name
			session.SubjectCodes = teacher.SubjectCodes
		}
	case models.RoleManager:
		session.ID = store.ManagerAuthorID
		session.Name = store.ManagerDisplayName
	}

	return session
}

func (s *authService) signToken(session dto.SessionResponse) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      session.ID,
		"username": session.Username,
		"role":     session.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}
