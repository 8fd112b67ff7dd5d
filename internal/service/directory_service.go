package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/store"
)

// DirectoryService manages the reference collections: subjects, teachers and
// students. Removals cascade through the store and are idempotent.
type DirectoryService interface {
	ListSubjects() []dto.SubjectResponse
	AddSubject(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error)
	RemoveSubject(ctx context.Context, code string) error

	ListTeachers() []dto.TeacherResponse
	AddTeacher(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error)
	RemoveTeacher(ctx context.Context, id string) error

	ListStudents() []dto.StudentResponse
	AddStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	RemoveStudent(ctx context.Context, id string) error
}

type directoryService struct {
	store     *store.Store
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDirectoryService builds a directory service.
func NewDirectoryService(st *store.Store, validate *validator.Validate, logger zerolog.Logger) DirectoryService {
	return &directoryService{
		store:     st,
		validator: validate,
		logger:    logger.With().Str("component", "directory_service").Logger(),
	}
}

func (s *directoryService) ListSubjects() []dto.SubjectResponse {
	return dto.NewSubjectResponseSlice(s.store.Subjects())
}

func (s *directoryService) AddSubject(ctx context.Context, payload dto.SubjectCreateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject, err := s.store.AddSubject(ctx, payload.Code, payload.Name)
	if err != nil {
		return dto.SubjectResponse{}, err
	}

	s.logger.Info().Str("subject_code", subject.Code).Msg("subject added")
	return dto.NewSubjectResponse(subject), nil
}

func (s *directoryService) RemoveSubject(ctx context.Context, code string) error {
	if err := s.store.RemoveSubject(ctx, code); err != nil {
		return err
	}
	s.logger.Info().Str("subject_code", code).Msg("subject removed")
	return nil
}

func (s *directoryService) ListTeachers() []dto.TeacherResponse {
	return dto.NewTeacherResponseSlice(s.store.Teachers())
}

func (s *directoryService) AddTeacher(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher, err := s.store.AddTeacher(ctx, payload.Name, payload.SubjectCodes, payload.Email, payload.Password)
	if err != nil {
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Str("teacher_id", teacher.ID).Msg("teacher added")
	return dto.NewTeacherResponse(teacher), nil
}

func (s *directoryService) RemoveTeacher(ctx context.Context, id string) error {
	if err := s.store.RemoveTeacher(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("teacher_id", id).Msg("teacher removed")
	return nil
}

func (s *directoryService) ListStudents() []dto.StudentResponse {
	return dto.NewStudentResponseSlice(s.store.Students())
}

func (s *directoryService) AddStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.store.AddStudent(ctx, payload.Name, payload.Email, payload.Password, payload.ClassCode)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Str("student_id", student.ID).Msg("student added")
	return dto.NewStudentResponse(student), nil
}

func (s *directoryService) RemoveStudent(ctx context.Context, id string) error {
	if err := s.store.RemoveStudent(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("student_id", id).Msg("student removed")
	return nil
}
