// Package store holds the canonical InsightClass dataset: one snapshot
// document guarded by a single mutation lock and rewritten wholesale on every
// change. Validation failures are reported before any mutation is applied;
// a failed persistence write leaves the in-memory state untouched.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/models"
)

// Store is the authoritative holder of all entities. Deleting a referenced
// subject, teacher or student purges dependent feedback instead of leaving a
// dangling reference; that cascade is policy, not an accident.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	logger  zerolog.Logger
	snap    models.Snapshot

	now   func() time.Time
	newID func(prefix string) string
}

// Open loads the snapshot from the backend, seeding the fixture dataset when
// the backend is empty or holds a document that cannot be decoded.
func Open(ctx context.Context, backend Backend, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		backend: backend,
		logger:  logger.With().Str("component", "store").Logger(),
		now:     time.Now,
		newID:   generateID,
	}

	data, err := backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		return s, s.reseed(ctx)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := validateSnapshotDocument(data); err != nil {
		s.logger.Warn().Err(err).Msg("stored snapshot is malformed, reseeding")
		return s, s.reseed(ctx)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn().Err(err).Msg("stored snapshot failed to decode, reseeding")
		return s, s.reseed(ctx)
	}

	s.snap = snap
	return s, nil
}

func (s *Store) reseed(ctx context.Context) error {
	return s.persist(ctx, Seed())
}

// persist writes the candidate snapshot through the backend and only then
// swaps it in as the current state.
func (s *Store) persist(ctx context.Context, next models.Snapshot) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.snap = next
	return nil
}

func generateID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// ManagerAuthorID is the fixed identity used by manager sessions; managers
// have no directory entity of their own.
const ManagerAuthorID = "gestor-root"

// ManagerDisplayName is the display name recorded for non-anonymous
// manager-authored feedback.
const ManagerDisplayName = "Gestão"

// CreateFeedbackParams carries everything needed to record a feedback entry.
// SubmittedAt is always store-assigned, never caller-supplied.
type CreateFeedbackParams struct {
	AuthorID    string
	AuthorRole  models.Role
	Text        string
	TargetType  models.TargetType
	TargetID    string
	TargetName  string
	IsAnonymous bool
	Label       models.Label
}

// CreateFeedback validates, records and persists a feedback entry. The author
// name is resolved from the author's directory entity unless the feedback is
// anonymous, in which case no author name is stored at all.
func (s *Store) CreateFeedback(ctx context.Context, params CreateFeedbackParams) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimSpace(params.Text)
	if text == "" {
		return models.Feedback{}, fmt.Errorf("%w: feedback text must not be empty", ErrValidation)
	}
	if !params.AuthorRole.Valid() {
		return models.Feedback{}, fmt.Errorf("%w: unknown author role %q", ErrValidation, params.AuthorRole)
	}
	if !params.TargetType.Valid() {
		return models.Feedback{}, fmt.Errorf("%w: unknown target type %q", ErrValidation, params.TargetType)
	}
	if params.Label != "" && !params.Label.Valid() {
		return models.Feedback{}, fmt.Errorf("%w: unknown label %q", ErrValidation, params.Label)
	}

	capability, ok := models.CapabilityFor(params.AuthorRole)
	if !ok {
		return models.Feedback{}, fmt.Errorf("%w: unknown author role %q", ErrValidation, params.AuthorRole)
	}
	if !capability.CanTarget(params.TargetType) {
		return models.Feedback{}, fmt.Errorf("%w: role %q may not send feedback about %q", ErrValidation, params.AuthorRole, params.TargetType)
	}
	if params.IsAnonymous && !capability.AllowAnonymous {
		return models.Feedback{}, fmt.Errorf("%w: role %q may not send anonymous feedback", ErrValidation, params.AuthorRole)
	}

	targetID := strings.TrimSpace(params.TargetID)
	if params.TargetType.RequiresTarget() && targetID == "" {
		return models.Feedback{}, fmt.Errorf("%w: target type %q requires a target id", ErrValidation, params.TargetType)
	}

	authorName, err := s.resolveAuthorName(params.AuthorID, params.AuthorRole)
	if err != nil {
		return models.Feedback{}, err
	}

	targetName, err := s.resolveTargetName(params.TargetType, targetID, params.TargetName)
	if err != nil {
		return models.Feedback{}, err
	}

	feedback := models.Feedback{
		ID:          s.newID("f"),
		AuthorID:    params.AuthorID,
		AuthorRole:  params.AuthorRole,
		Text:        text,
		TargetType:  params.TargetType,
		IsAnonymous: params.IsAnonymous,
		Label:       params.Label,
		SubmittedAt: s.now().UTC(),
	}
	if !params.IsAnonymous {
		feedback.AuthorName = authorName
	}
	if params.TargetType.RequiresTarget() {
		feedback.TargetID = targetID
		feedback.TargetName = targetName
	}

	next := s.snap.Clone()
	next.Feedbacks = append(next.Feedbacks, feedback)
	if err := s.persist(ctx, next); err != nil {
		return models.Feedback{}, err
	}

	return feedback, nil
}

// resolveAuthorName resolves the display name of the author's directory
// entity. Managers have no entity and use a fixed name.
func (s *Store) resolveAuthorName(authorID string, role models.Role) (string, error) {
	switch role {
	case models.RoleStudent:
		for _, student := range s.snap.Students {
			if student.ID == authorID {
				return student.Name, nil
			}
		}
	case models.RoleTeacher:
		for _, teacher := range s.snap.Teachers {
			if teacher.ID == authorID {
				return teacher.Name, nil
			}
		}
	case models.RoleManager:
		return ManagerDisplayName, nil
	}
	return "", fmt.Errorf("%w: author %q (%s) does not exist", ErrUnknownReference, authorID, role)
}

// resolveTargetName resolves the denormalized display name for the target.
// Class targets carry a free-text class code with no entity behind it, so the
// caller-supplied name (or the code itself) is kept as-is.
func (s *Store) resolveTargetName(targetType models.TargetType, targetID, fallback string) (string, error) {
	switch targetType {
	case models.TargetTeacher:
		for _, teacher := range s.snap.Teachers {
			if teacher.ID == targetID {
				return teacher.Name, nil
			}
		}
	case models.TargetStudent:
		for _, student := range s.snap.Students {
			if student.ID == targetID {
				return student.Name, nil
			}
		}
	case models.TargetSubject:
		for _, subject := range s.snap.Subjects {
			if subject.Code == targetID {
				return subject.Name, nil
			}
		}
	case models.TargetClass:
		if name := strings.TrimSpace(fallback); name != "" {
			return name, nil
		}
		return targetID, nil
	case models.TargetAdministration:
		return "", nil
	}
	return "", fmt.Errorf("%w: target %q (%s) does not exist", ErrUnknownReference, targetID, targetType)
}

// FeedbackFilter selects feedback records. All supplied fields must match
// exactly; zero values are ignored. Limit truncates the sorted result.
type FeedbackFilter struct {
	AuthorID   string
	AuthorRole models.Role
	TargetID   string
	TargetType models.TargetType
	Limit      int
}

func (f FeedbackFilter) matches(feedback models.Feedback) bool {
	if f.AuthorID != "" && feedback.AuthorID != f.AuthorID {
		return false
	}
	if f.AuthorRole != "" && feedback.AuthorRole != f.AuthorRole {
		return false
	}
	if f.TargetID != "" && feedback.TargetID != f.TargetID {
		return false
	}
	if f.TargetType != "" && feedback.TargetType != f.TargetType {
		return false
	}
	return true
}

// ListFeedback returns matching records, most recent first. Ties in
// submission time keep a stable relative order.
func (s *Store) ListFeedback(filter FeedbackFilter) []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Feedback, 0, len(s.snap.Feedbacks))
	for _, feedback := range s.snap.Feedbacks {
		if filter.matches(feedback) {
			results = append(results, feedback)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SubmittedAt.After(results[j].SubmittedAt)
	})

	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}
	return results
}

// AddSubject registers a subject under its uppercase code.
func (s *Store) AddSubject(ctx context.Context, code, name string) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return models.Subject{}, fmt.Errorf("%w: subject code and name are required", ErrValidation)
	}
	for _, subject := range s.snap.Subjects {
		if subject.Code == code {
			return models.Subject{}, fmt.Errorf("%w: subject code %q already exists", ErrDuplicateKey, code)
		}
	}

	subject := models.Subject{Code: code, Name: name}
	next := s.snap.Clone()
	next.Subjects = append(next.Subjects, subject)
	if err := s.persist(ctx, next); err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

// RemoveSubject deletes a subject, strips its code from every teacher and
// purges feedback targeting it. Removing an unknown code is a no-op.
func (s *Store) RemoveSubject(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code = strings.ToUpper(strings.TrimSpace(code))
	if !s.subjectExists(code) {
		return nil
	}

	next := s.snap.Clone()
	next.Subjects = filterSlice(next.Subjects, func(subject models.Subject) bool {
		return subject.Code != code
	})
	for i := range next.Teachers {
		next.Teachers[i].SubjectCodes = filterSlice(next.Teachers[i].SubjectCodes, func(c string) bool {
			return c != code
		})
	}
	next.Feedbacks = filterSlice(next.Feedbacks, func(feedback models.Feedback) bool {
		return !(feedback.TargetType == models.TargetSubject && feedback.TargetID == code)
	})
	return s.persist(ctx, next)
}

// AddTeacher registers a teacher together with the paired login credential.
// Nothing is stored when any subject code is unknown or the email is taken.
func (s *Store) AddTeacher(ctx context.Context, name string, subjectCodes []string, email, password string) (models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return models.Teacher{}, fmt.Errorf("%w: teacher name, email and password are required", ErrValidation)
	}
	for _, code := range subjectCodes {
		if !s.subjectExists(code) {
			return models.Teacher{}, fmt.Errorf("%w: subject %q does not exist", ErrUnknownReference, code)
		}
	}
	if s.usernameTaken(email) {
		return models.Teacher{}, fmt.Errorf("%w: email %q is already in use", ErrDuplicateKey, email)
	}

	codes := make([]string, len(subjectCodes))
	copy(codes, subjectCodes)
	teacher := models.Teacher{
		ID:           s.newID("t"),
		Name:         name,
		Email:        email,
		SubjectCodes: codes,
	}

	next := s.snap.Clone()
	next.Teachers = append(next.Teachers, teacher)
	next.Users = append(next.Users, models.UserCredential{Username: email, Password: password, Role: models.RoleTeacher})
	if err := s.persist(ctx, next); err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}

// RemoveTeacher deletes a teacher, the paired credential and every feedback
// record authored by or targeting the teacher. Unknown ids are a no-op.
func (s *Store) RemoveTeacher(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var teacher models.Teacher
	found := false
	for _, t := range s.snap.Teachers {
		if t.ID == id {
			teacher = t
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	next := s.snap.Clone()
	next.Teachers = filterSlice(next.Teachers, func(t models.Teacher) bool {
		return t.ID != id
	})
	next.Users = filterSlice(next.Users, func(user models.UserCredential) bool {
		return user.Username != teacher.Email
	})
	next.Feedbacks = filterSlice(next.Feedbacks, func(feedback models.Feedback) bool {
		if feedback.AuthorID == id && feedback.AuthorRole == models.RoleTeacher {
			return false
		}
		if feedback.TargetType == models.TargetTeacher && feedback.TargetID == id {
			return false
		}
		return true
	})
	return s.persist(ctx, next)
}

// AddStudent registers a student together with the paired login credential.
func (s *Store) AddStudent(ctx context.Context, name, email, password, classCode string) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	classCode = strings.TrimSpace(classCode)
	if name == "" || email == "" || password == "" || classCode == "" {
		return models.Student{}, fmt.Errorf("%w: student name, email, password and class code are required", ErrValidation)
	}
	if s.usernameTaken(email) {
		return models.Student{}, fmt.Errorf("%w: email %q is already in use", ErrDuplicateKey, email)
	}

	student := models.Student{
		ID:        s.newID("s"),
		Name:      name,
		Email:     email,
		ClassCode: classCode,
	}

	next := s.snap.Clone()
	next.Students = append(next.Students, student)
	next.Users = append(next.Users, models.UserCredential{Username: email, Password: password, Role: models.RoleStudent})
	if err := s.persist(ctx, next); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// RemoveStudent mirrors RemoveTeacher for students.
func (s *Store) RemoveStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var student models.Student
	found := false
	for _, st := range s.snap.Students {
		if st.ID == id {
			student = st
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	next := s.snap.Clone()
	next.Students = filterSlice(next.Students, func(st models.Student) bool {
		return st.ID != id
	})
	next.Users = filterSlice(next.Users, func(user models.UserCredential) bool {
		return user.Username != student.Email
	})
	next.Feedbacks = filterSlice(next.Feedbacks, func(feedback models.Feedback) bool {
		if feedback.AuthorID == id && feedback.AuthorRole == models.RoleStudent {
			return false
		}
		if feedback.TargetType == models.TargetStudent && feedback.TargetID == id {
			return false
		}
		return true
	})
	return s.persist(ctx, next)
}

// Authenticate performs an exact-match credential lookup. A miss returns
// false, never an error, so the caller can report "invalid credentials"
// without revealing which field was wrong.
func (s *Store) Authenticate(username, password string) (models.UserCredential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.snap.Users {
		if user.Username == username && user.Password == password {
			return user, true
		}
	}
	return models.UserCredential{}, false
}

// Subjects returns all subjects.
func (s *Store) Subjects() []models.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Subject, len(s.snap.Subjects))
	copy(out, s.snap.Subjects)
	return out
}

// Teachers returns all teachers.
func (s *Store) Teachers() []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone().Teachers
}

// Students returns all students.
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, len(s.snap.Students))
	copy(out, s.snap.Students)
	return out
}

// TeacherByEmail finds the teacher entity bound to a credential username.
func (s *Store) TeacherByEmail(email string) (models.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, teacher := range s.snap.Teachers {
		if teacher.Email == email {
			return teacher, true
		}
	}
	return models.Teacher{}, false
}

// StudentByEmail finds the student entity bound to a credential username.
func (s *Store) StudentByEmail(email string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, student := range s.snap.Students {
		if student.Email == email {
			return student, true
		}
	}
	return models.Student{}, false
}

func (s *Store) subjectExists(code string) bool {
	for _, subject := range s.snap.Subjects {
		if subject.Code == code {
			return true
		}
	}
	return false
}

func (s *Store) usernameTaken(username string) bool {
	for _, user := range s.snap.Users {
		if user.Username == username {
			return true
		}
	}
	return false
}

func filterSlice[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, item := range in {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
