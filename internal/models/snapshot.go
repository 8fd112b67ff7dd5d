package models

import "time"

// Subject is a course taught at the school, identified by its uppercase code.
type Subject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Teacher is a member of staff with credentials and a set of taught subjects.
type Teacher struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	SubjectCodes []string `json:"subjectCodes"`
}

// Student is an enrolled learner bound to a free-text class code.
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ClassCode string `json:"classCode"`
}

// UserCredential is the sole authentication record for an account.
// Passwords are compared verbatim; the store never hashes them.
type UserCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Feedback is a free-text feedback record tagged with an optional sentiment label.
// AuthorName is absent (not merely hidden) when the feedback is anonymous.
type Feedback struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	AuthorRole  Role       `json:"author_role"`
	AuthorName  string     `json:"author_name,omitempty"`
	Text        string     `json:"text"`
	TargetType  TargetType `json:"target_type"`
	TargetID    string     `json:"target_id,omitempty"`
	TargetName  string     `json:"target_name,omitempty"`
	IsAnonymous bool       `json:"is_anonymous"`
	Label       Label      `json:"label,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// Snapshot is the whole dataset as persisted: one document, rewritten wholesale
// on every mutation.
type Snapshot struct {
	Subjects  []Subject        `json:"subjects"`
	Teachers  []Teacher        `json:"teachers"`
	Students  []Student        `json:"students"`
	Users     []UserCredential `json:"users"`
	Feedbacks []Feedback       `json:"feedbacks"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Subjects:  make([]Subject, len(s.Subjects)),
		Teachers:  make([]Teacher, len(s.Teachers)),
		Students:  make([]Student, len(s.Students)),
		Users:     make([]UserCredential, len(s.Users)),
		Feedbacks: make([]Feedback, len(s.Feedbacks)),
	}
	copy(out.Subjects, s.Subjects)
	copy(out.Students, s.Students)
	copy(out.Users, s.Users)
	copy(out.Feedbacks, s.Feedbacks)
	for i, teacher := range s.Teachers {
		codes := make([]string, len(teacher.SubjectCodes))
		copy(codes, teacher.SubjectCodes)
		teacher.SubjectCodes = codes
		out.Teachers[i] = teacher
	}
	return out
}
