package models

// Role identifies the kind of account behind a session or a feedback author.
type Role string

const (
	// RoleStudent is the student role ("aluno" in the product's vocabulary).
	RoleStudent Role = "aluno"
	// RoleTeacher is the teacher role.
	RoleTeacher Role = "professor"
	// RoleManager is the school-manager role.
	RoleManager Role = "gestor"
)

// Valid reports whether the role is one of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleManager:
		return true
	}
	return false
}

// TargetType identifies what a feedback record is about.
type TargetType string

const (
	// TargetTeacher targets a specific teacher.
	TargetTeacher TargetType = "professor"
	// TargetStudent targets a specific student.
	TargetStudent TargetType = "aluno"
	// TargetClass targets a class/cohort by its free-text class code.
	TargetClass TargetType = "turma"
	// TargetSubject targets a subject by its code.
	TargetSubject TargetType = "materia"
	// TargetAdministration targets the school administration; it carries no target id.
	TargetAdministration TargetType = "coordenacao"
)

// Valid reports whether the target type is one of the closed target set.
func (t TargetType) Valid() bool {
	switch t {
	case TargetTeacher, TargetStudent, TargetClass, TargetSubject, TargetAdministration:
		return true
	}
	return false
}

// RequiresTarget reports whether feedback of this target type must name a target id.
func (t TargetType) RequiresTarget() bool {
	return t != TargetAdministration
}

// Label is the sentiment classification attached to a feedback record.
type Label string

const (
	// LabelPositive marks positive sentiment.
	LabelPositive Label = "positivo"
	// LabelNeutral marks neutral sentiment.
	LabelNeutral Label = "neutro"
	// LabelNegative marks negative sentiment.
	LabelNegative Label = "negativo"
)

// Valid reports whether the label is one of the closed label set.
func (l Label) Valid() bool {
	switch l {
	case LabelPositive, LabelNeutral, LabelNegative:
		return true
	}
	return false
}

// Capability describes what a role may do when submitting feedback.
type Capability struct {
	Targets        map[TargetType]struct{}
	AllowAnonymous bool
}

// CanTarget reports whether the capability permits the given target type.
func (c Capability) CanTarget(t TargetType) bool {
	_, ok := c.Targets[t]
	return ok
}

var capabilities = map[Role]Capability{
	RoleStudent: {
		Targets: map[TargetType]struct{}{
			TargetTeacher:        {},
			TargetSubject:        {},
			TargetClass:          {},
			TargetAdministration: {},
		},
		AllowAnonymous: true,
	},
	RoleTeacher: {
		Targets: map[TargetType]struct{}{
			TargetStudent:        {},
			TargetSubject:        {},
			TargetAdministration: {},
		},
		AllowAnonymous: false,
	},
	RoleManager: {
		Targets: map[TargetType]struct{}{
			TargetTeacher:        {},
			TargetStudent:        {},
			TargetClass:          {},
			TargetSubject:        {},
			TargetAdministration: {},
		},
		AllowAnonymous: false,
	},
}

// CapabilityFor returns the feedback capability table entry for the role.
func CapabilityFor(role Role) (Capability, bool) {
	capability, ok := capabilities[role]
	return capability, ok
}
