package store

import "github.com/insightclass/insightclass-api/internal/models"

// Seed returns the fixture dataset written when the backend holds no snapshot.
func Seed() models.Snapshot {
	return models.Snapshot{
		Subjects: []models.Subject{
			{Code: "MAT-101", Name: "Matemática I"},
			{Code: "POR-101", Name: "Português I"},
			{Code: "HIS-101", Name: "História I"},
		},
		Teachers: []models.Teacher{
			{ID: "t-ana", Name: "Ana Souza", Email: "ana@ex.com", SubjectCodes: []string{"MAT-101"}},
			{ID: "t-joao", Name: "João Pereira", Email: "joao@ex.com", SubjectCodes: []string{"POR-101"}},
		},
		Students: []models.Student{
			{ID: "s-001", Name: "Maria Lima", Email: "maria@ex.com", ClassCode: "1A"},
		},
		Users: []models.UserCredential{
			{Username: "ana@ex.com", Password: "123", Role: models.RoleTeacher},
			{Username: "joao@ex.com", Password: "123", Role: models.RoleTeacher},
			{Username: "maria@ex.com", Password: "123", Role: models.RoleStudent},
			{Username: "gestor@ex.com", Password: "123", Role: models.RoleManager},
		},
		Feedbacks: []models.Feedback{},
	}
}
