package store

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// snapshotSchema guards against corrupt or foreign documents stored under the
// snapshot key. A document failing this schema is treated as absent and reseeded.
var snapshotSchema = jsonschema.MustCompileString("snapshot.json", `{
	"type": "object",
	"required": ["subjects", "teachers", "students", "users", "feedbacks"],
	"properties": {
		"subjects": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["code", "name"],
				"properties": {
					"code": {"type": "string"},
					"name": {"type": "string"}
				}
			}
		},
		"teachers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "email", "subjectCodes"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"email": {"type": "string"},
					"subjectCodes": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"students": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "email", "classCode"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"email": {"type": "string"},
					"classCode": {"type": "string"}
				}
			}
		},
		"users": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["username", "password", "role"],
				"properties": {
					"username": {"type": "string"},
					"password": {"type": "string"},
					"role": {"type": "string", "enum": ["aluno", "professor", "gestor"]}
				}
			}
		},
		"feedbacks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "author_id", "author_role", "text", "target_type", "is_anonymous", "submitted_at"],
				"properties": {
					"id": {"type": "string"},
					"author_id": {"type": "string"},
					"author_role": {"type": "string", "enum": ["aluno", "professor", "gestor"]},
					"author_name": {"type": "string"},
					"text": {"type": "string"},
					"target_type": {"type": "string", "enum": ["professor", "aluno", "turma", "materia", "coordenacao"]},
					"target_id": {"type": "string"},
					"target_name": {"type": "string"},
					"is_anonymous": {"type": "boolean"},
					"label": {"type": "string", "enum": ["positivo", "neutro", "negativo"]},
					"submitted_at": {"type": "string"}
				}
			}
		}
	}
}`)

// validateSnapshotDocument checks the raw document against the snapshot schema.
func validateSnapshotDocument(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid snapshot document: %w", err)
	}
	if err := snapshotSchema.Validate(doc); err != nil {
		return fmt.Errorf("snapshot document failed schema validation: %w", err)
	}
	return nil
}
