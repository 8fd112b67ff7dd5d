// Package sentiment classifies feedback text into positivo/neutro/negativo.
package sentiment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Labels the classifiers may return.
const (
	LabelPositive = "positivo"
	LabelNeutral  = "neutro"
	LabelNegative = "negativo"
)

// Input carries the text to classify together with the submission context the
// model was trained with. Role and target use the model API's vocabulary
// (aluno/professor/coordenador and professor/curso/turma/coordenacao), not
// the internal tokens.
type Input struct {
	Text       string
	AuthorRole string
	TargetType string
	CourseCode string
}

// Result is a classification outcome.
type Result struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
}

// Classifier assigns a sentiment label to a piece of feedback text.
type Classifier interface {
	Classify(ctx context.Context, input Input) (Result, error)
}

var whitespace = regexp.MustCompile(`\s+`)

// BuildContextText renders the model's expected input format:
// "[ROLE=x] [TARGET=y] [COURSE=z] text".
func BuildContextText(input Input) string {
	role := strings.ToLower(strings.TrimSpace(input.AuthorRole))
	target := strings.ToLower(strings.TrimSpace(input.TargetType))
	parts := []string{
		fmt.Sprintf("[ROLE=%s]", role),
		fmt.Sprintf("[TARGET=%s]", target),
	}
	if course := strings.TrimSpace(input.CourseCode); course != "" {
		parts = append(parts, fmt.Sprintf("[COURSE=%s]", course))
	}
	parts = append(parts, whitespace.ReplaceAllString(strings.TrimSpace(input.Text), " "))
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ValidLabel reports whether a classifier output is one of the known labels.
func ValidLabel(label string) bool {
	switch label {
	case LabelPositive, LabelNeutral, LabelNegative:
		return true
	}
	return false
}
