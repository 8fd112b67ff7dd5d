package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/models"
	"github.com/insightclass/insightclass-api/internal/store"
	"github.com/insightclass/insightclass-api/pkg/sentiment"
)

type stubClassifier struct {
	lastInput sentiment.Input
	label     string
	err       error
	calls     int
}

func (c *stubClassifier) Classify(_ context.Context, input sentiment.Input) (sentiment.Result, error) {
	c.calls++
	c.lastInput = input
	if c.err != nil {
		return sentiment.Result{}, c.err
	}
	return sentiment.Result{Label: c.label}, nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.NewMemoryBackend(), testLogger())
	require.NoError(t, err)
	return st
}

func TestFeedbackServiceSubmitClassifies(t *testing.T) {
	st := openTestStore(t)
	classifier := &stubClassifier{label: "positivo"}
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), classifier, nil, testLogger())

	response, err := svc.Submit(context.Background(), Author{ID: "s-001", Role: models.RoleStudent}, dto.FeedbackCreateRequest{
		Text:       "A aula de hoje foi excelente.",
		TargetType: "materia",
		TargetID:   "MAT-101",
	})
	require.NoError(t, err)
	require.Equal(t, "positivo", response.Label)
	require.Equal(t, "Matemática I", response.TargetName)
	require.Equal(t, 1, classifier.calls)
	require.Equal(t, "MAT-101", classifier.lastInput.CourseCode)
	require.Equal(t, "aluno", classifier.lastInput.AuthorRole)
	require.Equal(t, "curso", classifier.lastInput.TargetType)
}

func TestFeedbackServiceSubmitSendsWireTokensToClassifier(t *testing.T) {
	st := openTestStore(t)
	classifier := &stubClassifier{label: "neutro"}
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), classifier, nil, testLogger())

	_, err := svc.Submit(context.Background(), Author{ID: store.ManagerAuthorID, Role: models.RoleManager}, dto.FeedbackCreateRequest{
		Text:       "A ementa precisa de revisão.",
		TargetType: "materia",
		TargetID:   "POR-101",
	})
	require.NoError(t, err)
	require.Equal(t, "coordenador", classifier.lastInput.AuthorRole)
	require.Equal(t, "curso", classifier.lastInput.TargetType)
	require.Equal(t, "POR-101", classifier.lastInput.CourseCode)
}

func TestFeedbackServiceSubmitKeepsCallerLabel(t *testing.T) {
	st := openTestStore(t)
	classifier := &stubClassifier{label: "positivo"}
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), classifier, nil, testLogger())

	response, err := svc.Submit(context.Background(), Author{ID: "s-001", Role: models.RoleStudent}, dto.FeedbackCreateRequest{
		Text:       "Não gostei da prova.",
		TargetType: "materia",
		TargetID:   "MAT-101",
		Label:      "negativo",
	})
	require.NoError(t, err)
	require.Equal(t, "negativo", response.Label)
	require.Zero(t, classifier.calls)
}

func TestFeedbackServiceSubmitSurvivesClassifierFailure(t *testing.T) {
	st := openTestStore(t)
	classifier := &stubClassifier{err: errors.New("model unavailable")}
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), classifier, nil, testLogger())

	response, err := svc.Submit(context.Background(), Author{ID: "s-001", Role: models.RoleStudent}, dto.FeedbackCreateRequest{
		Text:       "O laboratório está sempre lotado.",
		TargetType: "coordenacao",
	})
	require.NoError(t, err)
	require.Empty(t, response.Label)

	listed := svc.List(store.FeedbackFilter{AuthorID: "s-001"})
	require.Len(t, listed, 1)
}

func TestFeedbackServiceSubmitSanitizesText(t *testing.T) {
	st := openTestStore(t)
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), nil, nil, testLogger())

	response, err := svc.Submit(context.Background(), Author{ID: "s-001", Role: models.RoleStudent}, dto.FeedbackCreateRequest{
		Text:       "  <script>alert('x')</script>Ótima   aula\n de hoje ",
		TargetType: "professor",
		TargetID:   "t-ana",
	})
	require.NoError(t, err)
	require.NotContains(t, response.Text, "<script>")
	require.NotContains(t, response.Text, "  ")
	require.Contains(t, response.Text, "Ótima aula de hoje")
}

func TestFeedbackServiceSubmitValidatesPayload(t *testing.T) {
	st := openTestStore(t)
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), nil, nil, testLogger())

	_, err := svc.Submit(context.Background(), Author{ID: "s-001", Role: models.RoleStudent}, dto.FeedbackCreateRequest{
		Text:       "texto válido",
		TargetType: "diretoria",
	})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestFeedbackServiceSubmitPublishesToFeed(t *testing.T) {
	st := openTestStore(t)
	feed := NewFeedbackFeed(nil, "", testLogger())
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), nil, feed, testLogger())

	ch, cancel := feed.Subscribe()
	defer cancel()

	response, err := svc.Submit(context.Background(), Author{ID: "s-001", Role: models.RoleStudent}, dto.FeedbackCreateRequest{
		Text:       "Transmitido ao vivo.",
		TargetType: "coordenacao",
	})
	require.NoError(t, err)

	select {
	case event := <-ch:
		require.Equal(t, response.ID, event.ID)
	default:
		t.Fatal("expected a feed event")
	}
}

func TestFeedbackServiceSummary(t *testing.T) {
	st := openTestStore(t)
	svc := NewFeedbackService(st, validator.New(validator.WithRequiredStructEnabled()), nil, nil, testLogger())

	entries := []struct {
		text  string
		label string
	}{
		{"muito bom", "positivo"},
		{"ok", "neutro"},
		{"ruim", "negativo"},
		{"sem rótulo", ""},
	}
	for _, entry := range entries {
		_, err := svc.Submit(context.Background(), Author{ID: "s-001", Role: models.RoleStudent}, dto.FeedbackCreateRequest{
			Text:       entry.text,
			TargetType: "materia",
			TargetID:   "MAT-101",
			Label:      entry.label,
		})
		require.NoError(t, err)
	}

	summary := svc.Summary(store.FeedbackFilter{TargetID: "MAT-101"})
	require.Equal(t, 4, summary.Total)
	require.Equal(t, 1, summary.Positive)
	require.Equal(t, 1, summary.Neutral)
	require.Equal(t, 1, summary.Negative)
}
