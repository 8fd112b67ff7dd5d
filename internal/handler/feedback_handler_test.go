package handler_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/insightclass/insightclass-api/internal/dto"
	"github.com/insightclass/insightclass-api/internal/handler"
	"github.com/insightclass/insightclass-api/internal/models"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/store"
)

func setupFeedbackApp(t *testing.T, id, role string) *testEnv {
	t.Helper()

	env := newTestEnv(t)
	group := env.app.Group("/api/v1/feedback", asUser(id, role))
	handler.NewFeedbackHandler(env.feedback, zerolog.New(io.Discard)).Register(group)
	return env
}

func TestFeedbackHandlerCreate(t *testing.T) {
	env := setupFeedbackApp(t, "s-001", "aluno")

	req := jsonRequest(t, http.MethodPost, "/api/v1/feedback", dto.FeedbackCreateRequest{
		Text:       "A professora explica muito bem.",
		TargetType: "professor",
		TargetID:   "t-ana",
	})
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                 `json:"success"`
		Data    dto.FeedbackResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "s-001", response.Data.AuthorID)
	require.Equal(t, "Maria Lima", response.Data.AuthorName)
	require.Equal(t, "Ana Souza", response.Data.TargetName)
}

func TestFeedbackHandlerCreateWithoutSession(t *testing.T) {
	env := setupFeedbackApp(t, "", "")

	req := jsonRequest(t, http.MethodPost, "/api/v1/feedback", dto.FeedbackCreateRequest{
		Text:       "sem sessão",
		TargetType: "coordenacao",
	})
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFeedbackHandlerCreateStatusMapping(t *testing.T) {
	env := setupFeedbackApp(t, "s-001", "aluno")

	cases := []struct {
		name       string
		payload    dto.FeedbackCreateRequest
		statusCode int
	}{
		{
			name:       "capability violation",
			payload:    dto.FeedbackCreateRequest{Text: "x", TargetType: "aluno", TargetID: "s-001"},
			statusCode: fiber.StatusBadRequest,
		},
		{
			name:       "unknown teacher",
			payload:    dto.FeedbackCreateRequest{Text: "x", TargetType: "professor", TargetID: "t-999"},
			statusCode: fiber.StatusUnprocessableEntity,
		},
		{
			name:       "invalid target type",
			payload:    dto.FeedbackCreateRequest{Text: "x", TargetType: "diretoria"},
			statusCode: fiber.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPost, "/api/v1/feedback", tc.payload)
			resp, err := env.app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestFeedbackHandlerListScopedToAuthor(t *testing.T) {
	env := setupFeedbackApp(t, "s-001", "aluno")
	seedFeedback(t, env)

	resp, err := env.app.Test(jsonRequest(t, http.MethodGet, "/api/v1/feedback?author_id=s-001", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.FeedbackListResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data.Items, 2)
}

func TestFeedbackHandlerListUnscopedForbidden(t *testing.T) {
	env := setupFeedbackApp(t, "s-001", "aluno")

	resp, err := env.app.Test(jsonRequest(t, http.MethodGet, "/api/v1/feedback", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestFeedbackHandlerListManagerSeesEverything(t *testing.T) {
	env := setupFeedbackApp(t, store.ManagerAuthorID, "gestor")
	seedFeedback(t, env)

	resp, err := env.app.Test(jsonRequest(t, http.MethodGet, "/api/v1/feedback", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.FeedbackListResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data.Items, 3)
}

func TestFeedbackHandlerTeacherBrowsesOwnSubject(t *testing.T) {
	env := setupFeedbackApp(t, "t-ana", "professor")
	seedFeedback(t, env)

	resp, err := env.app.Test(jsonRequest(t, http.MethodGet, "/api/v1/feedback?target_type=materia&target_id=MAT-101", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.FeedbackListResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data.Items, 1)
}

func TestFeedbackHandlerSummary(t *testing.T) {
	env := setupFeedbackApp(t, store.ManagerAuthorID, "gestor")
	seedFeedback(t, env)

	resp, err := env.app.Test(jsonRequest(t, http.MethodGet, "/api/v1/feedback/summary", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.FeedbackSummaryResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, 3, response.Data.Total)
	require.Equal(t, 1, response.Data.Positive)
}

func TestFeedbackHandlerListInvalidLimit(t *testing.T) {
	env := setupFeedbackApp(t, store.ManagerAuthorID, "gestor")

	resp, err := env.app.Test(jsonRequest(t, http.MethodGet, "/api/v1/feedback?limit=abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func seedFeedback(t *testing.T, env *testEnv) {
	t.Helper()

	entries := []struct {
		author service.Author
		req    dto.FeedbackCreateRequest
	}{
		{
			author: service.Author{ID: "s-001", Role: models.RoleStudent},
			req:    dto.FeedbackCreateRequest{Text: "sobre a professora", TargetType: "professor", TargetID: "t-ana", Label: "positivo"},
		},
		{
			author: service.Author{ID: "s-001", Role: models.RoleStudent},
			req:    dto.FeedbackCreateRequest{Text: "sobre matemática", TargetType: "materia", TargetID: "MAT-101"},
		},
		{
			author: service.Author{ID: "t-joao", Role: models.RoleTeacher},
			req:    dto.FeedbackCreateRequest{Text: "sobre a coordenação", TargetType: "coordenacao"},
		},
	}
	for _, entry := range entries {
		_, err := env.feedback.Submit(context.Background(), entry.author, entry.req)
		require.NoError(t, err)
	}
}
