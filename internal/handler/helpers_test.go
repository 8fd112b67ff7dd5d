package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/store"
)

type testEnv struct {
	app       *fiber.App
	store     *store.Store
	feedback  service.FeedbackService
	directory service.DirectoryService
	auth      service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.New(io.Discard)
	st, err := store.Open(context.Background(), store.NewMemoryBackend(), logger)
	require.NoError(t, err)

	validate := validator.New(validator.WithRequiredStructEnabled())
	return &testEnv{
		app:       fiber.New(),
		store:     st,
		feedback:  service.NewFeedbackService(st, validate, nil, nil, logger),
		directory: service.NewDirectoryService(st, validate, logger),
		auth:      service.NewAuthService(st, validate, "test-secret", time.Hour, logger),
	}
}

// asUser simulates an authenticated session by injecting the identity locals
// the JWT middleware would normally set.
func asUser(id, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", id)
		c.Locals("user_role", role)
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
