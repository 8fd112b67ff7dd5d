package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestHTTPClassifierPredict(t *testing.T) {
	var received predictRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		confidence := 0.91
		_ = json.NewEncoder(w).Encode(Result{Label: LabelPositive, Confidence: &confidence})
	}))
	defer server.Close()

	classifier, err := NewHTTPClassifier(HTTPConfig{BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	result, err := classifier.Classify(context.Background(), Input{
		Text:       "Adorei a aula de hoje.",
		AuthorRole: "aluno",
		TargetType: "curso",
		CourseCode: "MAT-101",
	})
	require.NoError(t, err)
	require.Equal(t, LabelPositive, result.Label)
	require.NotNil(t, result.Confidence)

	require.Equal(t, "Adorei a aula de hoje.", received.Text)
	require.Equal(t, "aluno", received.AuthorRole)
	require.Equal(t, "curso", received.TargetType)
	require.Equal(t, "MAT-101", received.CourseCode)
}

func TestHTTPClassifierRejectsUnknownLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{Label: "feliz"})
	}))
	defer server.Close()

	classifier, err := NewHTTPClassifier(HTTPConfig{BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	_, err = classifier.Classify(context.Background(), Input{Text: "x"})
	require.Error(t, err)
}

func TestHTTPClassifierPropagatesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	classifier, err := NewHTTPClassifier(HTTPConfig{BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)

	_, err = classifier.Classify(context.Background(), Input{Text: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestNewHTTPClassifierRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClassifier(HTTPConfig{})
	require.Error(t, err)
}

func TestBuildContextText(t *testing.T) {
	text := BuildContextText(Input{
		Text:       "  Ótima \n aula  ",
		AuthorRole: "Aluno",
		TargetType: "curso",
		CourseCode: "MAT-101",
	})
	require.Equal(t, "[ROLE=aluno] [TARGET=curso] [COURSE=MAT-101] Ótima aula", text)

	text = BuildContextText(Input{Text: "sem curso", AuthorRole: "professor", TargetType: "coordenacao"})
	require.Equal(t, "[ROLE=professor] [TARGET=coordenacao] sem curso", text)
}
