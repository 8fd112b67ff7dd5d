package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	classifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "insightclass",
		Subsystem: "sentiment",
		Name:      "classification_duration_seconds",
		Help:      "Duration of sentiment classification requests",
	}, []string{"provider"})

	classifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insightclass",
		Subsystem: "sentiment",
		Name:      "classification_failures_total",
		Help:      "Number of failed sentiment classification requests",
	}, []string{"provider"})
)

// HTTPConfig defines configuration options for the remote classifier.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// HTTPClassifier calls the InsightClass sentiment model API (POST /predict).
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
	logger  zerolog.Logger
}

// NewHTTPClassifier builds a classifier against the remote model API.
func NewHTTPClassifier(cfg HTTPConfig) (*HTTPClassifier, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("sentiment api base url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &HTTPClassifier{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		tracer:  otel.Tracer("github.com/insightclass/insightclass-api/pkg/sentiment/http"),
		logger:  cfg.Logger.With().Str("component", "sentiment_http").Logger(),
	}, nil
}

type predictRequest struct {
	Text       string `json:"texto"`
	AuthorRole string `json:"author_role,omitempty"`
	TargetType string `json:"target_type,omitempty"`
	CourseCode string `json:"course_code,omitempty"`
}

// Classify implements Classifier.
func (c *HTTPClassifier) Classify(ctx context.Context, input Input) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "sentiment.classify", trace.WithAttributes(
		attribute.String("sentiment.provider", "remote"),
	))
	defer span.End()

	start := time.Now()
	result, err := c.predict(ctx, input)
	classifyDuration.WithLabelValues("remote").Observe(time.Since(start).Seconds())
	if err != nil {
		classifyFailures.WithLabelValues("remote").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
		return Result{}, err
	}

	span.SetAttributes(attribute.String("sentiment.label", result.Label))
	return result, nil
}

func (c *HTTPClassifier) predict(ctx context.Context, input Input) (Result, error) {
	payload, err := json.Marshal(predictRequest{
		Text:       input.Text,
		AuthorRole: input.AuthorRole,
		TargetType: input.TargetType,
		CourseCode: input.CourseCode,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("predict request returned %d: %s", resp.StatusCode, string(body))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("failed to decode predict response: %w", err)
	}
	if !ValidLabel(result.Label) {
		return Result{}, fmt.Errorf("predict returned unknown label %q", result.Label)
	}

	return result, nil
}
