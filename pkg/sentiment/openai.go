package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const classifySystemPrompt = `You classify school feedback written in Portuguese.
Answer with exactly one word: positivo, neutro or negativo.`

// OpenAIConfig defines configuration options for the OpenAI classifier.
type OpenAIConfig struct {
	APIKey string
	Model  string
	Logger zerolog.Logger
}

// OpenAIClassifier implements Classifier against the OpenAI chat completion API.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClassifier builds a classifier using the provided configuration.
func NewOpenAIClassifier(cfg OpenAIConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	return &OpenAIClassifier{
		client: openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
		tracer: otel.Tracer("github.com/insightclass/insightclass-api/pkg/sentiment/openai"),
		logger: cfg.Logger.With().Str("component", "sentiment_openai").Logger(),
	}, nil
}

// Classify implements Classifier.
func (c *OpenAIClassifier) Classify(ctx context.Context, input Input) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "sentiment.classify", trace.WithAttributes(
		attribute.String("sentiment.provider", "openai"),
		attribute.String("sentiment.model", c.model),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildContextText(input)},
		},
	})
	classifyDuration.WithLabelValues("openai").Observe(time.Since(start).Seconds())
	if err != nil {
		classifyFailures.WithLabelValues("openai").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
		return Result{}, fmt.Errorf("openai classification failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		classifyFailures.WithLabelValues("openai").Inc()
		return Result{}, fmt.Errorf("openai returned no choices")
	}

	label := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	label = strings.Trim(label, ".")
	if !ValidLabel(label) {
		classifyFailures.WithLabelValues("openai").Inc()
		return Result{}, fmt.Errorf("openai returned unknown label %q", label)
	}

	span.SetAttributes(attribute.String("sentiment.label", label))
	return Result{Label: label}, nil
}
