package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/config"
	"github.com/insightclass/insightclass-api/internal/database"
	"github.com/insightclass/insightclass-api/internal/handler"
	"github.com/insightclass/insightclass-api/internal/middleware"
	"github.com/insightclass/insightclass-api/internal/router"
	"github.com/insightclass/insightclass-api/internal/service"
	"github.com/insightclass/insightclass-api/internal/store"
	"github.com/insightclass/insightclass-api/pkg/sentiment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage backend: %v", err)
	}
	defer closeBackend()

	st, err := store.Open(ctx, backend, logger)
	if err != nil {
		log.Fatalf("failed to open feedback store: %v", err)
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	classifier, err := newClassifier(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create sentiment classifier: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	feed := service.NewFeedbackFeed(natsConn, "insightclass.feedback", logger)
	feed.Start(ctx)

	feedbackService := service.NewFeedbackService(st, validate, classifier, feed, logger)
	directoryService := service.NewDirectoryService(st, validate, logger)
	authService := service.NewAuthService(st, validate, cfg.JWTSecret, cfg.JWTExpiry, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	legacyHandler := handler.NewLegacyFeedbackHandler(feedbackService, logger)
	feedHandler := handler.NewFeedHandler(feed, logger)
	subjectHandler := handler.NewSubjectHandler(directoryService, logger)
	teacherHandler := handler.NewTeacherHandler(directoryService, logger)
	studentHandler := handler.NewStudentHandler(directoryService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:           authHandler,
		FeedbackHandler:       feedbackHandler,
		LegacyFeedbackHandler: legacyHandler,
		FeedHandler:           feedHandler,
		SubjectHandler:        subjectHandler,
		TeacherHandler:        teacherHandler,
		StudentHandler:        studentHandler,
		JWTMiddleware:         middleware.JWTProtected(cfg.JWTSecret),
		SubmitRateLimit:       middleware.RateLimit("feedback-submit", cfg.FeedbackRateLimit, cfg.FeedbackRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func openBackend(ctx context.Context, cfg config.Config) (store.Backend, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := database.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		backend, err := store.NewGormBackend(db)
		return backend, noop, err
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		backend, err := store.NewGormBackend(db)
		return backend, noop, err
	case config.DriverRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return store.NewRedisBackend(client), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newClassifier(cfg config.Config, logger zerolog.Logger) (sentiment.Classifier, error) {
	switch cfg.SentimentProvider {
	case "":
		return nil, nil
	case "remote":
		return sentiment.NewHTTPClassifier(sentiment.HTTPConfig{
			BaseURL: cfg.SentimentURL,
			Logger:  logger,
		})
	case "openai":
		return sentiment.NewOpenAIClassifier(sentiment.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Logger: logger,
		})
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", cfg.SentimentProvider)
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
