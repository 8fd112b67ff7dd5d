package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/service"
)

// FeedHandler streams newly created feedback over a websocket, replacing the
// manager panel's polling refresh.
type FeedHandler struct {
	feed   *service.FeedbackFeed
	logger zerolog.Logger
}

// NewFeedHandler constructs a feed handler.
func NewFeedHandler(feed *service.FeedbackFeed, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		feed:   feed,
		logger: logger.With().Str("component", "feed_handler").Logger(),
	}
}

// Register attaches the websocket upgrade under the router group. Extra
// handlers guard the /live route without touching sibling routes.
func (h *FeedHandler) Register(router fiber.Router, pre ...fiber.Handler) {
	router.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/live", append(pre, websocket.New(h.stream))...)
}

func (h *FeedHandler) stream(conn *websocket.Conn) {
	events, cancel := h.feed.Subscribe()
	defer cancel()
	defer conn.Close()

	// Drain reads so close frames are noticed and the loop below exits.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug().Err(err).Msg("feed subscriber write failed")
				return
			}
		}
	}
}
