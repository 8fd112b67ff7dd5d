package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/insightclass/insightclass-api/internal/dto"
)

const feedBufferSize = 16

// FeedbackFeed fans newly created feedback out to live subscribers. An
// optional NATS connection bridges events across nodes; without one the feed
// is purely in-process.
type FeedbackFeed struct {
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	nodeID      string

	mu          sync.RWMutex
	subscribers map[chan dto.FeedbackResponse]struct{}
}

type feedEvent struct {
	Source   string               `json:"source"`
	Feedback dto.FeedbackResponse `json:"feedback"`
	SentAt   time.Time            `json:"sent_at"`
}

// NewFeedbackFeed constructs a feed. natsConn may be nil.
func NewFeedbackFeed(natsConn *nats.Conn, subject string, logger zerolog.Logger) *FeedbackFeed {
	if subject == "" {
		subject = "insightclass.feedback"
	}
	return &FeedbackFeed{
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "feedback_feed").Logger(),
		nodeID:      uuid.NewString(),
		subscribers: make(map[chan dto.FeedbackResponse]struct{}),
	}
}

// Publish broadcasts a feedback record to local subscribers and, when
// configured, to peer nodes via NATS.
func (f *FeedbackFeed) Publish(ctx context.Context, item dto.FeedbackResponse) {
	f.broadcast(item)

	if f.nats == nil {
		return
	}

	payload, err := json.Marshal(feedEvent{Source: f.nodeID, Feedback: item, SentAt: time.Now().UTC()})
	if err != nil {
		f.logger.Error().Err(err).Msg("failed to encode feed event")
		return
	}
	if err := f.nats.Publish(f.natsSubject, payload); err != nil {
		f.logger.Warn().Err(err).Msg("failed to publish feed event to nats")
	}
}

// Start attaches the NATS subscription for cross-node events. It is a no-op
// without a NATS connection.
func (f *FeedbackFeed) Start(ctx context.Context) {
	if f.nats == nil {
		return
	}

	sub, err := f.nats.Subscribe(f.natsSubject, func(msg *nats.Msg) {
		var event feedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			f.logger.Warn().Err(err).Msg("dropping malformed feed event")
			return
		}
		if event.Source == f.nodeID {
			return
		}
		f.broadcast(event.Feedback)
	})
	if err != nil {
		f.logger.Error().Err(err).Msg("failed to subscribe to feed subject")
		return
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
}

// Subscribe registers a live subscriber. The returned cancel func must be
// called when the subscriber goes away.
func (f *FeedbackFeed) Subscribe() (<-chan dto.FeedbackResponse, func()) {
	ch := make(chan dto.FeedbackResponse, feedBufferSize)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// broadcast delivers to local subscribers, dropping events for slow consumers
// rather than blocking the publisher.
func (f *FeedbackFeed) broadcast(item dto.FeedbackResponse) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.subscribers {
		select {
		case ch <- item:
		default:
			f.logger.Debug().Str("feedback_id", item.ID).Msg("subscriber buffer full, event dropped")
		}
	}
}
