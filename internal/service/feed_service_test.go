package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insightclass/insightclass-api/internal/dto"
)

func TestFeedbackFeedBroadcastsToAllSubscribers(t *testing.T) {
	feed := NewFeedbackFeed(nil, "", testLogger())

	first, cancelFirst := feed.Subscribe()
	second, cancelSecond := feed.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	feed.Publish(context.Background(), dto.FeedbackResponse{ID: "f-1"})

	require.Equal(t, "f-1", (<-first).ID)
	require.Equal(t, "f-1", (<-second).ID)
}

func TestFeedbackFeedCancelStopsDelivery(t *testing.T) {
	feed := NewFeedbackFeed(nil, "", testLogger())

	ch, cancel := feed.Subscribe()
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	feed.Publish(context.Background(), dto.FeedbackResponse{ID: "f-2"})

	// Cancelling twice is safe.
	cancel()
}

func TestFeedbackFeedDropsWhenSubscriberIsSlow(t *testing.T) {
	feed := NewFeedbackFeed(nil, "", testLogger())

	ch, cancel := feed.Subscribe()
	defer cancel()

	for i := 0; i < feedBufferSize+5; i++ {
		feed.Publish(context.Background(), dto.FeedbackResponse{ID: "f-n"})
	}

	require.Len(t, ch, feedBufferSize)
}
