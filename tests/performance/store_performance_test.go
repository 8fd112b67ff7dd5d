package performance_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/insightclass/insightclass-api/internal/models"
	"github.com/insightclass/insightclass-api/internal/store"
)

// The store rewrites the full snapshot on every mutation, so write cost grows
// with dataset size. These tests pin down that a classroom-scale dataset
// stays well inside interactive latency.

func TestStoreWriteLatencyAtClassroomScale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.NewMemoryBackend(), zerolog.New(io.Discard))
	require.NoError(t, err)

	const writes = 1000
	durations := make([]time.Duration, 0, writes)

	for i := 0; i < writes; i++ {
		start := time.Now()
		_, err := st.CreateFeedback(ctx, store.CreateFeedbackParams{
			AuthorID:   "s-001",
			AuthorRole: models.RoleStudent,
			Text:       fmt.Sprintf("comentário número %d sobre a disciplina", i),
			TargetType: models.TargetSubject,
			TargetID:   "MAT-101",
		})
		require.NoError(t, err)
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	p95 := durations[int(float64(len(durations))*0.95)]
	require.Lessf(t, p95, 50*time.Millisecond, "p95 write latency %v", p95)
}

func TestStoreListLatencyAtClassroomScale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.NewMemoryBackend(), zerolog.New(io.Discard))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		_, err := st.CreateFeedback(ctx, store.CreateFeedbackParams{
			AuthorID:   "s-001",
			AuthorRole: models.RoleStudent,
			Text:       fmt.Sprintf("comentário %d", i),
			TargetType: models.TargetSubject,
			TargetID:   "MAT-101",
		})
		require.NoError(t, err)
	}

	start := time.Now()
	const reads = 100
	for i := 0; i < reads; i++ {
		items := st.ListFeedback(store.FeedbackFilter{TargetID: "MAT-101", Limit: 50})
		require.Len(t, items, 50)
	}
	average := time.Since(start) / reads
	require.Lessf(t, average, 10*time.Millisecond, "average list latency %v", average)
}
