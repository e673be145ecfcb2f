package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
)

type sentEvent struct {
	identity string
	event    entity.Event
}

// recordingNotifier remembers everything it was asked to deliver.
type recordingNotifier struct {
	mu        sync.Mutex
	broadcast []entity.Event
	sent      []sentEvent
}

func (that *recordingNotifier) Broadcast(event entity.Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.broadcast = append(that.broadcast, event)
}

func (that *recordingNotifier) SendTo(identity string, event entity.Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sent = append(that.sent, sentEvent{identity: identity, event: event})
}

func (that *recordingNotifier) lastBroadcast(t *testing.T) entity.Event {
	t.Helper()

	that.mu.Lock()
	defer that.mu.Unlock()

	require.NotEmpty(t, that.broadcast)

	return that.broadcast[len(that.broadcast)-1]
}

func (that *recordingNotifier) lastSent(t *testing.T) sentEvent {
	t.Helper()

	that.mu.Lock()
	defer that.mu.Unlock()

	require.NotEmpty(t, that.sent)

	return that.sent[len(that.sent)-1]
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestToggleLike(t *testing.T) {
	// Given: a like list with bob in it
	likes := []string{"alice", "bob"}

	// When: bob toggles
	updated, result := toggleLike(likes, "bob")

	// Then: bob is removed and the input is left untouched
	require.Equal(t, []string{"alice"}, updated)
	require.Equal(t, entity.LikeResult{Status: entity.LikeStatusUnliked, TotalLikes: 1}, result)
	require.Equal(t, []string{"alice", "bob"}, likes)

	// When: carol toggles
	updated, result = toggleLike(updated, "carol")

	// Then: carol is appended
	require.Equal(t, []string{"alice", "carol"}, updated)
	require.Equal(t, entity.LikeResult{Status: entity.LikeStatusLiked, TotalLikes: 2}, result)
}

func newStore() repository.Store {
	return repository.NewMemoryStore()
}
