package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"quizgrade-service/internal/app"
)

// FeedStore is a Redis-aware implementation of app.FeedRepository.
// Notes:
//   - Feeds stay in a local in-memory map to reuse the in-process broadcast
//     logic.
//   - Redis marks feed liveness, so operators can see which quizzes are
//     being watched across instances.
//   - For true cross-instance fan-out you'd pair this with a pub/sub
//     projector.
type FeedStore struct {
	client *redis.Client
	ttl    time.Duration
	size   int
	mu     sync.RWMutex
	feeds  map[string]*app.Feed
}

func NewFeedStore(client *redis.Client, ttl time.Duration, size int) *FeedStore {
	return &FeedStore{
		client: client,
		ttl:    ttl,
		size:   size,
		feeds:  make(map[string]*app.Feed),
	}
}

func (s *FeedStore) GetOrCreate(quizID string) *app.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feed, ok := s.feeds[quizID]; ok {
		return feed
	}
	feed := app.NewFeed(quizID, s.size)
	s.feeds[quizID] = feed
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(quizID), "1", s.ttl).Err()
	return feed
}

func (s *FeedStore) Get(quizID string) (*app.Feed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	feed, ok := s.feeds[quizID]
	return feed, ok
}

func (s *FeedStore) DeleteIfEmpty(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed, ok := s.feeds[quizID]
	if !ok {
		return
	}
	if feed.IsEmpty() {
		delete(s.feeds, quizID)
		_ = s.client.Del(context.Background(), s.key(quizID)).Err()
	}
}

func (s *FeedStore) key(quizID string) string {
	return "quiz:feed:" + quizID
}
