package app

import (
	"sync"
	"time"

	"quizgrade-service/internal/domain"
)

// DefaultFeedSize bounds how many recent submissions a feed retains.
const DefaultFeedSize = 20

// Feed is the in-memory live result stream for one quiz. Teachers watching
// a quiz subscribe to it and receive a snapshot whenever a new submission
// is graded.
type Feed struct {
	quizID    string
	size      int
	createdAt time.Time
	now       func() time.Time

	mu          sync.RWMutex
	recent      []domain.ResultSummary // newest first
	subscribers map[chan domain.ResultFeed]struct{}
}

func NewFeed(quizID string, size int) *Feed {
	return NewFeedWithClock(quizID, size, time.Now)
}

// NewFeedWithClock allows deterministic timestamps in tests.
func NewFeedWithClock(quizID string, size int, now func() time.Time) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{
		quizID:      quizID,
		size:        size,
		createdAt:   now(),
		now:         now,
		subscribers: make(map[chan domain.ResultFeed]struct{}),
	}
}

// Publish prepends a result summary and broadcasts the updated feed.
func (f *Feed) Publish(summary domain.ResultSummary) domain.ResultFeed {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.recent = append([]domain.ResultSummary{summary}, f.recent...)
	if len(f.recent) > f.size {
		f.recent = f.recent[:f.size]
	}
	return f.broadcastLocked()
}

// Subscribe registers a watcher. The channel receives the current snapshot
// immediately. The caller must invoke cancel to avoid leaks.
func (f *Feed) Subscribe() (<-chan domain.ResultFeed, func()) {
	ch := make(chan domain.ResultFeed, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	initial := f.snapshotLocked()
	f.mu.Unlock()

	ch <- initial

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

// IsEmpty reports whether the feed has no subscribers left.
func (f *Feed) IsEmpty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers) == 0
}

// Snapshot returns the current feed view.
func (f *Feed) Snapshot() domain.ResultFeed {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshotLocked()
}

func (f *Feed) broadcastLocked() domain.ResultFeed {
	feed := f.snapshotLocked()
	for ch := range f.subscribers {
		select {
		case ch <- feed:
		default:
			// A full buffer means the subscriber is behind; the stale
			// snapshot is replaced so broadcast never blocks.
			select {
			case <-ch:
			default:
			}
			ch <- feed
		}
	}
	return feed
}

func (f *Feed) snapshotLocked() domain.ResultFeed {
	recent := make([]domain.ResultSummary, len(f.recent))
	copy(recent, f.recent)
	return domain.ResultFeed{
		QuizID:    f.quizID,
		Recent:    recent,
		UpdatedAt: f.now(),
	}
}
