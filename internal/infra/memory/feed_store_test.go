package memory

import "testing"

func TestFeedStoreLifecycle(t *testing.T) {
	store := NewFeedStore(10)

	feed := store.GetOrCreate("quiz-1")
	if feed == nil {
		t.Fatalf("expected feed")
	}
	if _, ok := store.Get("quiz-1"); !ok {
		t.Fatalf("expected feed present")
	}

	store.DeleteIfEmpty("quiz-1")
	if _, ok := store.Get("quiz-1"); ok {
		t.Fatalf("expected feed removed when no subscribers")
	}
}

func TestFeedStoreKeepsSubscribedFeeds(t *testing.T) {
	store := NewFeedStore(10)

	feed := store.GetOrCreate("quiz-1")
	ch, cancel := feed.Subscribe()
	<-ch // initial snapshot

	store.DeleteIfEmpty("quiz-1")
	if _, ok := store.Get("quiz-1"); !ok {
		t.Fatalf("expected feed kept while subscribed")
	}

	cancel()
	store.DeleteIfEmpty("quiz-1")
	if _, ok := store.Get("quiz-1"); ok {
		t.Fatalf("expected feed removed after unsubscribe")
	}
}
