package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestFeedStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewFeedStore(client, time.Minute, 10)

	_ = store.GetOrCreate("quiz-1")
	if !mr.Exists("quiz:feed:quiz-1") {
		t.Fatalf("expected redis key to be set")
	}

	store.DeleteIfEmpty("quiz-1")
	if mr.Exists("quiz:feed:quiz-1") {
		t.Fatalf("expected redis key to be removed")
	}
}
