package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizgrade-service/internal/domain"
)

func TestResultStoreSaveAndGet(t *testing.T) {
	store := NewResultStore()
	ctx := context.Background()

	id, err := store.SaveResult(ctx, domain.GradedResult{
		QuizID:      "quiz-1",
		UserID:      "u1",
		Score:       5,
		MaxScore:    10,
		Percentage:  50.0,
		GradeLetter: "F",
		SubmittedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	result, err := store.GetResult(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if result.ID != id || result.Score != 5 {
		t.Fatalf("unexpected result %+v", result)
	}

	if _, err := store.GetResult(ctx, "missing"); !errors.Is(err, domain.ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
}

func TestResultStoreListFilters(t *testing.T) {
	store := NewResultStore()
	ctx := context.Background()

	for _, r := range []domain.GradedResult{
		{QuizID: "quiz-1", UserID: "u1", Percentage: 80},
		{QuizID: "quiz-1", UserID: "u2", Percentage: 40},
		{QuizID: "quiz-2", UserID: "u1", Percentage: 100},
	} {
		if _, err := store.SaveResult(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	results, err := store.ListResults(ctx, "quiz-1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results for quiz-1, got %d", len(results))
	}
	// Newest first.
	if results[0].UserID != "u2" || results[1].UserID != "u1" {
		t.Fatalf("expected newest first, got %+v", results)
	}

	results, err = store.ListResults(ctx, "quiz-1", "u1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(results) != 1 || results[0].Percentage != 80 {
		t.Fatalf("expected u1's quiz-1 result, got %+v", results)
	}
}
