package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"quizgrade-service/internal/domain"
)

// ResultStore is an append-only in-memory implementation of
// app.ResultRepository. Saved results are never modified.
type ResultStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.GradedResult
	ordered []string // insertion order, oldest first
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		byID: make(map[string]domain.GradedResult),
	}
}

func (s *ResultStore) SaveResult(_ context.Context, result domain.GradedResult) (string, error) {
	id := result.ID
	if id == "" {
		id = uuid.NewString()
	}
	result.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = result
	s.ordered = append(s.ordered, id)
	return id, nil
}

func (s *ResultStore) GetResult(_ context.Context, resultID string) (domain.GradedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.byID[resultID]
	if !ok {
		return domain.GradedResult{}, domain.ErrResultNotFound
	}
	return result, nil
}

// ListResults returns results for a quiz, newest first. An empty userID
// matches every user.
func (s *ResultStore) ListResults(_ context.Context, quizID, userID string) ([]domain.GradedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.GradedResult, 0)
	for i := len(s.ordered) - 1; i >= 0; i-- {
		result := s.byID[s.ordered[i]]
		if quizID != "" && result.QuizID != quizID {
			continue
		}
		if userID != "" && result.UserID != userID {
			continue
		}
		results = append(results, result)
	}
	return results, nil
}
