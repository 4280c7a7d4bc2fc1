package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizgrade-service/internal/domain"
)

// ResultStore persists graded results as JSONB rows. Append-only: the store
// exposes no update or delete statements.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) SaveResult(ctx context.Context, result domain.GradedResult) (string, error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO results (id, quiz_id, user_id, submitted_at, data) VALUES ($1, $2, $3, $4, $5)`,
		result.ID, result.QuizID, result.UserID, result.SubmittedAt, data,
	)
	if err != nil {
		return "", fmt.Errorf("insert result: %w", err)
	}
	return result.ID, nil
}

func (s *ResultStore) GetResult(ctx context.Context, resultID string) (domain.GradedResult, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM results WHERE id=$1`, resultID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.GradedResult{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.GradedResult{}, fmt.Errorf("load result: %w", err)
	}
	var result domain.GradedResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.GradedResult{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return result, nil
}

// ListResults returns results for a quiz, newest first. An empty userID
// matches every user.
func (s *ResultStore) ListResults(ctx context.Context, quizID, userID string) ([]domain.GradedResult, error) {
	query := `SELECT data FROM results WHERE quiz_id=$1 ORDER BY submitted_at DESC`
	args := []interface{}{quizID}
	if userID != "" {
		query = `SELECT data FROM results WHERE quiz_id=$1 AND user_id=$2 ORDER BY submitted_at DESC`
		args = append(args, userID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	results := make([]domain.GradedResult, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var result domain.GradedResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
