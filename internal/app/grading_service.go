package app

import (
	"context"
	"math"

	"go.uber.org/zap"

	"quizgrade-service/internal/domain"
	"quizgrade-service/internal/grading"
)

// QuizRepository loads quiz definitions (from cache/backing store).
// Read-only: grading never mutates a quiz.
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// ResultRepository persists graded results. Append-only: results are never
// updated or deleted once saved.
type ResultRepository interface {
	SaveResult(ctx context.Context, result domain.GradedResult) (string, error)
	GetResult(ctx context.Context, resultID string) (domain.GradedResult, error)
	ListResults(ctx context.Context, quizID, userID string) ([]domain.GradedResult, error)
}

// FeedRepository abstracts how live result feeds are tracked
// (in-memory, Redis-backed, etc).
type FeedRepository interface {
	GetOrCreate(quizID string) *Feed
	Get(quizID string) (*Feed, bool)
	DeleteIfEmpty(quizID string)
}

// GradingService contains the quiz grading use cases.
type GradingService struct {
	quizzes QuizRepository
	results ResultRepository
	feeds   FeedRepository
	engine  *grading.Engine
	logger  *zap.Logger
}

func NewGradingService(quizzes QuizRepository, results ResultRepository, feeds FeedRepository, logger *zap.Logger) *GradingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradingService{
		quizzes: quizzes,
		results: results,
		feeds:   feeds,
		engine:  grading.NewEngine(),
		logger:  logger,
	}
}

// Quiz returns the quiz definition for display purposes.
func (s *GradingService) Quiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

// Submit grades a submission, persists the result, and publishes it to the
// quiz's live feed if anyone is watching.
func (s *GradingService) Submit(ctx context.Context, quizID, userID string, answers []string) (domain.GradedResult, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.GradedResult{}, err
	}

	result, err := s.engine.Grade(quiz, domain.Submission{
		QuizID:  quizID,
		UserID:  userID,
		Answers: answers,
	})
	if err != nil {
		s.logger.Error("grading failed",
			zap.String("quiz_id", quizID),
			zap.Error(err),
		)
		return domain.GradedResult{}, err
	}

	resultID, err := s.results.SaveResult(ctx, result)
	if err != nil {
		return domain.GradedResult{}, err
	}
	result.ID = resultID

	if feed, ok := s.feeds.Get(quizID); ok {
		feed.Publish(result.Summary())
	}

	s.logger.Info("submission graded",
		zap.String("quiz_id", quizID),
		zap.String("result_id", resultID),
		zap.String("user_id", result.UserID),
		zap.Int("score", result.Score),
		zap.Float64("percentage", result.Percentage),
		zap.Bool("passed", result.Passed),
	)
	return result, nil
}

// Result fetches a single graded result by ID.
func (s *GradingService) Result(ctx context.Context, resultID string) (domain.GradedResult, error) {
	return s.results.GetResult(ctx, resultID)
}

// Results lists graded results for a quiz, optionally filtered by user.
func (s *GradingService) Results(ctx context.Context, quizID, userID string) ([]domain.GradedResult, error) {
	return s.results.ListResults(ctx, quizID, userID)
}

// Stats aggregates the graded results of a quiz into attempt count,
// average percentage, and pass rate.
func (s *GradingService) Stats(ctx context.Context, quizID string) (domain.QuizStats, error) {
	results, err := s.results.ListResults(ctx, quizID, "")
	if err != nil {
		return domain.QuizStats{}, err
	}

	stats := domain.QuizStats{QuizID: quizID, Attempts: len(results)}
	if len(results) == 0 {
		return stats, nil
	}

	sum := 0.0
	passed := 0
	for _, result := range results {
		sum += result.Percentage
		if result.Passed {
			passed++
		}
	}
	stats.AveragePercentage = roundTenth(sum / float64(len(results)))
	stats.PassRate = roundTenth(100.0 * float64(passed) / float64(len(results)))
	return stats, nil
}

// Watch subscribes to the live result feed of a quiz. The quiz must exist;
// the returned cancel function must be called to release the subscription.
func (s *GradingService) Watch(ctx context.Context, quizID string) (<-chan domain.ResultFeed, func(), error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return nil, nil, err
	}

	feed := s.feeds.GetOrCreate(quizID)
	ch, cancel := feed.Subscribe()
	release := func() {
		cancel()
		s.feeds.DeleteIfEmpty(quizID)
	}
	return ch, release, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
