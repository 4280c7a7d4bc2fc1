package grading

import (
	"fmt"
	"math"
	"strings"
	"time"

	"quizgrade-service/internal/domain"
)

// PassThreshold is the percentage at or above which a result counts as passed.
const PassThreshold = 60.0

// Band maps a minimum percentage to a letter grade and GPA value.
type Band struct {
	Min    float64
	Letter string
	Point  float64
}

// Scale is the grading table, checked top-down; first match wins.
// Percentages below the last band map to F.
var Scale = []Band{
	{Min: 90, Letter: "A", Point: 4.0},
	{Min: 80, Letter: "B", Point: 3.0},
	{Min: 70, Letter: "C", Point: 2.0},
	{Min: 60, Letter: "D", Point: 1.0},
}

// LookupGrade resolves a percentage to its letter grade and grade point.
func LookupGrade(percentage float64) (string, float64) {
	for _, band := range Scale {
		if percentage >= band.Min {
			return band.Letter, band.Point
		}
	}
	return "F", 0.0
}

// Engine scores submissions against quiz definitions. It holds no state
// beyond the clock and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock is test-only for deterministic timestamps.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Grade scores a submission against a quiz and returns the graded result.
// It never fails for incomplete or wrong answers; a submission with zero
// answers is a valid zero-score result. It fails only when the quiz itself
// is structurally invalid (domain.ErrInvalidQuiz).
func (e *Engine) Grade(quiz domain.Quiz, submission domain.Submission) (domain.GradedResult, error) {
	if err := ValidateQuiz(quiz); err != nil {
		return domain.GradedResult{}, err
	}

	score := 0
	questionResults := make([]domain.QuestionResult, 0, len(quiz.Questions))
	for i, question := range quiz.Questions {
		// Missing trailing answers grade as blank, extra ones are ignored.
		answer := ""
		if i < len(submission.Answers) {
			answer = submission.Answers[i]
		}

		correct := normalize(answer) == normalize(question.CorrectAnswer)
		earned := 0
		if correct {
			earned = question.Points
		}
		score += earned

		questionResults = append(questionResults, domain.QuestionResult{
			QuestionID:    question.ID,
			QuestionText:  question.Text,
			UserAnswer:    answer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     correct,
			PointsEarned:  earned,
			MaxPoints:     question.Points,
		})
	}

	// TotalPoints on the quiz may be stale; the percentage denominator is
	// always recomputed from the questions.
	maxScore := quiz.MaxScore()
	percentage := 0.0
	if maxScore > 0 {
		percentage = roundTenth(100.0 * float64(score) / float64(maxScore))
	}
	letter, point := LookupGrade(percentage)

	userID := submission.UserID
	if userID == "" {
		userID = domain.GuestUser
	}

	return domain.GradedResult{
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		UserID:          userID,
		Score:           score,
		MaxScore:        maxScore,
		Percentage:      percentage,
		GradeLetter:     letter,
		GradePoint:      point,
		Passed:          percentage >= PassThreshold,
		QuestionResults: questionResults,
		SubmittedAt:     e.now(),
	}, nil
}

// ValidateQuiz checks the quiz is structurally fit to grade. Failures wrap
// domain.ErrInvalidQuiz so callers can surface them as 5xx-class errors.
func ValidateQuiz(quiz domain.Quiz) error {
	for i, question := range quiz.Questions {
		if strings.TrimSpace(question.CorrectAnswer) == "" {
			return fmt.Errorf("%w: question %d has no correct answer", domain.ErrInvalidQuiz, i+1)
		}
		if question.Type == domain.MultipleChoice && len(question.Options) < 2 {
			return fmt.Errorf("%w: multiple choice question %d has %d options", domain.ErrInvalidQuiz, i+1, len(question.Options))
		}
		if question.Points < 1 {
			return fmt.Errorf("%w: question %d has non-positive points", domain.ErrInvalidQuiz, i+1)
		}
	}
	return nil
}

// normalize prepares an answer for comparison: trim surrounding whitespace
// and fold case. Nothing else — "Paris." never matches "Paris".
func normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
