package domain

import "time"

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// GuestUser marks results submitted without an authenticated user.
const GuestUser = "guest"

// Question is a single assessable item inside a quiz.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"question_text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"` // only meaningful for multiple_choice
	CorrectAnswer string       `json:"correct_answer"`
	Difficulty    string       `json:"difficulty,omitempty"` // easy, medium, hard; not used for scoring
	Points        int          `json:"points"`
}

// Quiz is an ordered collection of questions plus metadata.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	TimeLimit   int        `json:"time_limit"` // minutes
	TotalPoints int        `json:"total_points"`
	Questions   []Question `json:"questions"`
}

// MaxScore sums the question points. The stored TotalPoints field may be
// stale, so graders must use this instead.
func (q Quiz) MaxScore() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// Submission is a test-taker's ordered answers, positionally aligned with
// the quiz's questions. It may be shorter than the question list.
type Submission struct {
	QuizID  string   `json:"quiz_id"`
	UserID  string   `json:"user_id"`
	Answers []string `json:"answers"`
}

// QuestionResult is the per-question breakdown inside a graded result.
type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	PointsEarned  int    `json:"points_earned"`
	MaxPoints     int    `json:"max_points"`
}

// GradedResult is the immutable outcome of grading one submission.
// It is created once and never updated; there is no re-grade operation.
type GradedResult struct {
	ID              string           `json:"id"`
	QuizID          string           `json:"quiz_id"`
	QuizTitle       string           `json:"quiz_title"`
	UserID          string           `json:"user_id"`
	Score           int              `json:"score"`
	MaxScore        int              `json:"max_score"`
	Percentage      float64          `json:"percentage"`
	GradeLetter     string           `json:"grade_letter"`
	GradePoint      float64          `json:"grade_point"`
	Passed          bool             `json:"passed"`
	QuestionResults []QuestionResult `json:"question_results"`
	SubmittedAt     time.Time        `json:"submitted_at"`
}

// ResultSummary is a lightweight view of a graded result for live feeds.
type ResultSummary struct {
	ResultID    string    `json:"resultId"`
	QuizID      string    `json:"quizId"`
	UserID      string    `json:"userId"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"maxScore"`
	Percentage  float64   `json:"percentage"`
	GradeLetter string    `json:"gradeLetter"`
	Passed      bool      `json:"passed"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Summary projects a graded result into its feed view.
func (r GradedResult) Summary() ResultSummary {
	return ResultSummary{
		ResultID:    r.ID,
		QuizID:      r.QuizID,
		UserID:      r.UserID,
		Score:       r.Score,
		MaxScore:    r.MaxScore,
		Percentage:  r.Percentage,
		GradeLetter: r.GradeLetter,
		Passed:      r.Passed,
		SubmittedAt: r.SubmittedAt,
	}
}

// ResultFeed captures the recent submissions for a quiz.
type ResultFeed struct {
	QuizID    string          `json:"quizId"`
	Recent    []ResultSummary `json:"recent"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// QuizStats aggregates graded results for a quiz.
type QuizStats struct {
	QuizID            string  `json:"quiz_id"`
	Attempts          int     `json:"attempts"`
	AveragePercentage float64 `json:"average_percentage"`
	PassRate          float64 `json:"pass_rate"`
}
