package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz definition could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrResultNotFound indicates the requested graded result does not exist.
	ErrResultNotFound = errors.New("result not found")
	// ErrInvalidQuiz indicates the quiz definition is structurally unfit to
	// grade (missing correct answers, malformed option lists). This is an
	// upstream data-integrity problem, not a user-facing condition.
	ErrInvalidQuiz = errors.New("invalid quiz definition")
)
