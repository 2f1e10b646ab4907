package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz snapshot could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound is returned when no attempt exists for the lookup key.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrTaskNotFound is returned when an assessment task does not exist.
	ErrTaskNotFound = errors.New("assessment task not found")
	// ErrAlreadySubmitted is returned on a submit against a terminal attempt.
	// The authoritative attempt is returned alongside it so callers can render
	// the existing result without a second round trip.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	// ErrInvalidTask rejects a task definition missing fields its type requires.
	ErrInvalidTask = errors.New("invalid assessment task")
	// ErrInvalidQuiz rejects a quiz definition that cannot be scored.
	ErrInvalidQuiz = errors.New("invalid quiz")
)
