package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"edulite-assessment-service/internal/domain"
)

// AttemptRepository abstracts how attempts are stored. Implementations must
// make GetOrCreate and Submit atomic for a given key: two overlapping
// GetOrCreate calls yield the same row, and only the first Submit wins.
type AttemptRepository interface {
	// GetOrCreate inserts attempt unless a row already exists for its
	// (quizID, userID) key, and returns the authoritative row plus whether
	// this call created it.
	GetOrCreate(ctx context.Context, attempt domain.QuizAttempt) (domain.QuizAttempt, bool, error)
	// Get returns the attempt for (quizID, userID) or domain.ErrAttemptNotFound.
	Get(ctx context.Context, quizID, userID string) (domain.QuizAttempt, error)
	// GetByID returns the attempt or domain.ErrAttemptNotFound.
	GetByID(ctx context.Context, attemptID string) (domain.QuizAttempt, error)
	// Submit transitions an in-progress attempt to submitted. If the attempt
	// is already terminal it returns the stored row together with
	// domain.ErrAlreadySubmitted and performs no write.
	Submit(ctx context.Context, attemptID string, answers []domain.Answer, scored ScoredAttempt, submittedAt time.Time) (domain.QuizAttempt, error)
}

// QuizRepository loads quiz snapshots (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// AttemptService enforces the one-attempt-per-user-per-quiz state machine:
// NotStarted -> InProgress -> Submitted, with Submitted terminal.
type AttemptService struct {
	attempts AttemptRepository
	quizzes  QuizRepository
	feed     *SubmissionFeed
	now      func() time.Time
}

func NewAttemptService(attempts AttemptRepository, quizzes QuizRepository, feed *SubmissionFeed) *AttemptService {
	return &AttemptService{attempts: attempts, quizzes: quizzes, feed: feed, now: time.Now}
}

// NewAttemptServiceWithClock is test-only for deterministic timestamps.
func NewAttemptServiceWithClock(attempts AttemptRepository, quizzes QuizRepository, feed *SubmissionFeed, now func() time.Time) *AttemptService {
	return &AttemptService{attempts: attempts, quizzes: quizzes, feed: feed, now: now}
}

// StartAttempt is an idempotent get-or-create: a prior attempt for
// (quizID, userID) is returned regardless of status, otherwise a fresh
// in-progress attempt is created. Uniqueness is enforced by the repository,
// so two concurrent starts never yield two attempts.
func (s *AttemptService) StartAttempt(ctx context.Context, quizID, userID string) (domain.QuizAttempt, error) {
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return domain.QuizAttempt{}, err
	}

	attempt := domain.QuizAttempt{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		UserID:    userID,
		Status:    domain.AttemptInProgress,
		StartedAt: s.now(),
	}
	existing, _, err := s.attempts.GetOrCreate(ctx, attempt)
	if err != nil {
		return domain.QuizAttempt{}, err
	}
	return existing, nil
}

// GetAttempt returns the attempt for (quizID, userID) or
// domain.ErrAttemptNotFound. Used by the instructions page to redirect to
// results instead of allowing a restart.
func (s *AttemptService) GetAttempt(ctx context.Context, quizID, userID string) (domain.QuizAttempt, error) {
	return s.attempts.Get(ctx, quizID, userID)
}

// SubmitAttempt scores the submission and transitions the attempt to its
// terminal state. A duplicate submit observes domain.ErrAlreadySubmitted and
// receives the already-computed result; scoring never runs twice against the
// store.
func (s *AttemptService) SubmitAttempt(ctx context.Context, attemptID string, answers []domain.Answer) (domain.QuizAttempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return domain.QuizAttempt{}, err
	}
	if attempt.Status == domain.AttemptSubmitted {
		return attempt, domain.ErrAlreadySubmitted
	}

	quiz, err := s.quizzes.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return domain.QuizAttempt{}, err
	}

	scored := ScoreAttempt(quiz, answers)
	submitted, err := s.attempts.Submit(ctx, attemptID, answers, scored, s.now())
	if err != nil {
		// A near-simultaneous submit may have won the race; surface the
		// stored result, not a second scoring pass.
		if errors.Is(err, domain.ErrAlreadySubmitted) {
			return submitted, err
		}
		return domain.QuizAttempt{}, err
	}

	if s.feed != nil && submitted.SubmittedAt != nil {
		s.feed.Publish(domain.SubmissionEvent{
			CommunityID:        quiz.CommunityID,
			QuizID:             quiz.ID,
			AttemptID:          submitted.ID,
			UserID:             submitted.UserID,
			Score:              submitted.Score,
			TotalPossibleScore: submitted.TotalPossibleScore,
			SubmittedAt:        *submitted.SubmittedAt,
		})
	}
	return submitted, nil
}
