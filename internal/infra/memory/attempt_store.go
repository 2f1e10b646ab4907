package memory

import (
	"context"
	"sync"
	"time"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
)

type attemptKey struct {
	quizID string
	userID string
}

// AttemptStore is an in-memory implementation of app.AttemptRepository.
// One mutex serializes get-or-create and submit, which is the same atomicity
// a unique index plus conditional update gives the postgres store.
type AttemptStore struct {
	mu    sync.Mutex
	byKey map[attemptKey]*domain.QuizAttempt
	byID  map[string]*domain.QuizAttempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		byKey: make(map[attemptKey]*domain.QuizAttempt),
		byID:  make(map[string]*domain.QuizAttempt),
	}
}

func (s *AttemptStore) GetOrCreate(_ context.Context, attempt domain.QuizAttempt) (domain.QuizAttempt, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := attemptKey{quizID: attempt.QuizID, userID: attempt.UserID}
	if existing, ok := s.byKey[key]; ok {
		return *existing, false, nil
	}
	stored := attempt
	s.byKey[key] = &stored
	s.byID[stored.ID] = &stored
	return stored, true, nil
}

func (s *AttemptStore) Get(_ context.Context, quizID, userID string) (domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.byKey[attemptKey{quizID: quizID, userID: userID}]
	if !ok {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	return *attempt, nil
}

func (s *AttemptStore) GetByID(_ context.Context, attemptID string) (domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.byID[attemptID]
	if !ok {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	return *attempt, nil
}

func (s *AttemptStore) Submit(_ context.Context, attemptID string, answers []domain.Answer, scored app.ScoredAttempt, submittedAt time.Time) (domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.byID[attemptID]
	if !ok {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	if attempt.Status == domain.AttemptSubmitted {
		return *attempt, domain.ErrAlreadySubmitted
	}

	attempt.Status = domain.AttemptSubmitted
	attempt.SubmittedAt = &submittedAt
	attempt.Answers = answers
	attempt.Results = scored.Results
	attempt.Score = scored.Score
	attempt.TotalPossibleScore = scored.TotalPossibleScore
	return *attempt, nil
}
