package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
)

const attemptColumns = `id, quiz_id, user_id, status, started_at, submitted_at, answers, results, score, total_possible_score`

// AttemptStore is the postgres implementation of app.AttemptRepository.
// Exactly-once semantics rest on two statements: a conditional insert backed
// by the unique (quiz_id, user_id) index, and a conditional update that only
// matches in-progress rows. Neither needs application-level locking.
type AttemptStore struct {
	pool *pgxpool.Pool
}

func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool}
}

func (s *AttemptStore) GetOrCreate(ctx context.Context, attempt domain.QuizAttempt) (domain.QuizAttempt, bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO quiz_attempts (id, quiz_id, user_id, status, started_at, answers, results, score, total_possible_score)
		 VALUES ($1, $2, $3, $4, $5, '[]', '[]', 0, 0)
		 ON CONFLICT (quiz_id, user_id) DO NOTHING`,
		attempt.ID, attempt.QuizID, attempt.UserID, string(attempt.Status), attempt.StartedAt)
	if err != nil {
		return domain.QuizAttempt{}, false, fmt.Errorf("insert attempt: %w", err)
	}
	created := tag.RowsAffected() == 1

	// Either way the winning row is authoritative.
	stored, err := s.Get(ctx, attempt.QuizID, attempt.UserID)
	if err != nil {
		return domain.QuizAttempt{}, false, err
	}
	return stored, created, nil
}

func (s *AttemptStore) Get(ctx context.Context, quizID, userID string) (domain.QuizAttempt, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts WHERE quiz_id=$1 AND user_id=$2`,
		quizID, userID)
	return scanAttempt(row)
}

func (s *AttemptStore) GetByID(ctx context.Context, attemptID string) (domain.QuizAttempt, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts WHERE id=$1`, attemptID)
	return scanAttempt(row)
}

func (s *AttemptStore) Submit(ctx context.Context, attemptID string, answers []domain.Answer, scored app.ScoredAttempt, submittedAt time.Time) (domain.QuizAttempt, error) {
	if answers == nil {
		answers = []domain.Answer{}
	}
	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("marshal answers: %w", err)
	}
	rawResults, err := json.Marshal(scored.Results)
	if err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("marshal results: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE quiz_attempts
		 SET status=$2, submitted_at=$3, answers=$4, results=$5, score=$6, total_possible_score=$7
		 WHERE id=$1 AND status=$8
		 RETURNING `+attemptColumns,
		attemptID, string(domain.AttemptSubmitted), submittedAt, rawAnswers, rawResults,
		scored.Score, scored.TotalPossibleScore, string(domain.AttemptInProgress))

	attempt, err := scanAttempt(row)
	if err == nil {
		return attempt, nil
	}
	if !errors.Is(err, domain.ErrAttemptNotFound) {
		return domain.QuizAttempt{}, err
	}

	// No in-progress row matched: either the attempt is unknown or a
	// concurrent submit already terminated it. Return the stored result so
	// the losing caller can render it directly.
	existing, getErr := s.GetByID(ctx, attemptID)
	if getErr != nil {
		return domain.QuizAttempt{}, getErr
	}
	return existing, domain.ErrAlreadySubmitted
}

func scanAttempt(row pgx.Row) (domain.QuizAttempt, error) {
	var (
		attempt     domain.QuizAttempt
		status      string
		submittedAt *time.Time
		rawAnswers  []byte
		rawResults  []byte
	)
	err := row.Scan(&attempt.ID, &attempt.QuizID, &attempt.UserID, &status,
		&attempt.StartedAt, &submittedAt, &rawAnswers, &rawResults,
		&attempt.Score, &attempt.TotalPossibleScore)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	if err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("scan attempt: %w", err)
	}
	attempt.Status = domain.AttemptStatus(status)
	attempt.SubmittedAt = submittedAt
	if len(rawAnswers) > 0 {
		if err := json.Unmarshal(rawAnswers, &attempt.Answers); err != nil {
			return domain.QuizAttempt{}, fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	if len(rawResults) > 0 {
		if err := json.Unmarshal(rawResults, &attempt.Results); err != nil {
			return domain.QuizAttempt{}, fmt.Errorf("unmarshal results: %w", err)
		}
	}
	return attempt, nil
}
