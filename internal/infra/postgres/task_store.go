package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"edulite-assessment-service/internal/domain"
)

const taskColumns = `id, community_id, type, content_type, admin_label, total, weight, quiz_id`

// TaskStore is the postgres implementation of app.TaskRepository.
type TaskStore struct {
	pool *pgxpool.Pool
}

func NewTaskStore(pool *pgxpool.Pool) *TaskStore {
	return &TaskStore{pool: pool}
}

func (s *TaskStore) Create(ctx context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO assessment_tasks (id, community_id, type, content_type, admin_label, total, weight, quiz_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		task.ID, task.CommunityID, string(task.Type), task.ContentType, task.AdminLabel, task.Total, task.Weight, task.QuizID)
	if err != nil {
		return domain.AssessmentTask{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *TaskStore) Update(ctx context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE assessment_tasks
		 SET type=$3, content_type=$4, admin_label=$5, total=$6, weight=$7, quiz_id=$8
		 WHERE id=$1 AND community_id=$2`,
		task.ID, task.CommunityID, string(task.Type), task.ContentType, task.AdminLabel, task.Total, task.Weight, task.QuizID)
	if err != nil {
		return domain.AssessmentTask{}, fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.AssessmentTask{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskStore) Delete(ctx context.Context, communityID, taskID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM assessment_tasks WHERE id=$1 AND community_id=$2`, taskID, communityID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *TaskStore) Get(ctx context.Context, communityID, taskID string) (domain.AssessmentTask, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM assessment_tasks WHERE id=$1 AND community_id=$2`, taskID, communityID)
	return scanTask(row)
}

func (s *TaskStore) List(ctx context.Context, communityID string) ([]domain.AssessmentTask, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM assessment_tasks WHERE community_id=$1 ORDER BY created_at, id`, communityID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.AssessmentTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (domain.AssessmentTask, error) {
	var (
		task     domain.AssessmentTask
		taskType string
	)
	err := row.Scan(&task.ID, &task.CommunityID, &taskType, &task.ContentType,
		&task.AdminLabel, &task.Total, &task.Weight, &task.QuizID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AssessmentTask{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.AssessmentTask{}, fmt.Errorf("scan task: %w", err)
	}
	task.Type = domain.TaskType(taskType)
	return task, nil
}
