package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"edulite-assessment-service/internal/domain"
)

// TaskRepository stores assessment task definitions per community.
type TaskRepository interface {
	Create(ctx context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error)
	Update(ctx context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error)
	Delete(ctx context.Context, communityID, taskID string) error
	Get(ctx context.Context, communityID, taskID string) (domain.AssessmentTask, error)
	// List returns the community's tasks in creation order; the gradebook
	// columns follow this order.
	List(ctx context.Context, communityID string) ([]domain.AssessmentTask, error)
}

// TaskService is the instructor-facing CRUD surface over assessment tasks.
// Deleting a task has no retroactive effect on attempts; scoring is
// independent of tasks.
type TaskService struct {
	tasks    TaskRepository
	validate *validator.Validate
}

func NewTaskService(tasks TaskRepository) *TaskService {
	return &TaskService{tasks: tasks, validate: validator.New()}
}

func (s *TaskService) CreateTask(ctx context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error) {
	task, err := s.normalize(task)
	if err != nil {
		return domain.AssessmentTask{}, err
	}
	task.ID = uuid.NewString()
	return s.tasks.Create(ctx, task)
}

func (s *TaskService) UpdateTask(ctx context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error) {
	if task.ID == "" {
		return domain.AssessmentTask{}, fmt.Errorf("%w: missing id", domain.ErrInvalidTask)
	}
	task, err := s.normalize(task)
	if err != nil {
		return domain.AssessmentTask{}, err
	}
	return s.tasks.Update(ctx, task)
}

func (s *TaskService) DeleteTask(ctx context.Context, communityID, taskID string) error {
	return s.tasks.Delete(ctx, communityID, taskID)
}

func (s *TaskService) GetTask(ctx context.Context, communityID, taskID string) (domain.AssessmentTask, error) {
	return s.tasks.Get(ctx, communityID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, communityID string) ([]domain.AssessmentTask, error) {
	return s.tasks.List(ctx, communityID)
}

// normalize validates the definition and clears fields its type ignores, so
// stored tasks never carry contradictory state.
func (s *TaskService) normalize(task domain.AssessmentTask) (domain.AssessmentTask, error) {
	if err := s.validate.Struct(task); err != nil {
		return domain.AssessmentTask{}, fmt.Errorf("%w: %v", domain.ErrInvalidTask, err)
	}
	if !task.Type.Valid() {
		return domain.AssessmentTask{}, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidTask, task.Type)
	}

	switch task.Type {
	case domain.TaskVotes, domain.TaskPostings:
		if task.Total <= 0 {
			return domain.AssessmentTask{}, fmt.Errorf("%w: %s task requires a positive total", domain.ErrInvalidTask, task.Type)
		}
		task.QuizID = ""
	case domain.TaskQuizzes:
		if task.QuizID == "" {
			return domain.AssessmentTask{}, fmt.Errorf("%w: quizzes task requires a quiz id", domain.ErrInvalidTask)
		}
		task.ContentType = ""
		task.Total = 0
	}
	return task, nil
}
