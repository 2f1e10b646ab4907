package memory

import (
	"context"
	"sync"

	"edulite-assessment-service/internal/domain"
)

// TaskStore is an in-memory implementation of app.TaskRepository. Tasks are
// kept per community in creation order, which is the order the gradebook
// renders its columns in.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string][]domain.AssessmentTask
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string][]domain.AssessmentTask)}
}

func (s *TaskStore) Create(_ context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.CommunityID] = append(s.tasks[task.CommunityID], task)
	return task, nil
}

func (s *TaskStore) Update(_ context.Context, task domain.AssessmentTask) (domain.AssessmentTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.tasks[task.CommunityID]
	for i := range list {
		if list[i].ID == task.ID {
			list[i] = task
			return task, nil
		}
	}
	return domain.AssessmentTask{}, domain.ErrTaskNotFound
}

func (s *TaskStore) Delete(_ context.Context, communityID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.tasks[communityID]
	for i := range list {
		if list[i].ID == taskID {
			s.tasks[communityID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (s *TaskStore) Get(_ context.Context, communityID, taskID string) (domain.AssessmentTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, task := range s.tasks[communityID] {
		if task.ID == taskID {
			return task, nil
		}
	}
	return domain.AssessmentTask{}, domain.ErrTaskNotFound
}

func (s *TaskStore) List(_ context.Context, communityID string) ([]domain.AssessmentTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.tasks[communityID]
	out := make([]domain.AssessmentTask, len(list))
	copy(out, list)
	return out, nil
}
