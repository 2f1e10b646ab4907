package memory

import (
	"context"
	"sync"

	"edulite-assessment-service/internal/domain"
)

// StaticRoster serves a fixed community membership list; the real roster is
// owned by the membership service.
type StaticRoster struct {
	students map[string][]domain.Student
}

func NewStaticRoster(students map[string][]domain.Student) *StaticRoster {
	if students == nil {
		students = make(map[string][]domain.Student)
	}
	return &StaticRoster{students: students}
}

func (r *StaticRoster) Students(_ context.Context, communityID string) ([]domain.Student, error) {
	list := r.students[communityID]
	out := make([]domain.Student, len(list))
	copy(out, list)
	return out, nil
}

// StaticProgressSource serves raw vote/post counters from an in-memory map,
// standing in for the counter pipeline in tests and the demo wiring.
type StaticProgressSource struct {
	mu     sync.RWMutex
	counts map[string]map[string]int
}

func NewStaticProgressSource() *StaticProgressSource {
	return &StaticProgressSource{counts: make(map[string]map[string]int)}
}

// SetCount records a counter for a student. contentType may be empty.
func (s *StaticProgressSource) SetCount(communityID string, taskType domain.TaskType, contentType, studentID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := counterKey(communityID, taskType, contentType)
	if s.counts[key] == nil {
		s.counts[key] = make(map[string]int)
	}
	s.counts[key][studentID] = count
}

func (s *StaticProgressSource) Counts(_ context.Context, communityID string, taskType domain.TaskType, contentType string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int)
	for studentID, count := range s.counts[counterKey(communityID, taskType, contentType)] {
		out[studentID] = count
	}
	return out, nil
}

func counterKey(communityID string, taskType domain.TaskType, contentType string) string {
	return communityID + ":" + string(taskType) + ":" + contentType
}
