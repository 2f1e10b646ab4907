package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"edulite-assessment-service/internal/domain"
)

// Roster supplies community membership. This service does not manage
// membership; it only reads the student list for grouping.
type Roster interface {
	Students(ctx context.Context, communityID string) ([]domain.Student, error)
}

// ProgressSource supplies raw counters for countable task types. The returned
// map is keyed by student id; absence of a key means the student has no
// activity for that counter.
type ProgressSource interface {
	Counts(ctx context.Context, communityID string, taskType domain.TaskType, contentType string) (map[string]int, error)
}

// ParticipationService combines task definitions with raw progress into
// normalized weighted scores per student. Records are computed fresh per
// request; a submission landing mid-aggregation shows up in the next run.
type ParticipationService struct {
	tasks    TaskRepository
	attempts AttemptRepository
	roster   Roster
	progress ProgressSource
}

func NewParticipationService(tasks TaskRepository, attempts AttemptRepository, roster Roster, progress ProgressSource) *ParticipationService {
	return &ParticipationService{tasks: tasks, attempts: attempts, roster: roster, progress: progress}
}

// ComputeParticipation builds the grouped per-student records for a
// community. An empty studentID means the whole roster. A student with no
// activity against a task gets no record for it; the gradebook treats the
// missing record as a weighted score of 0.
func (s *ParticipationService) ComputeParticipation(ctx context.Context, communityID, studentID string) ([]domain.StudentParticipation, error) {
	students, err := s.roster.Students(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if studentID != "" {
		var filtered []domain.Student
		for _, st := range students {
			if st.ID == studentID {
				filtered = append(filtered, st)
			}
		}
		students = filtered
	}

	tasks, err := s.tasks.List(ctx, communityID)
	if err != nil {
		return nil, err
	}

	// Counters are fetched once per task, not per (student, task) pair.
	countsByTask := make(map[string]map[string]int, len(tasks))
	for _, task := range tasks {
		if !task.Type.Countable() {
			continue
		}
		counts, err := s.progress.Counts(ctx, communityID, task.Type, task.ContentType)
		if err != nil {
			return nil, fmt.Errorf("progress counters for task %s: %w", task.ID, err)
		}
		countsByTask[task.ID] = counts
	}

	grouped := make([]domain.StudentParticipation, 0, len(students))
	for _, student := range students {
		group := domain.StudentParticipation{
			StudentID:    student.ID,
			StudentName:  student.Name,
			StudentEmail: student.Email,
		}
		for _, task := range tasks {
			record, ok, err := s.recordFor(ctx, student, task, countsByTask[task.ID])
			if err != nil {
				return nil, err
			}
			if ok {
				group.Results = append(group.Results, record)
			}
		}
		grouped = append(grouped, group)
	}
	return grouped, nil
}

func (s *ParticipationService) recordFor(ctx context.Context, student domain.Student, task domain.AssessmentTask, counts map[string]int) (domain.ParticipationRecord, bool, error) {
	var progress float64
	switch task.Type {
	case domain.TaskVotes, domain.TaskPostings:
		count, ok := counts[student.ID]
		if !ok {
			return domain.ParticipationRecord{}, false, nil
		}
		progress = float64(count)
	case domain.TaskQuizzes:
		attempt, err := s.attempts.Get(ctx, task.QuizID, student.ID)
		if errors.Is(err, domain.ErrAttemptNotFound) {
			return domain.ParticipationRecord{}, false, nil
		}
		if err != nil {
			return domain.ParticipationRecord{}, false, err
		}
		if attempt.Status != domain.AttemptSubmitted {
			return domain.ParticipationRecord{}, false, nil
		}
		progress = attempt.Percentage()
	default:
		return domain.ParticipationRecord{}, false, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidTask, task.Type)
	}

	return domain.ParticipationRecord{
		StudentID:     student.ID,
		StudentName:   student.Name,
		StudentEmail:  student.Email,
		TaskID:        task.ID,
		Type:          task.Type,
		ProgressValue: progress,
		Total:         task.Total,
		WeightedScore: WeightedScore(task, progress),
	}, true, nil
}

// WeightedScore normalizes a raw progress value against a task's weight,
// rounded to 2 decimal places per task (before any summation, so the
// displayed breakdown always adds up to the aggregate total).
//
// Quiz progress is a percentage in [0,100]; counter progress is clamped into
// [0, total]. Zero weight or zero total short-circuits to 0 instead of
// surfacing a division error.
func WeightedScore(task domain.AssessmentTask, progress float64) float64 {
	if task.Weight == 0 {
		return 0
	}
	switch task.Type {
	case domain.TaskQuizzes:
		return round2(progress / 100 * float64(task.Weight))
	case domain.TaskVotes, domain.TaskPostings:
		if task.Total == 0 {
			return 0
		}
		clamped := progress
		if clamped < 0 {
			clamped = 0
		}
		if clamped > float64(task.Total) {
			clamped = float64(task.Total)
		}
		return round2(clamped / float64(task.Total) * float64(task.Weight))
	}
	return 0
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
