package domain

// TaskType is the closed set of assessment task kinds. The aggregator matches
// it exhaustively; an unknown type is rejected at task creation.
type TaskType string

const (
	TaskVotes    TaskType = "votes"
	TaskPostings TaskType = "postings"
	TaskQuizzes  TaskType = "quizzes"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskVotes, TaskPostings, TaskQuizzes:
		return true
	}
	return false
}

// Countable reports whether t is fed by a raw progress counter.
func (t TaskType) Countable() bool {
	return t == TaskVotes || t == TaskPostings
}

// AssessmentTask is an instructor-defined, weighted unit of assessment.
// Total is required and positive for countable types; QuizID is required for
// quiz tasks and cleared for the others.
type AssessmentTask struct {
	ID          string   `json:"id"`
	CommunityID string   `json:"communityId" validate:"required"`
	Type        TaskType `json:"type" validate:"required"`
	ContentType string   `json:"contentType,omitempty"`
	AdminLabel  string   `json:"adminLabel" validate:"required"`
	Total       int      `json:"total,omitempty" validate:"gte=0"`
	Weight      int      `json:"weight" validate:"gte=0,lte=100"`
	QuizID      string   `json:"quizId,omitempty"`
}
