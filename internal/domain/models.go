package domain

import "time"

// AttemptStatus tracks where an attempt is in its lifecycle. "Not attempted"
// is represented by the absence of a record, not a status value.
type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
)

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question. When AllowMultiple is set, more than one
// option may be flagged correct and the learner may select several.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Explanation   string   `json:"explanation,omitempty"`
	AllowMultiple bool     `json:"allowMultiple"`
	Options       []Option `json:"options"`
}

// Quiz is an ordered collection of questions owned by a community.
type Quiz struct {
	ID           string     `json:"id"`
	CommunityID  string     `json:"communityId"`
	Title        string     `json:"title"`
	Instructions string     `json:"instructions,omitempty"`
	Questions    []Question `json:"questions"`
}

// Answer is the learner's selection for a single question. For single-answer
// questions the set has at most one member.
type Answer struct {
	QuestionID        string   `json:"questionId"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
}

// QuestionResult carries enough per-question detail to render a result review
// without re-querying the quiz definition.
type QuestionResult struct {
	QuestionID        string   `json:"questionId"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
	CorrectOptionIDs  []string `json:"correctOptionIds"`
	Correct           bool     `json:"correct"`
}

// QuizAttempt is one learner's single recorded pass at a quiz. It is
// append-only: once submitted it is never mutated again.
type QuizAttempt struct {
	ID                 string           `json:"id"`
	QuizID             string           `json:"quizId"`
	UserID             string           `json:"userId"`
	Status             AttemptStatus    `json:"status"`
	StartedAt          time.Time        `json:"startedAt"`
	SubmittedAt        *time.Time       `json:"submittedAt,omitempty"`
	Answers            []Answer         `json:"answers,omitempty"`
	Results            []QuestionResult `json:"results,omitempty"`
	Score              int              `json:"score"`
	TotalPossibleScore int              `json:"totalPossibleScore"`
}

// Percentage returns the attempt's score as a percentage in [0,100].
func (a QuizAttempt) Percentage() float64 {
	if a.TotalPossibleScore == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalPossibleScore) * 100
}

// Student is a roster row supplied by the community membership service.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ParticipationRecord is a student's progress against one task, with the
// weighted score already applied. Derived, recomputed on demand.
type ParticipationRecord struct {
	StudentID     string   `json:"studentId"`
	StudentName   string   `json:"studentName"`
	StudentEmail  string   `json:"studentEmail"`
	TaskID        string   `json:"taskId"`
	Type          TaskType `json:"type"`
	ProgressValue float64  `json:"progressValue"`
	Total         int      `json:"total"`
	WeightedScore float64  `json:"weightedScore"`
}

// StudentParticipation groups a student's records across all tasks.
type StudentParticipation struct {
	StudentID    string                `json:"studentId"`
	StudentName  string                `json:"studentName"`
	StudentEmail string                `json:"studentEmail"`
	Results      []ParticipationRecord `json:"results"`
}

// SubmissionEvent is broadcast to feed subscribers when an attempt in their
// community is submitted.
type SubmissionEvent struct {
	CommunityID        string    `json:"communityId"`
	QuizID             string    `json:"quizId"`
	AttemptID          string    `json:"attemptId"`
	UserID             string    `json:"userId"`
	Score              int       `json:"score"`
	TotalPossibleScore int       `json:"totalPossibleScore"`
	SubmittedAt        time.Time `json:"submittedAt"`
}
