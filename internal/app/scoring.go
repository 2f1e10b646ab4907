package app

import (
	"edulite-assessment-service/internal/domain"
)

// ScoredAttempt is the outcome of scoring a full submission.
type ScoredAttempt struct {
	Score              int
	TotalPossibleScore int
	Results            []domain.QuestionResult
}

// ScoreAttempt grades a submission against an immutable quiz snapshot.
// A question counts iff the selected set equals the correct set exactly:
// missing a correct option or including an incorrect one both make it wrong,
// for single- and multi-answer questions alike. Each question is worth one
// point; TotalPossibleScore is the question count.
func ScoreAttempt(quiz domain.Quiz, answers []domain.Answer) ScoredAttempt {
	selectedByQuestion := make(map[string][]string, len(answers))
	for _, answer := range answers {
		selectedByQuestion[answer.QuestionID] = answer.SelectedOptionIDs
	}

	scored := ScoredAttempt{
		TotalPossibleScore: len(quiz.Questions),
		Results:            make([]domain.QuestionResult, 0, len(quiz.Questions)),
	}
	for _, question := range quiz.Questions {
		correctIDs := correctOptionIDs(question)
		selectedIDs := selectedByQuestion[question.ID]
		correct := sameIDSet(selectedIDs, correctIDs)
		// A question without any correct option is not a valid quiz state;
		// score it as incorrect rather than matching the empty selection.
		if len(correctIDs) == 0 {
			correct = false
		}
		if correct {
			scored.Score++
		}
		scored.Results = append(scored.Results, domain.QuestionResult{
			QuestionID:        question.ID,
			SelectedOptionIDs: selectedIDs,
			CorrectOptionIDs:  correctIDs,
			Correct:           correct,
		})
	}
	return scored
}

func correctOptionIDs(q domain.Question) []string {
	ids := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		if opt.Correct {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// sameIDSet compares two id lists as sets, ignoring order and duplicates.
func sameIDSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setA {
		if _, ok := setB[id]; !ok {
			return false
		}
	}
	return true
}

// ValidateQuiz rejects quiz definitions that cannot be scored: no questions,
// a question without options, or a question without a correct option.
func ValidateQuiz(quiz domain.Quiz) error {
	if quiz.ID == "" || len(quiz.Questions) == 0 {
		return domain.ErrInvalidQuiz
	}
	for _, question := range quiz.Questions {
		if question.ID == "" || len(question.Options) == 0 {
			return domain.ErrInvalidQuiz
		}
		if len(correctOptionIDs(question)) == 0 {
			return domain.ErrInvalidQuiz
		}
		if !question.AllowMultiple && len(correctOptionIDs(question)) > 1 {
			return domain.ErrInvalidQuiz
		}
	}
	return nil
}
