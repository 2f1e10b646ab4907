package app_test

import (
	"testing"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
)

func multiQuiz() domain.Quiz {
	return domain.Quiz{
		ID:          "quiz-1",
		CommunityID: "c1",
		Title:       "Sets",
		Questions: []domain.Question{
			{
				ID:            "q1",
				Text:          "Pick all primes",
				AllowMultiple: true,
				Options: []domain.Option{
					{ID: "A", Text: "2", Correct: true},
					{ID: "B", Text: "4", Correct: false},
					{ID: "C", Text: "3", Correct: true},
				},
			},
		},
	}
}

func TestScoreExactSetMatch(t *testing.T) {
	quiz := multiQuiz()

	cases := []struct {
		name     string
		selected []string
		correct  bool
	}{
		{"exact match", []string{"A", "C"}, true},
		{"exact match any order", []string{"C", "A"}, true},
		{"missing one", []string{"A"}, false},
		{"extra option", []string{"A", "B", "C"}, false},
		{"only wrong", []string{"B"}, false},
		{"empty selection", nil, false},
		{"duplicates collapse", []string{"A", "A", "C"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scored := app.ScoreAttempt(quiz, []domain.Answer{
				{QuestionID: "q1", SelectedOptionIDs: tc.selected},
			})
			want := 0
			if tc.correct {
				want = 1
			}
			if scored.Score != want {
				t.Fatalf("selected %v: score=%d, want %d", tc.selected, scored.Score, want)
			}
		})
	}
}

func TestScoreTotalIsQuestionCount(t *testing.T) {
	quiz := domain.Quiz{
		ID: "quiz-2",
		Questions: []domain.Question{
			{ID: "q1", Options: []domain.Option{{ID: "A", Correct: true}, {ID: "B"}}},
			{ID: "q2", Options: []domain.Option{{ID: "A", Correct: true}, {ID: "B"}}},
			{ID: "q3", Options: []domain.Option{{ID: "A"}, {ID: "B", Correct: true}}},
		},
	}

	scored := app.ScoreAttempt(quiz, []domain.Answer{
		{QuestionID: "q1", SelectedOptionIDs: []string{"A"}},
		{QuestionID: "q3", SelectedOptionIDs: []string{"A"}},
	})
	if scored.TotalPossibleScore != 3 {
		t.Fatalf("total=%d, want 3", scored.TotalPossibleScore)
	}
	if scored.Score != 1 {
		t.Fatalf("score=%d, want 1", scored.Score)
	}
}

func TestScoreRetainsReviewDetail(t *testing.T) {
	quiz := multiQuiz()
	scored := app.ScoreAttempt(quiz, []domain.Answer{
		{QuestionID: "q1", SelectedOptionIDs: []string{"A"}},
	})

	if len(scored.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(scored.Results))
	}
	result := scored.Results[0]
	if result.QuestionID != "q1" || result.Correct {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.SelectedOptionIDs) != 1 || result.SelectedOptionIDs[0] != "A" {
		t.Fatalf("selected ids not retained: %v", result.SelectedOptionIDs)
	}
	if len(result.CorrectOptionIDs) != 2 {
		t.Fatalf("correct ids not retained: %v", result.CorrectOptionIDs)
	}
}

func TestScoreNoCorrectOptionDoesNotCrash(t *testing.T) {
	quiz := domain.Quiz{
		ID: "broken",
		Questions: []domain.Question{
			{ID: "q1", Options: []domain.Option{{ID: "A"}, {ID: "B"}}},
		},
	}

	// Empty selection vs empty correct set is still incorrect.
	scored := app.ScoreAttempt(quiz, nil)
	if scored.Score != 0 || scored.TotalPossibleScore != 1 {
		t.Fatalf("score=%d total=%d, want 0/1", scored.Score, scored.TotalPossibleScore)
	}
}

func TestValidateQuiz(t *testing.T) {
	if err := app.ValidateQuiz(multiQuiz()); err != nil {
		t.Fatalf("valid quiz rejected: %v", err)
	}

	noCorrect := domain.Quiz{
		ID: "quiz-3",
		Questions: []domain.Question{
			{ID: "q1", Options: []domain.Option{{ID: "A"}, {ID: "B"}}},
		},
	}
	if err := app.ValidateQuiz(noCorrect); err == nil {
		t.Fatalf("expected rejection of question without a correct option")
	}

	if err := app.ValidateQuiz(domain.Quiz{ID: "empty"}); err == nil {
		t.Fatalf("expected rejection of quiz without questions")
	}
}
