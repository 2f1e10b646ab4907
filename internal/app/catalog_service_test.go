package app_test

import (
	"context"
	"errors"
	"testing"

	"edulite-assessment-service/internal/app"
	"edulite-assessment-service/internal/domain"
	"edulite-assessment-service/internal/infra/memory"
)

func TestCatalogRejectsUnscorableQuiz(t *testing.T) {
	service := app.NewCatalogService(memory.NewStaticQuizLoader(nil))

	err := service.SaveQuiz(context.Background(), domain.Quiz{
		ID: "quiz-1",
		Questions: []domain.Question{
			{ID: "q1", Options: []domain.Option{{ID: "A"}, {ID: "B"}}},
		},
	})
	if !errors.Is(err, domain.ErrInvalidQuiz) {
		t.Fatalf("expected ErrInvalidQuiz, got %v", err)
	}
}

func TestCatalogSavesValidQuiz(t *testing.T) {
	loader := memory.NewStaticQuizLoader(nil)
	service := app.NewCatalogService(loader)

	quiz := domain.Quiz{
		ID:          "quiz-1",
		CommunityID: "c1",
		Title:       "Basics",
		Questions: []domain.Question{
			{ID: "q1", Options: []domain.Option{{ID: "A", Correct: true}, {ID: "B"}}},
		},
	}
	if err := service.SaveQuiz(context.Background(), quiz); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := loader.LoadQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("load after save: %v", err)
	}
}
