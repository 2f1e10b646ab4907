package app

import (
	"context"

	"edulite-assessment-service/internal/domain"
)

// QuizStore is the write side of the quiz catalog.
type QuizStore interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// CatalogService handles instructor-side quiz authoring. Saving a quiz never
// touches existing attempts: attempts carry their own answers and results, so
// an edit only affects submissions scored after it lands.
type CatalogService struct {
	store QuizStore
}

func NewCatalogService(store QuizStore) *CatalogService {
	return &CatalogService{store: store}
}

// SaveQuiz validates and stores a quiz snapshot, creating or replacing it.
func (s *CatalogService) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := ValidateQuiz(quiz); err != nil {
		return err
	}
	return s.store.SaveQuiz(ctx, quiz)
}
