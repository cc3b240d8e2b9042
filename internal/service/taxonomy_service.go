package service

import (
	"context"

	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/repository"
	"github.com/rs/zerolog"
)

// TaxonomyService serves the classification hierarchy used by question
// drafts: fixed boards and grades, plus subjects → chapters → topics from
// Postgres.
type TaxonomyService struct {
	taxonomyRepo *repository.TaxonomyRepository
	log          zerolog.Logger
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(taxonomyRepo *repository.TaxonomyRepository, log zerolog.Logger) *TaxonomyService {
	return &TaxonomyService{
		taxonomyRepo: taxonomyRepo,
		log:          log.With().Str("component", "taxonomy_service").Logger(),
	}
}

// Boards returns the fixed list of examination boards.
func (s *TaxonomyService) Boards() []string { return model.Boards }

// Grades returns the fixed list of class grades.
func (s *TaxonomyService) Grades() []string { return model.Grades }

func (s *TaxonomyService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.taxonomyRepo.ListSubjects(ctx)
}

func (s *TaxonomyService) CreateSubject(ctx context.Context, sub *model.Subject) error {
	return s.taxonomyRepo.CreateSubject(ctx, sub)
}

func (s *TaxonomyService) DeleteSubject(ctx context.Context, id int) error {
	return s.taxonomyRepo.DeleteSubject(ctx, id)
}

func (s *TaxonomyService) ListChapters(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	return s.taxonomyRepo.ListChaptersBySubject(ctx, subjectID)
}

func (s *TaxonomyService) CreateChapter(ctx context.Context, c *model.Chapter) error {
	return s.taxonomyRepo.CreateChapter(ctx, c)
}

func (s *TaxonomyService) DeleteChapter(ctx context.Context, id int) error {
	return s.taxonomyRepo.DeleteChapter(ctx, id)
}

func (s *TaxonomyService) ListTopics(ctx context.Context, chapterID int) ([]model.Topic, error) {
	return s.taxonomyRepo.ListTopicsByChapter(ctx, chapterID)
}

func (s *TaxonomyService) CreateTopic(ctx context.Context, t *model.Topic) error {
	return s.taxonomyRepo.CreateTopic(ctx, t)
}

func (s *TaxonomyService) DeleteTopic(ctx context.Context, id int) error {
	return s.taxonomyRepo.DeleteTopic(ctx, id)
}
