package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qforge/qforge-backend/internal/draft"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/repository"
	"github.com/qforge/qforge-backend/internal/response"
	"github.com/rs/zerolog"
)

// PaperService assembles and persists question papers. Totals always come
// from the assembler over the referenced questions; the stored total is a
// denormalized copy.
type PaperService struct {
	paperRepo    *repository.PaperRepository
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewPaperService creates a new PaperService.
func NewPaperService(paperRepo *repository.PaperRepository, questionRepo *repository.QuestionRepository, log zerolog.Logger) *PaperService {
	return &PaperService{
		paperRepo:    paperRepo,
		questionRepo: questionRepo,
		log:          log.With().Str("component", "paper_service").Logger(),
	}
}

// PaperDetail is a paper plus its computed summary.
type PaperDetail struct {
	Paper   model.Paper        `json:"paper"`
	Summary draft.PaperSummary `json:"summary"`
}

// Create persists a new paper with its computed total.
func (s *PaperService) Create(ctx context.Context, p *model.Paper) error {
	summary, err := s.assemble(ctx, p)
	if err != nil {
		return err
	}
	p.TotalMarks = summary.Marks
	return s.paperRepo.Create(ctx, p)
}

// Update persists changes to a paper owned by authorID, recomputing totals.
func (s *PaperService) Update(ctx context.Context, authorID int, p *model.Paper) error {
	existing, err := s.paperRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.AuthorID != authorID {
		return ErrNotOwner
	}
	p.AuthorID = existing.AuthorID

	summary, err := s.assemble(ctx, p)
	if err != nil {
		return err
	}
	p.TotalMarks = summary.Marks
	return s.paperRepo.Update(ctx, p)
}

// Get retrieves a paper with freshly computed section totals.
func (s *PaperService) Get(ctx context.Context, id uuid.UUID) (*PaperDetail, error) {
	p, err := s.paperRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := s.assemble(ctx, p)
	if err != nil {
		return nil, err
	}
	if p.TotalMarks != summary.Marks {
		// Referenced questions changed since the last save.
		s.log.Debug().
			Str("paper_id", p.ID.String()).
			Int("stored", p.TotalMarks).
			Int("computed", summary.Marks).
			Msg("stored paper total is stale")
		p.TotalMarks = summary.Marks
	}
	return &PaperDetail{Paper: *p, Summary: summary}, nil
}

// List retrieves a teacher's papers with pagination.
func (s *PaperService) List(ctx context.Context, authorID, page, perPage int) ([]model.Paper, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	papers, total, err := s.paperRepo.ListPaginated(ctx, authorID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if papers == nil {
		papers = []model.Paper{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return papers, pagination, nil
}

// Delete removes a paper owned by authorID.
func (s *PaperService) Delete(ctx context.Context, authorID int, id uuid.UUID) error {
	existing, err := s.paperRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != authorID {
		return ErrNotOwner
	}
	return s.paperRepo.Delete(ctx, id)
}

// assemble resolves the paper's question references and runs the assembler.
// Dangling references contribute zero marks rather than failing the paper.
func (s *PaperService) assemble(ctx context.Context, p *model.Paper) (draft.PaperSummary, error) {
	var ids []uuid.UUID
	for _, sec := range p.Sections {
		ids = append(ids, sec.QuestionIDs...)
	}

	byID, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return draft.PaperSummary{}, fmt.Errorf("resolve questions: %w", err)
	}

	in := draft.PaperInput{
		Title:           p.Title,
		Board:           p.Board,
		Grade:           p.Grade,
		Subject:         p.Subject,
		DurationMinutes: p.DurationMinutes,
	}
	for _, sec := range p.Sections {
		si := draft.SectionInput{Title: sec.Title, Instructions: sec.Instructions}
		for _, id := range sec.QuestionIDs {
			if q, ok := byID[id]; ok {
				si.Questions = append(si.Questions, q)
			}
		}
		in.Sections = append(in.Sections, si)
	}

	return draft.AssemblePaper(in), nil
}
