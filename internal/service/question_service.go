package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/qforge/qforge-backend/internal/draft"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/repository"
	"github.com/qforge/qforge-backend/internal/response"
)

// ErrNotOwner is returned when a teacher touches a question they do not own.
var ErrNotOwner = errors.New("not the question author")

// ValidationError carries the draft validator's rejection reason. The draft
// that failed is never persisted and never modified.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// QuestionService handles question business logic. The draft validator is
// the sole gate in front of persistence: nothing reaches the repository
// without passing it.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// List retrieves a teacher's questions with pagination and filtering.
func (s *QuestionService) List(ctx context.Context, authorID int, f model.QuestionFilter, page, perPage int) ([]model.Question, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	questions, total, err := s.questionRepo.ListPaginated(ctx, authorID, f, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return questions, pagination, nil
}

// Get retrieves a single question.
func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Create validates and persists a new question. A validation failure leaves
// nothing behind; the caller's draft is untouched either way.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	if res := draft.Validate(*q); !res.OK {
		return &ValidationError{Reason: res.Reason}
	}
	stripStalePayloads(q)
	return s.questionRepo.Create(ctx, q)
}

// Update validates and persists changes to an existing question owned by
// authorID.
func (s *QuestionService) Update(ctx context.Context, authorID int, q *model.Question) error {
	existing, err := s.questionRepo.GetByID(ctx, q.ID)
	if err != nil {
		return err
	}
	if existing.AuthorID != authorID {
		return ErrNotOwner
	}
	if res := draft.Validate(*q); !res.OK {
		return &ValidationError{Reason: res.Reason}
	}
	q.AuthorID = existing.AuthorID
	stripStalePayloads(q)
	return s.questionRepo.Update(ctx, q)
}

// Delete removes a question owned by authorID.
func (s *QuestionService) Delete(ctx context.Context, authorID int, id uuid.UUID) error {
	existing, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != authorID {
		return ErrNotOwner
	}
	return s.questionRepo.Delete(ctx, id)
}

// stripStalePayloads drops payloads the question's type does not select, so
// leftovers from draft-time type switches never reach storage.
func stripStalePayloads(q *model.Question) {
	if !q.Type.HasOptions() {
		q.Options = nil
	}
	if q.Type != model.QuestionTypeSubjective {
		q.Rubrics = nil
	}
	// Subjective keeps an optional model answer alongside its rubrics.
	if q.Type != model.QuestionTypeFillBlank && q.Type != model.QuestionTypeSubjective {
		q.Answer = ""
	}
	if q.Type != model.QuestionTypeNested {
		q.ParentQuestion = ""
		q.ParentQuestionImage = ""
		q.ChildQuestions = nil
	}
}
