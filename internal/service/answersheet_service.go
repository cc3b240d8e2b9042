package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/qforge/qforge-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// sheetJob is the payload pushed to the processing queue.
type sheetJob struct {
	SheetID string `json:"sheet_id"`
}

// AnswerSheetService accepts uploaded answer sheets and hands them to the
// background processing worker through a Redis queue. The upload is
// persisted before enqueueing, so a lost job can be re-enqueued from the
// UPLOADED records.
type AnswerSheetService struct {
	sheetRepo *repository.AnswerSheetRepository
	paperRepo *repository.PaperRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewAnswerSheetService creates a new AnswerSheetService.
func NewAnswerSheetService(sheetRepo *repository.AnswerSheetRepository, paperRepo *repository.PaperRepository, rdb *redis.Client, log zerolog.Logger) *AnswerSheetService {
	return &AnswerSheetService{
		sheetRepo: sheetRepo,
		paperRepo: paperRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "answersheet_service").Logger(),
	}
}

// Submit records an uploaded sheet and enqueues it for processing.
func (s *AnswerSheetService) Submit(ctx context.Context, sheet *model.AnswerSheet) error {
	// The paper must exist; a dangling upload is useless.
	if _, err := s.paperRepo.GetByID(ctx, sheet.PaperID); err != nil {
		return err
	}

	if err := s.sheetRepo.Create(ctx, sheet); err != nil {
		return fmt.Errorf("persist sheet: %w", err)
	}

	job, _ := json.Marshal(sheetJob{SheetID: sheet.ID.String()})
	if err := s.rdb.RPush(ctx, config.WorkerKey.ProcessSheetsQueue, job).Err(); err != nil {
		// The record stays in UPLOADED; an operator can re-enqueue it.
		s.log.Error().Err(err).Str("sheet_id", sheet.ID.String()).Msg("enqueue failed")
		return fmt.Errorf("enqueue sheet: %w", err)
	}

	return nil
}

// Get retrieves an answer sheet's current state.
func (s *AnswerSheetService) Get(ctx context.Context, id uuid.UUID) (*model.AnswerSheet, error) {
	return s.sheetRepo.GetByID(ctx, id)
}

// ListByPaper retrieves all sheets uploaded for a paper.
func (s *AnswerSheetService) ListByPaper(ctx context.Context, paperID uuid.UUID) ([]model.AnswerSheet, error) {
	sheets, err := s.sheetRepo.ListByPaper(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if sheets == nil {
		sheets = []model.AnswerSheet{}
	}
	return sheets, nil
}
