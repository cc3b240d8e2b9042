package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	sheetPollTimeout = 1 * time.Second
	// One simulated extraction pass per stage; a real OCR backend replaces
	// the sleep in processSheet.
	sheetStageDelay = 500 * time.Millisecond
)

// sheetStore is the slice of the answer-sheet repository the worker needs.
type sheetStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.AnswerSheet, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.SheetStatus) error
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// SheetWorker drains the answer-sheet queue, advances each sheet through
// UPLOADED → PROCESSING → PROCESSED (or FAILED), and publishes progress
// events on the sheet's Redis channel for the status WebSocket.
type SheetWorker struct {
	sheetRepo sheetStore
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewSheetWorker creates a new SheetWorker.
func NewSheetWorker(sheetRepo sheetStore, rdb *redis.Client, log zerolog.Logger) *SheetWorker {
	return &SheetWorker{
		sheetRepo: sheetRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "sheet_worker").Logger(),
	}
}

type sheetJob struct {
	SheetID string `json:"sheet_id"`
}

// Start runs the worker loop until ctx is cancelled. A job that fails
// transiently (DB unavailable) is requeued; a job with a bad payload, or
// one whose sheet is gone, is dropped with a log line.
func (w *SheetWorker) Start(ctx context.Context) {
	w.log.Info().Msg("SheetWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("SheetWorker stopped")
			return
		default:
			item, err := w.rdb.BLPop(ctx, sheetPollTimeout, config.WorkerKey.ProcessSheetsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			var job sheetJob
			if err := json.Unmarshal([]byte(item[1]), &job); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			sheetID, err := uuid.Parse(job.SheetID)
			if err != nil {
				w.log.Error().Str("sheet_id", job.SheetID).Msg("Invalid sheet ID in job")
				continue
			}

			if err := w.processSheet(ctx, sheetID); err != nil {
				if ctx.Err() != nil {
					// Shutdown mid-job: requeue so the next run picks it up.
					w.rdb.RPush(context.Background(), config.WorkerKey.ProcessSheetsQueue, item[1])
					return
				}
				w.log.Error().Err(err).Str("sheet_id", job.SheetID).Msg("processing failed, requeueing")
				w.rdb.RPush(ctx, config.WorkerKey.ProcessSheetsQueue, item[1])
			}
		}
	}
}

// processSheet runs the staged pipeline for one sheet. Only transient errors
// (DB unavailable) propagate to the caller for a requeue. A sheet whose row
// no longer exists is a dropped job: papers cascade-delete their sheets, so
// retrying can never succeed. Any other permanent failure marks the sheet
// FAILED and returns nil.
func (w *SheetWorker) processSheet(ctx context.Context, sheetID uuid.UUID) error {
	sheet, err := w.sheetRepo.GetByID(ctx, sheetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			w.log.Warn().Str("sheet_id", sheetID.String()).Msg("sheet no longer exists, dropping job")
			return nil
		}
		return err
	}
	if sheet.Status.Terminal() {
		// Duplicate job; nothing to do.
		return nil
	}
	if sheet.FileURL == "" {
		return w.failSheet(ctx, sheetID, "no source file attached")
	}

	if err := w.sheetRepo.SetStatus(ctx, sheetID, model.SheetStatusProcessing); err != nil {
		return err
	}
	w.publish(ctx, sheetID, model.SheetStatusProcessing, 10, "Scanning pages")

	// Staged extraction. Each stage is a fixed-delay stand-in for a real
	// OCR/segmentation pass.
	stages := []struct {
		progress int
		message  string
	}{
		{40, "Extracting answers"},
		{75, "Matching questions"},
	}
	for _, stage := range stages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sheetStageDelay):
		}
		w.publish(ctx, sheetID, model.SheetStatusProcessing, stage.progress, stage.message)
	}

	if err := w.sheetRepo.MarkProcessed(ctx, sheetID); err != nil {
		return err
	}
	w.publish(ctx, sheetID, model.SheetStatusProcessed, 100, "Processing complete")

	w.log.Info().Str("sheet_id", sheetID.String()).Msg("sheet processed")
	return nil
}

// failSheet records a permanent failure and notifies any live status stream.
// An error writing the FAILED row is transient; the caller requeues and the
// mark is retried.
func (w *SheetWorker) failSheet(ctx context.Context, sheetID uuid.UUID, reason string) error {
	if err := w.sheetRepo.MarkFailed(ctx, sheetID, reason); err != nil {
		return err
	}
	w.publish(ctx, sheetID, model.SheetStatusFailed, 0, reason)
	w.log.Warn().Str("sheet_id", sheetID.String()).Str("reason", reason).Msg("sheet failed")
	return nil
}

// publish emits a progress event and mirrors the latest status for the
// WebSocket handler's initial read. Both writes are best-effort: a missed
// event only degrades live progress display.
func (w *SheetWorker) publish(ctx context.Context, sheetID uuid.UUID, status model.SheetStatus, progress int, message string) {
	event := model.SheetProgressEvent{
		SheetID:  sheetID.String(),
		Status:   status,
		Progress: progress,
		Message:  message,
	}
	raw, _ := json.Marshal(event)

	pipe := w.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.SheetStatusKey(sheetID.String()), raw, time.Hour)
	pipe.Publish(ctx, config.CacheKey.SheetProgressChannel(sheetID.String()), raw)
	_, _ = pipe.Exec(ctx)
}
