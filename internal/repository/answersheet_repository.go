package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qforge/qforge-backend/internal/model"
)

// AnswerSheetRepository handles answer-sheet data access.
type AnswerSheetRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerSheetRepository creates a new AnswerSheetRepository.
func NewAnswerSheetRepository(pool *pgxpool.Pool) *AnswerSheetRepository {
	return &AnswerSheetRepository{pool: pool}
}

// Create inserts a new answer sheet in UPLOADED state.
func (r *AnswerSheetRepository) Create(ctx context.Context, s *model.AnswerSheet) error {
	s.Status = model.SheetStatusUploaded
	return r.pool.QueryRow(ctx,
		`INSERT INTO answer_sheets (paper_id, uploader_id, student_name, file_url, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.PaperID, s.UploaderID, s.StudentName, s.FileURL, s.Status,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByID retrieves an answer sheet by its UUID.
func (r *AnswerSheetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AnswerSheet, error) {
	s := &model.AnswerSheet{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, paper_id, uploader_id, student_name, file_url, status,
		        fail_reason, processed_at, created_at
		 FROM answer_sheets WHERE id = $1`, id,
	).Scan(&s.ID, &s.PaperID, &s.UploaderID, &s.StudentName, &s.FileURL, &s.Status,
		&s.FailReason, &s.ProcessedAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByPaper retrieves all answer sheets uploaded for a paper.
func (r *AnswerSheetRepository) ListByPaper(ctx context.Context, paperID uuid.UUID) ([]model.AnswerSheet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, paper_id, uploader_id, student_name, file_url, status,
		        fail_reason, processed_at, created_at
		 FROM answer_sheets WHERE paper_id = $1
		 ORDER BY created_at DESC`, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []model.AnswerSheet
	for rows.Next() {
		var s model.AnswerSheet
		if err := rows.Scan(&s.ID, &s.PaperID, &s.UploaderID, &s.StudentName, &s.FileURL,
			&s.Status, &s.FailReason, &s.ProcessedAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, rows.Err()
}

// SetStatus moves a sheet to a non-terminal status.
func (r *AnswerSheetRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.SheetStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answer_sheets SET status = $1 WHERE id = $2`, status, id)
	return err
}

// MarkProcessed moves a sheet to PROCESSED and stamps the completion time.
func (r *AnswerSheetRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answer_sheets
		 SET status = $1, processed_at = NOW(), fail_reason = ''
		 WHERE id = $2`, model.SheetStatusProcessed, id)
	return err
}

// MarkFailed moves a sheet to FAILED with a reason.
func (r *AnswerSheetRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answer_sheets
		 SET status = $1, fail_reason = $2
		 WHERE id = $3`, model.SheetStatusFailed, reason, id)
	return err
}
