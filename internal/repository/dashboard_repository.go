package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qforge/qforge-backend/internal/model"
)

// DashboardRepository handles authoring dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves high-level totals scoped to one author.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context, authorID int) (totalQuestions, totalPapers, totalSheets int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM questions WHERE author_id = $1),
			(SELECT COUNT(*) FROM papers WHERE author_id = $1),
			(SELECT COUNT(*) FROM answer_sheets WHERE uploader_id = $1)`,
		authorID,
	).Scan(&totalQuestions, &totalPapers, &totalSheets)
	return
}

// GetQuestionTypeCounts retrieves the author's question distribution by type.
func (r *DashboardRepository) GetQuestionTypeCounts(ctx context.Context, authorID int) (map[model.QuestionType]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_type, COUNT(*) FROM questions
		 WHERE author_id = $1 GROUP BY question_type`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.QuestionType]int)
	for rows.Next() {
		var qtype model.QuestionType
		var count int
		if err := rows.Scan(&qtype, &count); err != nil {
			return nil, err
		}
		counts[qtype] = count
	}
	return counts, rows.Err()
}

// GetSheetStatusCounts retrieves the author's answer sheet distribution by status.
func (r *DashboardRepository) GetSheetStatusCounts(ctx context.Context, authorID int) (map[model.SheetStatus]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM answer_sheets
		 WHERE uploader_id = $1 GROUP BY status`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.SheetStatus]int)
	for rows.Next() {
		var status model.SheetStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// DashboardRecentPaper is the minimal listing row for recently edited papers.
type DashboardRecentPaper struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`
	TotalMarks int       `json:"total_marks"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetRecentPapers retrieves the author's last N edited papers.
func (r *DashboardRepository) GetRecentPapers(ctx context.Context, authorID, limit int) ([]DashboardRecentPaper, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, subject, total_marks, updated_at
		 FROM papers WHERE author_id = $1
		 ORDER BY updated_at DESC LIMIT $2`, authorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []DashboardRecentPaper
	for rows.Next() {
		var p DashboardRecentPaper
		if err := rows.Scan(&p.ID, &p.Title, &p.Subject, &p.TotalMarks, &p.UpdatedAt); err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	if papers == nil {
		papers = []DashboardRecentPaper{}
	}
	return papers, rows.Err()
}
