package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qforge/qforge-backend/internal/model"
)

// PaperRepository handles question-paper data access. Sections (ordered
// titles, instructions and question references) are stored as JSONB.
type PaperRepository struct {
	pool *pgxpool.Pool
}

// NewPaperRepository creates a new PaperRepository.
func NewPaperRepository(pool *pgxpool.Pool) *PaperRepository {
	return &PaperRepository{pool: pool}
}

// Create inserts a new paper.
func (r *PaperRepository) Create(ctx context.Context, p *model.Paper) error {
	sections, err := json.Marshal(p.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO papers (author_id, title, board, grade, subject,
		        duration_minutes, instructions, sections, total_marks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		p.AuthorID, p.Title, p.Board, p.Grade, p.Subject,
		p.DurationMinutes, p.Instructions, sections, p.TotalMarks,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID retrieves a paper by its UUID.
func (r *PaperRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Paper, error) {
	p := &model.Paper{}
	var sections []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, author_id, title, board, grade, subject, duration_minutes,
		        instructions, sections, total_marks, created_at, updated_at
		 FROM papers WHERE id = $1`, id,
	).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Board, &p.Grade, &p.Subject,
		&p.DurationMinutes, &p.Instructions, &sections, &p.TotalMarks,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &p.Sections); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
	}
	return p, nil
}

// Update replaces all editable fields of a paper.
func (r *PaperRepository) Update(ctx context.Context, p *model.Paper) error {
	sections, err := json.Marshal(p.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE papers
		 SET title = $1, board = $2, grade = $3, subject = $4,
		     duration_minutes = $5, instructions = $6, sections = $7,
		     total_marks = $8, updated_at = NOW()
		 WHERE id = $9`,
		p.Title, p.Board, p.Grade, p.Subject,
		p.DurationMinutes, p.Instructions, sections, p.TotalMarks, p.ID,
	)
	return err
}

// Delete removes a paper.
func (r *PaperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM papers WHERE id = $1`, id)
	return err
}

// ListPaginated retrieves an author's papers, newest first.
func (r *PaperRepository) ListPaginated(ctx context.Context, authorID, limit, offset int) ([]model.Paper, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM papers WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, author_id, title, board, grade, subject, duration_minutes,
		        instructions, sections, total_marks, created_at, updated_at
		 FROM papers WHERE author_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		authorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var papers []model.Paper
	for rows.Next() {
		var p model.Paper
		var sections []byte
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Board, &p.Grade, &p.Subject,
			&p.DurationMinutes, &p.Instructions, &sections, &p.TotalMarks,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if len(sections) > 0 {
			if err := json.Unmarshal(sections, &p.Sections); err != nil {
				return nil, 0, fmt.Errorf("decode sections: %w", err)
			}
		}
		papers = append(papers, p)
	}
	return papers, total, rows.Err()
}
