package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qforge/qforge-backend/internal/model"
)

// TaxonomyRepository handles subject/chapter/topic data access. Boards and
// grades are fixed enums in the model and never hit the database.
type TaxonomyRepository struct {
	pool *pgxpool.Pool
}

// NewTaxonomyRepository creates a new TaxonomyRepository.
func NewTaxonomyRepository(pool *pgxpool.Pool) *TaxonomyRepository {
	return &TaxonomyRepository{pool: pool}
}

// ListSubjects retrieves all subjects ordered by name.
func (r *TaxonomyRepository) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM subjects ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// CreateSubject inserts a new subject.
func (r *TaxonomyRepository) CreateSubject(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		s.Name).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// DeleteSubject removes a subject. Chapters cascade at the schema level.
func (r *TaxonomyRepository) DeleteSubject(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return err
}

// ListChaptersBySubject retrieves a subject's chapters ordered by name.
func (r *TaxonomyRepository) ListChaptersBySubject(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject_id, name, created_at, updated_at
		 FROM chapters WHERE subject_id = $1 ORDER BY name ASC`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []model.Chapter
	for rows.Next() {
		var c model.Chapter
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// CreateChapter inserts a new chapter under a subject.
func (r *TaxonomyRepository) CreateChapter(ctx context.Context, c *model.Chapter) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO chapters (subject_id, name) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.SubjectID, c.Name).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// DeleteChapter removes a chapter. Topics cascade at the schema level.
func (r *TaxonomyRepository) DeleteChapter(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	return err
}

// ListTopicsByChapter retrieves a chapter's topics ordered by name.
func (r *TaxonomyRepository) ListTopicsByChapter(ctx context.Context, chapterID int) ([]model.Topic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, chapter_id, name, created_at, updated_at
		 FROM topics WHERE chapter_id = $1 ORDER BY name ASC`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.ChapterID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// CreateTopic inserts a new topic under a chapter.
func (r *TaxonomyRepository) CreateTopic(ctx context.Context, t *model.Topic) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO topics (chapter_id, name) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		t.ChapterID, t.Name).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// DeleteTopic removes a topic.
func (r *TaxonomyRepository) DeleteTopic(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM topics WHERE id = $1`, id)
	return err
}
