package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qforge/qforge-backend/internal/model"
)

// QuestionRepository handles question data access. The per-type payloads
// (options, rubrics, child questions) live in JSONB columns; topics are a
// text array.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, author_id, board, grade, subject, chapter, topics,
	marks, difficulty, question_type, question_text, question_image,
	answer, options, rubrics, parent_question, parent_question_image,
	child_questions, created_at, updated_at`

// Create inserts a new question and fills in its generated fields.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	options, rubrics, children, err := marshalPayloads(q)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (author_id, board, grade, subject, chapter, topics,
		        marks, difficulty, question_type, question_text, question_image,
		        answer, options, rubrics, parent_question, parent_question_image, child_questions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id, created_at, updated_at`,
		q.AuthorID, q.Board, q.Grade, q.Subject, q.Chapter, q.Topics,
		q.Marks, q.Difficulty, q.Type, q.QuestionText, q.QuestionImage,
		q.Answer, options, rubrics, q.ParentQuestion, q.ParentQuestionImage, children,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a question by its UUID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	return scanQuestion(row)
}

// Update replaces all editable fields of a question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	options, rubrics, children, err := marshalPayloads(q)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE questions
		 SET board = $1, grade = $2, subject = $3, chapter = $4, topics = $5,
		     marks = $6, difficulty = $7, question_type = $8, question_text = $9,
		     question_image = $10, answer = $11, options = $12, rubrics = $13,
		     parent_question = $14, parent_question_image = $15, child_questions = $16,
		     updated_at = NOW()
		 WHERE id = $17`,
		q.Board, q.Grade, q.Subject, q.Chapter, q.Topics,
		q.Marks, q.Difficulty, q.Type, q.QuestionText,
		q.QuestionImage, q.Answer, options, rubrics,
		q.ParentQuestion, q.ParentQuestionImage, children,
		q.ID,
	)
	return err
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// ListPaginated retrieves an author's questions, newest first, narrowed by
// the filter's non-empty fields.
func (r *QuestionRepository) ListPaginated(ctx context.Context, authorID int, f model.QuestionFilter, limit, offset int) ([]model.Question, int, error) {
	where := `WHERE author_id = $1`
	args := []interface{}{authorID}

	addClause := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where += fmt.Sprintf(" AND %s = $%d", column, len(args))
	}
	addClause("board", f.Board)
	addClause("grade", f.Grade)
	addClause("subject", f.Subject)
	addClause("chapter", f.Chapter)
	addClause("question_type", string(f.Type))

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM questions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		questionColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, *q)
	}
	return questions, total, rows.Err()
}

// GetByIDs retrieves questions by ID, keyed for order-preserving assembly.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Question, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]model.Question{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]model.Question, len(ids))
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		byID[q.ID] = *q
	}
	return byID, rows.Err()
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (*model.Question, error) {
	q := &model.Question{}
	var options, rubrics, children []byte
	err := row.Scan(&q.ID, &q.AuthorID, &q.Board, &q.Grade, &q.Subject, &q.Chapter, &q.Topics,
		&q.Marks, &q.Difficulty, &q.Type, &q.QuestionText, &q.QuestionImage,
		&q.Answer, &options, &rubrics, &q.ParentQuestion, &q.ParentQuestionImage,
		&children, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalPayload(options, &q.Options); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	if err := unmarshalPayload(rubrics, &q.Rubrics); err != nil {
		return nil, fmt.Errorf("decode rubrics: %w", err)
	}
	if err := unmarshalPayload(children, &q.ChildQuestions); err != nil {
		return nil, fmt.Errorf("decode child questions: %w", err)
	}
	return q, nil
}

func marshalPayloads(q *model.Question) (options, rubrics, children []byte, err error) {
	if options, err = json.Marshal(q.Options); err != nil {
		return nil, nil, nil, fmt.Errorf("encode options: %w", err)
	}
	if rubrics, err = json.Marshal(q.Rubrics); err != nil {
		return nil, nil, nil, fmt.Errorf("encode rubrics: %w", err)
	}
	if children, err = json.Marshal(q.ChildQuestions); err != nil {
		return nil, nil, nil, fmt.Errorf("encode child questions: %w", err)
	}
	return options, rubrics, children, nil
}

func unmarshalPayload(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
