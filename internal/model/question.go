package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType discriminates which payload of a question is meaningful:
// options for the choice types, rubrics for subjective, a model answer for
// fill-in-the-blank, and parent text plus sub-questions for nested.
type QuestionType string

const (
	QuestionTypeSubjective      QuestionType = "SUBJECTIVE"
	QuestionTypeSingleCorrect   QuestionType = "SINGLE_CORRECT"
	QuestionTypeMultipleCorrect QuestionType = "MULTIPLE_CORRECT"
	QuestionTypeTrueFalse       QuestionType = "TRUE_FALSE"
	QuestionTypeFillBlank       QuestionType = "FILL_BLANK"
	QuestionTypeNested          QuestionType = "NESTED"
)

// QuestionTypes lists every valid question type.
var QuestionTypes = []QuestionType{
	QuestionTypeSubjective,
	QuestionTypeSingleCorrect,
	QuestionTypeMultipleCorrect,
	QuestionTypeTrueFalse,
	QuestionTypeFillBlank,
	QuestionTypeNested,
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether t carries an options payload.
func (t QuestionType) HasOptions() bool {
	switch t {
	case QuestionTypeSingleCorrect, QuestionTypeMultipleCorrect, QuestionTypeTrueFalse:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// OptionItem is one answer choice of a choice-type question.
type OptionItem struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Image     string `json:"image,omitempty"`
}

// RubricItem is one marking criterion of a subjective question.
// Weight is an integer percentage; the validator requires the weights of a
// question's rubrics to sum to exactly 100.
type RubricItem struct {
	Criteria string `json:"criteria"`
	Weight   int    `json:"weight"`
}

// ChildQuestionItem is one sub-question of a nested question. Options is
// non-nil only for nested-with-choices children.
type ChildQuestionItem struct {
	Question string       `json:"question"`
	Image    string       `json:"image,omitempty"`
	Answer   string       `json:"answer,omitempty"`
	Marks    int          `json:"marks"`
	Options  []OptionItem `json:"options,omitempty"`
}

// Question is an authored exam question. Marks is kept as a string because
// that is how drafts carry it on the wire; the paper assembler coerces it.
type Question struct {
	ID       uuid.UUID `json:"id"`
	AuthorID int       `json:"author_id"`

	Board   string   `json:"board"`
	Grade   string   `json:"grade"`
	Subject string   `json:"subject"`
	Chapter string   `json:"chapter"`
	Topics  []string `json:"topics"`

	Marks      string       `json:"marks"`
	Difficulty Difficulty   `json:"difficulty"`
	Type       QuestionType `json:"question_type"`

	QuestionText  string `json:"question_text"`
	QuestionImage string `json:"question_image,omitempty"`

	// Per-type payloads. Only the payload selected by Type is meaningful;
	// the others may hold stale draft state and are dropped on persistence.
	Answer              string              `json:"answer,omitempty"`
	Options             []OptionItem        `json:"options,omitempty"`
	Rubrics             []RubricItem        `json:"rubrics,omitempty"`
	ParentQuestion      string              `json:"parent_question,omitempty"`
	ParentQuestionImage string              `json:"parent_question_image,omitempty"`
	ChildQuestions      []ChildQuestionItem `json:"child_questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveQuestionRequest is the payload for creating or updating a question.
// Draft-level consistency (payload shape per type) is checked by the draft
// validator, not by binding tags.
type SaveQuestionRequest struct {
	Board   string   `json:"board" binding:"required,max=50"`
	Grade   string   `json:"grade" binding:"required,max=20"`
	Subject string   `json:"subject" binding:"required,max=100"`
	Chapter string   `json:"chapter" binding:"omitempty,max=200"`
	Topics  []string `json:"topics" binding:"omitempty,dive,max=200"`

	Marks      string `json:"marks" binding:"required,max=10"`
	Difficulty string `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	Type       string `json:"question_type" binding:"required,oneof=SUBJECTIVE SINGLE_CORRECT MULTIPLE_CORRECT TRUE_FALSE FILL_BLANK NESTED"`

	QuestionText  string `json:"question_text" binding:"omitempty,max=10000"`
	QuestionImage string `json:"question_image" binding:"omitempty,max=500"`

	Answer              string              `json:"answer"`
	Options             []OptionItem        `json:"options"`
	Rubrics             []RubricItem        `json:"rubrics"`
	ParentQuestion      string              `json:"parent_question"`
	ParentQuestionImage string              `json:"parent_question_image" binding:"omitempty,max=500"`
	ChildQuestions      []ChildQuestionItem `json:"child_questions"`
}

// ToQuestion converts the request into a Question owned by authorID.
func (r *SaveQuestionRequest) ToQuestion(authorID int) Question {
	return Question{
		AuthorID:            authorID,
		Board:               r.Board,
		Grade:               r.Grade,
		Subject:             r.Subject,
		Chapter:             r.Chapter,
		Topics:              r.Topics,
		Marks:               r.Marks,
		Difficulty:          Difficulty(r.Difficulty),
		Type:                QuestionType(r.Type),
		QuestionText:        r.QuestionText,
		QuestionImage:       r.QuestionImage,
		Answer:              r.Answer,
		Options:             r.Options,
		Rubrics:             r.Rubrics,
		ParentQuestion:      r.ParentQuestion,
		ParentQuestionImage: r.ParentQuestionImage,
		ChildQuestions:      r.ChildQuestions,
	}
}

// QuestionFilter narrows question listings.
type QuestionFilter struct {
	Board   string
	Grade   string
	Subject string
	Chapter string
	Type    QuestionType
}

// GenerateQuestionRequest asks the generation service for a question draft.
type GenerateQuestionRequest struct {
	Board      string `json:"board" binding:"required,max=50"`
	Grade      string `json:"grade" binding:"required,max=20"`
	Subject    string `json:"subject" binding:"required,max=100"`
	Chapter    string `json:"chapter" binding:"omitempty,max=200"`
	Type       string `json:"question_type" binding:"required,oneof=SUBJECTIVE SINGLE_CORRECT MULTIPLE_CORRECT TRUE_FALSE FILL_BLANK NESTED"`
	Difficulty string `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	Marks      string `json:"marks" binding:"required,max=10"`
}
