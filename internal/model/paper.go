package model

import (
	"time"

	"github.com/google/uuid"
)

// PaperSection is a named, instructioned grouping of question references
// inside a paper. Question order within the section is significant.
type PaperSection struct {
	Title        string      `json:"title"`
	Instructions string      `json:"instructions,omitempty"`
	QuestionIDs  []uuid.UUID `json:"question_ids"`
}

// Paper is an assembled question paper. TotalMarks is denormalized from the
// referenced questions at save time; reads recompute it so stale totals
// self-heal.
type Paper struct {
	ID       uuid.UUID `json:"id"`
	AuthorID int       `json:"author_id"`

	Title           string `json:"title"`
	Board           string `json:"board"`
	Grade           string `json:"grade"`
	Subject         string `json:"subject"`
	DurationMinutes int    `json:"duration_minutes"`

	Instructions string         `json:"instructions,omitempty"`
	Sections     []PaperSection `json:"sections"`
	TotalMarks   int            `json:"total_marks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SavePaperRequest is the payload for creating or updating a paper.
type SavePaperRequest struct {
	Title           string                `json:"title" binding:"required,min=3,max=255"`
	Board           string                `json:"board" binding:"required,max=50"`
	Grade           string                `json:"grade" binding:"required,max=20"`
	Subject         string                `json:"subject" binding:"required,max=100"`
	DurationMinutes int                   `json:"duration_minutes" binding:"min=0"`
	Instructions    string                `json:"instructions" binding:"omitempty,max=5000"`
	Sections        []SavePaperSectionReq `json:"sections" binding:"required,min=1,dive"`
}

// SavePaperSectionReq is one section of a SavePaperRequest.
type SavePaperSectionReq struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Instructions string   `json:"instructions" binding:"omitempty,max=2000"`
	QuestionIDs  []string `json:"question_ids" binding:"required,min=1,dive,uuid"`
}
