package model

import "time"

// Boards and Grades are fixed classification enums; subjects, chapters and
// topics live in Postgres because schools extend them.
var (
	Boards = []string{"CBSE", "ICSE", "IB", "STATE"}
	Grades = []string{"6", "7", "8", "9", "10", "11", "12"}
)

// Subject is a taught subject (Physics, Mathematics, ...).
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chapter belongs to a subject; topics hang off chapters.
type Chapter struct {
	ID        int       `json:"id"`
	SubjectID int       `json:"subject_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Topic is the finest classification unit under a chapter.
type Topic struct {
	ID        int       `json:"id"`
	ChapterID int       `json:"chapter_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type CreateChapterRequest struct {
	SubjectID int    `json:"subject_id" binding:"required,min=1"`
	Name      string `json:"name" binding:"required,min=2,max=200"`
}

type CreateTopicRequest struct {
	ChapterID int    `json:"chapter_id" binding:"required,min=1"`
	Name      string `json:"name" binding:"required,min=2,max=200"`
}
