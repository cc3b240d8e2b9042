package draft

import (
	"strconv"
	"strings"

	"github.com/qforge/qforge-backend/internal/model"
)

// SectionInput is one ordered section of questions going into a paper.
type SectionInput struct {
	Title        string
	Instructions string
	Questions    []model.Question
}

// PaperInput carries the paper identity fields plus its ordered sections.
type PaperInput struct {
	Title           string
	Board           string
	Grade           string
	Subject         string
	DurationMinutes int
	Sections        []SectionInput
}

// SectionSummary is a section annotated with its mark total.
type SectionSummary struct {
	Title         string `json:"title"`
	Instructions  string `json:"instructions,omitempty"`
	QuestionCount int    `json:"question_count"`
	SectionMarks  int    `json:"section_marks"`
}

// PaperSummary is the computed paper header: identity fields, per-section
// totals in input order, and the overall mark total.
type PaperSummary struct {
	Title           string           `json:"title"`
	Board           string           `json:"board"`
	Grade           string           `json:"grade"`
	Subject         string           `json:"subject"`
	DurationMinutes int              `json:"duration_minutes"`
	Marks           int              `json:"marks"`
	Sections        []SectionSummary `json:"sections"`
}

// AssemblePaper sums question marks per section and across the paper. It is
// a pure aggregation: questions are not validated or deduplicated here, and
// zero or negative marks are summed as-is. Marks stored as strings are
// coerced; non-numeric or missing marks contribute zero.
func AssemblePaper(in PaperInput) PaperSummary {
	out := PaperSummary{
		Title:           in.Title,
		Board:           in.Board,
		Grade:           in.Grade,
		Subject:         in.Subject,
		DurationMinutes: in.DurationMinutes,
		Sections:        make([]SectionSummary, 0, len(in.Sections)),
	}

	for _, sec := range in.Sections {
		marks := 0
		for _, q := range sec.Questions {
			marks += CoerceMarks(q.Marks)
		}
		out.Sections = append(out.Sections, SectionSummary{
			Title:         sec.Title,
			Instructions:  sec.Instructions,
			QuestionCount: len(sec.Questions),
			SectionMarks:  marks,
		})
		out.Marks += marks
	}

	return out
}

// CoerceMarks converts a stored-as-string marks value to an int.
// Unparseable input counts as zero rather than failing the aggregation.
func CoerceMarks(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
