package draft

import (
	"strings"

	"github.com/qforge/qforge-backend/internal/model"
)

// User-facing rejection reasons. Each distinct failure has exactly one
// reason; the first failing check wins.
const (
	ReasonCommonFieldsMissing = "Board, class, subject, difficulty and marks are all required."
	ReasonBodyMissing         = "Question text is required."
	ReasonParentMissing       = "The parent question text is required."
	ReasonNoChildren          = "Add at least one sub-question."
	ReasonBadChild            = "Every sub-question needs question text and marks greater than zero."
	ReasonTooFewOptions       = "Add at least two options."
	ReasonEmptyOption         = "Options cannot be empty."
	ReasonExactlyOneCorrect   = "Mark exactly one option as the correct answer."
	ReasonAtLeastOneCorrect   = "Mark at least one option as correct."
	ReasonNoRubrics           = "Add at least one rubric criterion."
	ReasonBadRubric           = "Every rubric needs criteria text and a positive weight."
	ReasonRubricSum           = "Rubric weights must add up to exactly 100."
	ReasonAnswerMissing       = "A model answer is required for fill-in-the-blank questions."
)

// Result is the outcome of validating a draft. The zero value is a failure
// with no reason; use ok()/fail().
type Result struct {
	OK     bool
	Reason string
}

func pass() Result         { return Result{OK: true} }
func fail(r string) Result { return Result{Reason: r} }

// Validate is the sole gate before a question is persisted. It is total:
// it always returns a Result and never panics, whatever the state of the
// question. Checks short-circuit in a fixed order so the caller always gets
// the highest-priority failure.
func Validate(q model.Question) Result {
	// 1. Common metadata must be present regardless of type.
	if blank(q.Board) || blank(q.Grade) || blank(q.Subject) ||
		blank(string(q.Difficulty)) || blank(q.Marks) {
		return fail(ReasonCommonFieldsMissing)
	}

	// 2. Some body text must exist. Nested re-checks its parent text below
	// with a more specific reason, so it escapes this check.
	if q.Type != model.QuestionTypeNested &&
		blank(q.QuestionText) && blank(q.ParentQuestion) {
		return fail(ReasonBodyMissing)
	}

	switch q.Type {
	case model.QuestionTypeNested:
		return validateNested(q)
	case model.QuestionTypeSingleCorrect, model.QuestionTypeMultipleCorrect:
		return validateChoice(q)
	case model.QuestionTypeTrueFalse:
		return validateTrueFalse(q)
	case model.QuestionTypeSubjective:
		return validateSubjective(q)
	case model.QuestionTypeFillBlank:
		if blank(q.Answer) {
			return fail(ReasonAnswerMissing)
		}
	}

	return pass()
}

func validateNested(q model.Question) Result {
	if blank(q.ParentQuestion) {
		return fail(ReasonParentMissing)
	}
	if len(q.ChildQuestions) == 0 {
		return fail(ReasonNoChildren)
	}
	for _, c := range q.ChildQuestions {
		if blank(c.Question) || c.Marks <= 0 {
			return fail(ReasonBadChild)
		}
	}
	return pass()
}

func validateChoice(q model.Question) Result {
	if len(q.Options) < 2 {
		return fail(ReasonTooFewOptions)
	}
	correct := 0
	for _, o := range q.Options {
		if blank(o.Text) {
			return fail(ReasonEmptyOption)
		}
		if o.IsCorrect {
			correct++
		}
	}
	if q.Type == model.QuestionTypeSingleCorrect && correct != 1 {
		return fail(ReasonExactlyOneCorrect)
	}
	if q.Type == model.QuestionTypeMultipleCorrect && correct < 1 {
		return fail(ReasonAtLeastOneCorrect)
	}
	return pass()
}

func validateTrueFalse(q model.Question) Result {
	if len(q.Options) < 2 {
		return fail(ReasonTooFewOptions)
	}
	correct := 0
	for _, o := range q.Options {
		if blank(o.Text) {
			return fail(ReasonEmptyOption)
		}
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fail(ReasonExactlyOneCorrect)
	}
	return pass()
}

func validateSubjective(q model.Question) Result {
	if len(q.Rubrics) == 0 {
		return fail(ReasonNoRubrics)
	}
	total := 0
	for _, r := range q.Rubrics {
		if blank(r.Criteria) || r.Weight <= 0 {
			return fail(ReasonBadRubric)
		}
		total += r.Weight
	}
	// Exact integer equality; 99 and 101 are both rejected.
	if total != 100 {
		return fail(ReasonRubricSum)
	}
	return pass()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
