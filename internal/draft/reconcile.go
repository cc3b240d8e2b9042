package draft

import (
	"github.com/qforge/qforge-backend/internal/model"
)

// reconcileOptions reshapes the options payload after a question-type change.
// It runs once per transition, from SetField(FieldQuestionType, ...):
//
//   - to TRUE_FALSE: the options are unconditionally replaced with the fixed
//     [True (correct), False] pair, discarding whatever was there.
//   - to SINGLE_CORRECT or MULTIPLE_CORRECT: if fewer than two options exist
//     the payload is replaced with four blanks; otherwise it is left alone.
//     Note that a TRUE_FALSE pair already satisfies the two-option floor, so
//     switching TRUE_FALSE → MULTIPLE_CORRECT carries True/False over as
//     ordinary options. That matches the long-standing editor behavior and
//     is pinned by a test; callers wanting a clean slate clear options
//     before switching.
//   - to any other type: no reconciliation. Stale options may remain in the
//     draft; the validator's per-type payload selection ignores them.
//
// Switching to NESTED never seeds a parent question or children; only an
// explicit AddChildQuestion does.
func reconcileOptions(t model.QuestionType, current []model.OptionItem) []model.OptionItem {
	switch t {
	case model.QuestionTypeTrueFalse:
		return []model.OptionItem{
			{Text: "True", IsCorrect: true},
			{Text: "False", IsCorrect: false},
		}
	case model.QuestionTypeSingleCorrect, model.QuestionTypeMultipleCorrect:
		if len(current) < 2 {
			return make([]model.OptionItem, 4)
		}
		return current
	default:
		return current
	}
}
