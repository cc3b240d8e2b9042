package draft

import (
	"reflect"
	"testing"

	"github.com/qforge/qforge-backend/internal/model"
)

var trueFalsePair = []model.OptionItem{
	{Text: "True", IsCorrect: true},
	{Text: "False", IsCorrect: false},
}

func TestReconcile_ToTrueFalseReplacesUnconditionally(t *testing.T) {
	d := FromQuestion(validQuestion(model.QuestionTypeSubjective))
	d.AddOption()
	d.SetOptionText(0, "leftover")

	d.SetField(FieldQuestionType, string(model.QuestionTypeTrueFalse))

	if got := d.Question().Options; !reflect.DeepEqual(got, trueFalsePair) {
		t.Fatalf("options = %+v, want fixed True/False pair", got)
	}
}

func TestReconcile_ToChoiceSeedsFourBlanks(t *testing.T) {
	for _, qt := range []model.QuestionType{
		model.QuestionTypeSingleCorrect,
		model.QuestionTypeMultipleCorrect,
	} {
		t.Run(string(qt), func(t *testing.T) {
			d := New()
			d.SetField(FieldQuestionType, string(qt))
			opts := d.Question().Options
			if len(opts) != 4 {
				t.Fatalf("len = %d, want 4", len(opts))
			}
			for i, o := range opts {
				if o.Text != "" || o.IsCorrect {
					t.Fatalf("opts[%d] = %+v, want blank", i, o)
				}
			}
		})
	}
}

func TestReconcile_ToChoiceKeepsExistingOptions(t *testing.T) {
	d := FromQuestion(validQuestion(model.QuestionTypeMultipleCorrect))
	want := d.Question().Options

	d.SetField(FieldQuestionType, string(model.QuestionTypeSingleCorrect))

	if got := d.Question().Options; !reflect.DeepEqual(got, want) {
		t.Fatalf("options were reshaped: %+v", got)
	}
}

// Pins the documented carry-over: a True/False pair already satisfies the
// two-option floor, so TRUE_FALSE → MULTIPLE_CORRECT keeps the pair as
// ordinary options instead of reseeding blanks.
func TestReconcile_TrueFalseToMultipleCorrectCarriesPairOver(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeTrueFalse))
	d.SetField(FieldQuestionType, string(model.QuestionTypeMultipleCorrect))

	if got := d.Question().Options; !reflect.DeepEqual(got, trueFalsePair) {
		t.Fatalf("options = %+v, want carried-over True/False pair", got)
	}
}

func TestReconcile_OtherTypesLeaveOptionsUntouched(t *testing.T) {
	for _, qt := range []model.QuestionType{
		model.QuestionTypeSubjective,
		model.QuestionTypeFillBlank,
		model.QuestionTypeNested,
	} {
		t.Run(string(qt), func(t *testing.T) {
			d := FromQuestion(validQuestion(model.QuestionTypeSingleCorrect))
			want := d.Question().Options

			d.SetField(FieldQuestionType, string(qt))

			if got := d.Question().Options; !reflect.DeepEqual(got, want) {
				t.Fatalf("options were reshaped: %+v", got)
			}
		})
	}
}

func TestReconcile_ToNestedSeedsNothing(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeNested))
	q := d.Question()
	if q.ParentQuestion != "" || len(q.ChildQuestions) != 0 {
		t.Fatalf("switching to nested seeded payload: %+v", q)
	}
}
