package draft

import (
	"testing"

	"github.com/qforge/qforge-backend/internal/model"
)

// validQuestion returns a minimally-complete valid question of the given type.
func validQuestion(t model.QuestionType) model.Question {
	q := model.Question{
		Board:      "CBSE",
		Grade:      "10",
		Subject:    "Physics",
		Chapter:    "Laws of Motion",
		Marks:      "5",
		Difficulty: model.DifficultyMedium,
		Type:       t,
	}
	switch t {
	case model.QuestionTypeSubjective:
		q.QuestionText = "Explain Newton's second law."
		q.Rubrics = []model.RubricItem{
			{Criteria: "States the law", Weight: 40},
			{Criteria: "Worked example", Weight: 60},
		}
	case model.QuestionTypeSingleCorrect:
		q.QuestionText = "Which is a unit of force?"
		q.Options = []model.OptionItem{
			{Text: "Newton", IsCorrect: true},
			{Text: "Joule"},
			{Text: "Watt"},
			{Text: "Pascal"},
		}
	case model.QuestionTypeMultipleCorrect:
		q.QuestionText = "Which of these are vector quantities?"
		q.Options = []model.OptionItem{
			{Text: "Velocity", IsCorrect: true},
			{Text: "Force", IsCorrect: true},
			{Text: "Mass"},
			{Text: "Speed"},
		}
	case model.QuestionTypeTrueFalse:
		q.QuestionText = "Force equals mass times acceleration."
		q.Options = []model.OptionItem{
			{Text: "True", IsCorrect: true},
			{Text: "False"},
		}
	case model.QuestionTypeFillBlank:
		q.QuestionText = "The SI unit of force is ____."
		q.Answer = "Newton"
	case model.QuestionTypeNested:
		q.ParentQuestion = "A 2 kg block rests on a frictionless table."
		q.ChildQuestions = []model.ChildQuestionItem{
			{Question: "Draw the free-body diagram.", Marks: 2},
			{Question: "Find the normal force.", Marks: 3},
		}
	}
	return q
}

func TestValidate_MinimalValidPerType(t *testing.T) {
	for _, qt := range model.QuestionTypes {
		t.Run(string(qt), func(t *testing.T) {
			res := Validate(validQuestion(qt))
			if !res.OK {
				t.Fatalf("expected ok, got reason %q", res.Reason)
			}
			if res.Reason != "" {
				t.Fatalf("ok result carries reason %q", res.Reason)
			}
		})
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	breakField := map[string]func(*model.Question){
		"board":      func(q *model.Question) { q.Board = "" },
		"grade":      func(q *model.Question) { q.Grade = "  " },
		"subject":    func(q *model.Question) { q.Subject = "" },
		"difficulty": func(q *model.Question) { q.Difficulty = "" },
		"marks":      func(q *model.Question) { q.Marks = "" },
	}

	for _, qt := range model.QuestionTypes {
		for name, mutate := range breakField {
			t.Run(string(qt)+"/"+name, func(t *testing.T) {
				q := validQuestion(qt)
				mutate(&q)
				res := Validate(q)
				if res.OK {
					t.Fatal("expected rejection")
				}
				if res.Reason != ReasonCommonFieldsMissing {
					t.Fatalf("reason = %q, want %q", res.Reason, ReasonCommonFieldsMissing)
				}
			})
		}
	}
}

func TestValidate_BodyPresence(t *testing.T) {
	q := validQuestion(model.QuestionTypeFillBlank)
	q.QuestionText = "   "
	res := Validate(q)
	if res.OK || res.Reason != ReasonBodyMissing {
		t.Fatalf("got %+v, want body-missing rejection", res)
	}

	// Nested escapes the generic body check; its own parent check fires.
	n := validQuestion(model.QuestionTypeNested)
	n.ParentQuestion = ""
	res = Validate(n)
	if res.OK || res.Reason != ReasonParentMissing {
		t.Fatalf("got %+v, want parent-missing rejection", res)
	}
}

func TestValidate_Nested(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Question)
		reason string
	}{
		{"no children", func(q *model.Question) { q.ChildQuestions = nil }, ReasonNoChildren},
		{"child without text", func(q *model.Question) { q.ChildQuestions[1].Question = "" }, ReasonBadChild},
		{"child with zero marks", func(q *model.Question) { q.ChildQuestions[0].Marks = 0 }, ReasonBadChild},
		{"child with negative marks", func(q *model.Question) { q.ChildQuestions[0].Marks = -2 }, ReasonBadChild},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion(model.QuestionTypeNested)
			tc.mutate(&q)
			res := Validate(q)
			if res.OK || res.Reason != tc.reason {
				t.Fatalf("got %+v, want reason %q", res, tc.reason)
			}
		})
	}
}

func TestValidate_SingleCorrectCount(t *testing.T) {
	tests := []struct {
		name    string
		correct []int
		wantOK  bool
	}{
		{"zero correct", nil, false},
		{"one correct", []int{1}, true},
		{"two correct", []int{0, 2}, false},
		{"all correct", []int{0, 1, 2, 3}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion(model.QuestionTypeSingleCorrect)
			for i := range q.Options {
				q.Options[i].IsCorrect = false
			}
			for _, i := range tc.correct {
				q.Options[i].IsCorrect = true
			}
			res := Validate(q)
			if res.OK != tc.wantOK {
				t.Fatalf("ok = %v, want %v (reason %q)", res.OK, tc.wantOK, res.Reason)
			}
			if !tc.wantOK && res.Reason != ReasonExactlyOneCorrect {
				t.Fatalf("reason = %q, want %q", res.Reason, ReasonExactlyOneCorrect)
			}
		})
	}
}

func TestValidate_ChoiceOptions(t *testing.T) {
	q := validQuestion(model.QuestionTypeSingleCorrect)
	q.Options = q.Options[:1]
	if res := Validate(q); res.OK || res.Reason != ReasonTooFewOptions {
		t.Fatalf("got %+v, want too-few-options rejection", res)
	}

	q = validQuestion(model.QuestionTypeMultipleCorrect)
	q.Options[2].Text = "   "
	if res := Validate(q); res.OK || res.Reason != ReasonEmptyOption {
		t.Fatalf("got %+v, want empty-option rejection", res)
	}

	q = validQuestion(model.QuestionTypeMultipleCorrect)
	for i := range q.Options {
		q.Options[i].IsCorrect = false
	}
	if res := Validate(q); res.OK || res.Reason != ReasonAtLeastOneCorrect {
		t.Fatalf("got %+v, want at-least-one-correct rejection", res)
	}
}

func TestValidate_TrueFalse(t *testing.T) {
	q := validQuestion(model.QuestionTypeTrueFalse)
	q.Options[1].IsCorrect = true // both marked correct
	if res := Validate(q); res.OK || res.Reason != ReasonExactlyOneCorrect {
		t.Fatalf("got %+v, want exactly-one-correct rejection", res)
	}
}

func TestValidate_RubricWeightSum(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		wantOK  bool
		reason  string
	}{
		{"exactly 100", []int{40, 60}, true, ""},
		{"sum 99", []int{40, 59}, false, ReasonRubricSum},
		{"sum 101", []int{41, 60}, false, ReasonRubricSum},
		{"single 100", []int{100}, true, ""},
		{"many summing to 100", []int{10, 20, 30, 40}, true, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion(model.QuestionTypeSubjective)
			q.Rubrics = make([]model.RubricItem, len(tc.weights))
			for i, w := range tc.weights {
				q.Rubrics[i] = model.RubricItem{Criteria: "Criterion", Weight: w}
			}
			res := Validate(q)
			if res.OK != tc.wantOK {
				t.Fatalf("ok = %v, want %v (reason %q)", res.OK, tc.wantOK, res.Reason)
			}
			if !tc.wantOK && res.Reason != tc.reason {
				t.Fatalf("reason = %q, want %q", res.Reason, tc.reason)
			}
		})
	}
}

func TestValidate_RubricRows(t *testing.T) {
	q := validQuestion(model.QuestionTypeSubjective)
	q.Rubrics = nil
	if res := Validate(q); res.OK || res.Reason != ReasonNoRubrics {
		t.Fatalf("got %+v, want no-rubrics rejection", res)
	}

	q = validQuestion(model.QuestionTypeSubjective)
	q.Rubrics[0].Criteria = ""
	if res := Validate(q); res.OK || res.Reason != ReasonBadRubric {
		t.Fatalf("got %+v, want bad-rubric rejection", res)
	}

	q = validQuestion(model.QuestionTypeSubjective)
	q.Rubrics[0].Weight = 0
	if res := Validate(q); res.OK || res.Reason != ReasonBadRubric {
		t.Fatalf("got %+v, want bad-rubric rejection", res)
	}
}

func TestValidate_FillBlankAnswer(t *testing.T) {
	q := validQuestion(model.QuestionTypeFillBlank)
	q.Answer = " "
	if res := Validate(q); res.OK || res.Reason != ReasonAnswerMissing {
		t.Fatalf("got %+v, want answer-missing rejection", res)
	}
}

// Stale payloads from earlier type switches must not affect validation of
// the current type.
func TestValidate_IgnoresStalePayloads(t *testing.T) {
	q := validQuestion(model.QuestionTypeFillBlank)
	q.Options = []model.OptionItem{{Text: ""}, {Text: ""}} // leftover blanks
	q.Rubrics = []model.RubricItem{{Criteria: "", Weight: 3}}
	if res := Validate(q); !res.OK {
		t.Fatalf("stale payloads caused rejection: %q", res.Reason)
	}
}
