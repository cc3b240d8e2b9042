package draft

import (
	"reflect"
	"testing"

	"github.com/qforge/qforge-backend/internal/model"
)

func TestSetField_Idempotent(t *testing.T) {
	d := New()
	d.SetField(FieldBoard, "CBSE")
	first := d.Question()
	d.SetField(FieldBoard, "CBSE")
	second := d.Question()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated SetField changed state:\n%+v\n%+v", first, second)
	}
}

func TestQuestion_SnapshotIsIsolated(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeSingleCorrect))
	snap := d.Question()

	d.SetOptionText(0, "Newton")

	if snap.Options[0].Text != "" {
		t.Fatal("later edit leaked into earlier snapshot")
	}
	if d.Question().Options[0].Text != "Newton" {
		t.Fatal("edit not visible in fresh snapshot")
	}
}

func TestViewMode_RejectsAllMutations(t *testing.T) {
	q := validQuestion(model.QuestionTypeSingleCorrect)
	d := View(q)

	d.SetField(FieldBoard, "ICSE")
	d.SetTopics([]string{"Force"})
	d.AddOption()
	d.RemoveOption(0)
	d.SetOptionText(0, "changed")
	d.AddRubric()
	d.AddChildQuestion(false)
	d.SetChildOptionText(0, 0, "changed")

	if !reflect.DeepEqual(d.Question(), q) {
		t.Fatalf("view-mode draft was mutated:\n%+v\nwant\n%+v", d.Question(), q)
	}
}

func TestAddOption_AppendsBlankIncorrect(t *testing.T) {
	d := FromQuestion(validQuestion(model.QuestionTypeMultipleCorrect))
	before := len(d.Question().Options)
	d.AddOption()
	opts := d.Question().Options
	if len(opts) != before+1 {
		t.Fatalf("len = %d, want %d", len(opts), before+1)
	}
	last := opts[len(opts)-1]
	if last.Text != "" || last.IsCorrect {
		t.Fatalf("appended option = %+v, want blank incorrect", last)
	}
}

func TestRemoveOption_GuardsChoiceFloor(t *testing.T) {
	d := FromQuestion(validQuestion(model.QuestionTypeTrueFalse))
	d.RemoveOption(0) // already at the two-option floor
	if got := len(d.Question().Options); got != 2 {
		t.Fatalf("len = %d, want 2 (guarded)", got)
	}

	d = FromQuestion(validQuestion(model.QuestionTypeSingleCorrect))
	d.RemoveOption(3)
	d.RemoveOption(2)
	d.RemoveOption(1) // would drop below 2, must be refused
	if got := len(d.Question().Options); got != 2 {
		t.Fatalf("len = %d, want 2 (guarded)", got)
	}

	// Non-choice types have no floor.
	d = FromQuestion(validQuestion(model.QuestionTypeSubjective))
	d.SetField(FieldQuestionType, string(model.QuestionTypeSubjective))
	d.AddOption()
	d.AddOption()
	d.RemoveOption(0)
	d.RemoveOption(0)
	if got := len(d.Question().Options); got != 0 {
		t.Fatalf("len = %d, want 0", got)
	}
}

func TestRemoveOption_OutOfRangeIsNoop(t *testing.T) {
	d := FromQuestion(validQuestion(model.QuestionTypeSingleCorrect))
	d.RemoveOption(-1)
	d.RemoveOption(99)
	if got := len(d.Question().Options); got != 4 {
		t.Fatalf("len = %d, want 4", got)
	}
}

func TestRubricOps(t *testing.T) {
	d := New()
	d.AddRubric()
	d.AddRubric()
	d.SetRubricCriteria(0, "States the law")
	d.SetRubricWeight(0, 40)
	d.SetRubricWeight(1, 59)

	if got := d.RubricWeightTotal(); got != 99 {
		t.Fatalf("total = %d, want 99 (no auto-normalization)", got)
	}

	d.RemoveRubric(1)
	if got := d.RubricWeightTotal(); got != 40 {
		t.Fatalf("total after remove = %d, want 40", got)
	}
}

func TestAddChildQuestion_Seeding(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeNested))

	d.AddChildQuestion(false)
	children := d.Question().ChildQuestions
	if len(children) != 1 {
		t.Fatalf("children = %d, want 1", len(children))
	}
	if children[0].Marks != 1 {
		t.Fatalf("default marks = %d, want 1", children[0].Marks)
	}
	if children[0].Options != nil {
		t.Fatalf("plain child seeded options: %+v", children[0].Options)
	}

	d.AddChildQuestion(true)
	children = d.Question().ChildQuestions
	if got := len(children[1].Options); got != 4 {
		t.Fatalf("with-options child seeded %d options, want 4", got)
	}
}

func TestAddChildQuestion_OptionsOnlyForNested(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeSubjective))
	d.AddChildQuestion(true)
	if opts := d.Question().ChildQuestions[0].Options; opts != nil {
		t.Fatalf("non-nested type seeded child options: %+v", opts)
	}
}

func TestSetChildOption_LazilyCreatesStructure(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeNested))
	d.AddChildQuestion(false) // child with no options slice

	d.SetChildOptionText(0, 2, "Gamma")
	d.SetChildOptionCorrect(0, 2, true)

	opts := d.Question().ChildQuestions[0].Options
	if len(opts) != 3 {
		t.Fatalf("options grew to %d, want 3", len(opts))
	}
	if opts[2].Text != "Gamma" || !opts[2].IsCorrect {
		t.Fatalf("slot 2 = %+v, want {Gamma true}", opts[2])
	}
	if opts[0].Text != "" || opts[1].Text != "" {
		t.Fatal("intermediate slots must be blank")
	}
}

func TestSetChildOption_MissingChildIsNoop(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeNested))
	d.SetChildOptionText(0, 0, "orphan")
	if got := len(d.Question().ChildQuestions); got != 0 {
		t.Fatalf("children = %d, want 0", got)
	}
}

func TestChildQuestionFieldOps(t *testing.T) {
	d := New()
	d.SetField(FieldQuestionType, string(model.QuestionTypeNested))
	d.AddChildQuestion(false)
	d.SetChildQuestionText(0, "Find the acceleration.")
	d.SetChildQuestionAnswer(0, "a = F/m")
	d.SetChildQuestionMarks(0, 3)
	d.SetChildQuestionImage(0, "/uploads/diagram.png")

	c := d.Question().ChildQuestions[0]
	want := model.ChildQuestionItem{
		Question: "Find the acceleration.",
		Answer:   "a = F/m",
		Marks:    3,
		Image:    "/uploads/diagram.png",
	}
	if !reflect.DeepEqual(c, want) {
		t.Fatalf("child = %+v, want %+v", c, want)
	}
}

func TestFromQuestion_DoesNotAliasInput(t *testing.T) {
	q := validQuestion(model.QuestionTypeSingleCorrect)
	d := FromQuestion(q)
	d.SetOptionText(0, "changed")
	if q.Options[0].Text == "changed" {
		t.Fatal("draft aliases caller's slices")
	}
}
