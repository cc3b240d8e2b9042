// Package draft holds the in-memory editing model for a single question:
// a mutable draft with granular field operations, type-driven payload
// reconciliation, the submit-time validator, and the paper-marks assembler.
// The package performs no I/O; persistence and collaborators live in the
// service layer.
package draft

import (
	"github.com/qforge/qforge-backend/internal/model"
)

// Mode controls whether a draft accepts mutations.
type Mode int

const (
	// ModeEdit is a normal editable draft (new or loaded for editing).
	ModeEdit Mode = iota
	// ModeView is a read-only draft; every mutation is a no-op.
	ModeView
)

// Field names a scalar string field of the draft settable via SetField.
type Field string

const (
	FieldBoard               Field = "board"
	FieldGrade               Field = "grade"
	FieldSubject             Field = "subject"
	FieldChapter             Field = "chapter"
	FieldMarks               Field = "marks"
	FieldDifficulty          Field = "difficulty"
	FieldQuestionType        Field = "question_type"
	FieldQuestionText        Field = "question_text"
	FieldQuestionImage       Field = "question_image"
	FieldAnswer              Field = "answer"
	FieldParentQuestion      Field = "parent_question"
	FieldParentQuestionImage Field = "parent_question_image"
)

// Draft owns one editable question. Slices are replaced, never mutated in
// place, so a caller holding a snapshot from Question() never observes a
// later edit.
type Draft struct {
	mode Mode
	q    model.Question
}

// New creates an empty editable draft.
func New() *Draft {
	return &Draft{mode: ModeEdit}
}

// FromQuestion creates an editable draft hydrated from an existing question.
func FromQuestion(q model.Question) *Draft {
	return &Draft{mode: ModeEdit, q: cloneQuestion(q)}
}

// View creates a read-only draft. All mutation operations are no-ops.
func View(q model.Question) *Draft {
	return &Draft{mode: ModeView, q: cloneQuestion(q)}
}

// Mode returns the draft's mode.
func (d *Draft) Mode() Mode { return d.mode }

// Question returns a snapshot of the draft's current state. The snapshot
// shares no slices with the draft.
func (d *Draft) Question() model.Question {
	return cloneQuestion(d.q)
}

// SetField sets one scalar field. No validation happens here; validation is
// deferred to submit time. Setting FieldQuestionType additionally reconciles
// the options payload to the new type's shape.
func (d *Draft) SetField(f Field, value string) {
	if d.mode == ModeView {
		return
	}
	switch f {
	case FieldBoard:
		d.q.Board = value
	case FieldGrade:
		d.q.Grade = value
	case FieldSubject:
		d.q.Subject = value
	case FieldChapter:
		d.q.Chapter = value
	case FieldMarks:
		d.q.Marks = value
	case FieldDifficulty:
		d.q.Difficulty = model.Difficulty(value)
	case FieldQuestionText:
		d.q.QuestionText = value
	case FieldQuestionImage:
		d.q.QuestionImage = value
	case FieldAnswer:
		d.q.Answer = value
	case FieldParentQuestion:
		d.q.ParentQuestion = value
	case FieldParentQuestionImage:
		d.q.ParentQuestionImage = value
	case FieldQuestionType:
		d.q.Type = model.QuestionType(value)
		d.q.Options = reconcileOptions(d.q.Type, d.q.Options)
	}
}

// SetTopics replaces the topics set. Order is preserved as given but carries
// no meaning.
func (d *Draft) SetTopics(topics []string) {
	if d.mode == ModeView {
		return
	}
	d.q.Topics = append([]string(nil), topics...)
}

// ─── Options ───────────────────────────────────────────────────────────────

// AddOption appends a blank incorrect option.
func (d *Draft) AddOption() {
	if d.mode == ModeView {
		return
	}
	d.q.Options = append(cloneOptions(d.q.Options), model.OptionItem{})
}

// RemoveOption removes the option at i. For choice-bearing types the
// operation is a guarded no-op once only two options remain.
func (d *Draft) RemoveOption(i int) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.Options) {
		return
	}
	if d.q.Type.HasOptions() && len(d.q.Options) <= 2 {
		return
	}
	next := cloneOptions(d.q.Options)
	d.q.Options = append(next[:i], next[i+1:]...)
}

// SetOptionText sets the text of the option at i.
func (d *Draft) SetOptionText(i int, text string) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.Options) {
		return
	}
	next := cloneOptions(d.q.Options)
	next[i].Text = text
	d.q.Options = next
}

// SetOptionCorrect marks or unmarks the option at i as correct. The store
// does not enforce single-correct exclusivity; the validator does.
func (d *Draft) SetOptionCorrect(i int, correct bool) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.Options) {
		return
	}
	next := cloneOptions(d.q.Options)
	next[i].IsCorrect = correct
	d.q.Options = next
}

// SetOptionImage attaches an image URL to the option at i.
func (d *Draft) SetOptionImage(i int, url string) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.Options) {
		return
	}
	next := cloneOptions(d.q.Options)
	next[i].Image = url
	d.q.Options = next
}

// ─── Rubrics ───────────────────────────────────────────────────────────────

// AddRubric appends a blank rubric row.
func (d *Draft) AddRubric() {
	if d.mode == ModeView {
		return
	}
	d.q.Rubrics = append(cloneRubrics(d.q.Rubrics), model.RubricItem{})
}

// RemoveRubric removes the rubric at i. Weights are never re-normalized;
// RubricWeightTotal exposes the running total for display.
func (d *Draft) RemoveRubric(i int) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.Rubrics) {
		return
	}
	next := cloneRubrics(d.q.Rubrics)
	d.q.Rubrics = append(next[:i], next[i+1:]...)
}

// SetRubricCriteria sets the criteria text of the rubric at i.
func (d *Draft) SetRubricCriteria(i int, criteria string) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.Rubrics) {
		return
	}
	next := cloneRubrics(d.q.Rubrics)
	next[i].Criteria = criteria
	d.q.Rubrics = next
}

// SetRubricWeight sets the percentage weight of the rubric at i.
func (d *Draft) SetRubricWeight(i int, weight int) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.Rubrics) {
		return
	}
	next := cloneRubrics(d.q.Rubrics)
	next[i].Weight = weight
	d.q.Rubrics = next
}

// RubricWeightTotal returns the current sum of rubric weights.
func (d *Draft) RubricWeightTotal() int {
	total := 0
	for _, r := range d.q.Rubrics {
		total += r.Weight
	}
	return total
}

// ─── Child questions ───────────────────────────────────────────────────────

// AddChildQuestion appends a sub-question with default marks of 1.
// withOptions additionally seeds four blank choices, for nested questions
// whose children are themselves choice questions.
func (d *Draft) AddChildQuestion(withOptions bool) {
	if d.mode == ModeView {
		return
	}
	child := model.ChildQuestionItem{Marks: 1}
	if withOptions && d.q.Type == model.QuestionTypeNested {
		child.Options = make([]model.OptionItem, 4)
	}
	d.q.ChildQuestions = append(cloneChildren(d.q.ChildQuestions), child)
}

// RemoveChildQuestion removes the sub-question at i.
func (d *Draft) RemoveChildQuestion(i int) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.ChildQuestions) {
		return
	}
	next := cloneChildren(d.q.ChildQuestions)
	d.q.ChildQuestions = append(next[:i], next[i+1:]...)
}

// SetChildQuestionText sets the question text of the sub-question at i.
func (d *Draft) SetChildQuestionText(i int, text string) {
	d.updateChild(i, func(c *model.ChildQuestionItem) { c.Question = text })
}

// SetChildQuestionAnswer sets the model answer of the sub-question at i.
func (d *Draft) SetChildQuestionAnswer(i int, answer string) {
	d.updateChild(i, func(c *model.ChildQuestionItem) { c.Answer = answer })
}

// SetChildQuestionMarks sets the marks of the sub-question at i.
func (d *Draft) SetChildQuestionMarks(i int, marks int) {
	d.updateChild(i, func(c *model.ChildQuestionItem) { c.Marks = marks })
}

// SetChildQuestionImage attaches an image URL to the sub-question at i.
func (d *Draft) SetChildQuestionImage(i int, url string) {
	d.updateChild(i, func(c *model.ChildQuestionItem) { c.Image = url })
}

// SetChildOptionText sets the text of option oi of the sub-question at qi.
// Missing intermediate structure (the child's options slice, or the slot
// itself) is created on demand so sparse prior state never faults.
func (d *Draft) SetChildOptionText(qi, oi int, text string) {
	d.updateChildOption(qi, oi, func(o *model.OptionItem) { o.Text = text })
}

// SetChildOptionCorrect marks option oi of the sub-question at qi correct.
func (d *Draft) SetChildOptionCorrect(qi, oi int, correct bool) {
	d.updateChildOption(qi, oi, func(o *model.OptionItem) { o.IsCorrect = correct })
}

// SetChildOptionImage attaches an image URL to option oi of sub-question qi.
func (d *Draft) SetChildOptionImage(qi, oi int, url string) {
	d.updateChildOption(qi, oi, func(o *model.OptionItem) { o.Image = url })
}

func (d *Draft) updateChild(i int, apply func(*model.ChildQuestionItem)) {
	if d.mode == ModeView || i < 0 || i >= len(d.q.ChildQuestions) {
		return
	}
	next := cloneChildren(d.q.ChildQuestions)
	apply(&next[i])
	d.q.ChildQuestions = next
}

func (d *Draft) updateChildOption(qi, oi int, apply func(*model.OptionItem)) {
	if d.mode == ModeView || qi < 0 || qi >= len(d.q.ChildQuestions) || oi < 0 {
		return
	}
	next := cloneChildren(d.q.ChildQuestions)
	for len(next[qi].Options) <= oi {
		next[qi].Options = append(next[qi].Options, model.OptionItem{})
	}
	apply(&next[qi].Options[oi])
	d.q.ChildQuestions = next
}

// ─── Clone helpers ─────────────────────────────────────────────────────────

func cloneOptions(opts []model.OptionItem) []model.OptionItem {
	if opts == nil {
		return nil
	}
	return append([]model.OptionItem(nil), opts...)
}

func cloneRubrics(rubrics []model.RubricItem) []model.RubricItem {
	if rubrics == nil {
		return nil
	}
	return append([]model.RubricItem(nil), rubrics...)
}

func cloneChildren(children []model.ChildQuestionItem) []model.ChildQuestionItem {
	if children == nil {
		return nil
	}
	next := append([]model.ChildQuestionItem(nil), children...)
	for i := range next {
		next[i].Options = cloneOptions(next[i].Options)
	}
	return next
}

func cloneQuestion(q model.Question) model.Question {
	q.Topics = append([]string(nil), q.Topics...)
	q.Options = cloneOptions(q.Options)
	q.Rubrics = cloneRubrics(q.Rubrics)
	q.ChildQuestions = cloneChildren(q.ChildQuestions)
	return q
}
