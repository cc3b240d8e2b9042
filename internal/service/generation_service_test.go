package service

import (
	"context"
	"errors"
	"testing"

	"github.com/qforge/qforge-backend/internal/draft"
	"github.com/qforge/qforge-backend/internal/model"
)

func genRequest(subject, qtype string) model.GenerateQuestionRequest {
	return model.GenerateQuestionRequest{
		Board:      "CBSE",
		Grade:      "10",
		Subject:    subject,
		Type:       qtype,
		Difficulty: "MEDIUM",
		Marks:      "5",
	}
}

// Every fixture must produce a draft that survives the submit-time
// validator unchanged; a template the teacher has to fix defeats its point.
func TestFixtureGenerator_OutputValidates(t *testing.T) {
	gen := NewFixtureGenerator()
	tests := []struct {
		subject string
		qtype   model.QuestionType
	}{
		{"Physics", model.QuestionTypeSingleCorrect},
		{"Physics", model.QuestionTypeMultipleCorrect},
		{"Physics", model.QuestionTypeTrueFalse},
		{"Physics", model.QuestionTypeFillBlank},
		{"Physics", model.QuestionTypeSubjective},
		{"Physics", model.QuestionTypeNested},
		{"Mathematics", model.QuestionTypeSingleCorrect},
		{"Mathematics", model.QuestionTypeSubjective},
		{"Chemistry", model.QuestionTypeSingleCorrect},
		{"Chemistry", model.QuestionTypeFillBlank},
	}
	for _, tc := range tests {
		t.Run(tc.subject+"/"+string(tc.qtype), func(t *testing.T) {
			q, err := gen.Generate(context.Background(), genRequest(tc.subject, string(tc.qtype)))
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if q.Type != tc.qtype {
				t.Fatalf("type = %s, want %s", q.Type, tc.qtype)
			}
			if q.Board != "CBSE" || q.Grade != "10" || q.Marks != "5" {
				t.Fatalf("request metadata not carried through: %+v", q)
			}
			if res := draft.Validate(*q); !res.OK {
				t.Fatalf("generated draft fails validation: %q", res.Reason)
			}
		})
	}
}

func TestFixtureGenerator_SubjectIsCaseInsensitive(t *testing.T) {
	gen := NewFixtureGenerator()
	if _, err := gen.Generate(context.Background(), genRequest("  pHySiCs ", string(model.QuestionTypeTrueFalse))); err != nil {
		t.Fatalf("generate: %v", err)
	}
}

func TestFixtureGenerator_UnknownSubjectOrType(t *testing.T) {
	gen := NewFixtureGenerator()
	_, err := gen.Generate(context.Background(), genRequest("History", string(model.QuestionTypeSingleCorrect)))
	if !errors.Is(err, ErrNoFixture) {
		t.Fatalf("err = %v, want ErrNoFixture", err)
	}
	_, err = gen.Generate(context.Background(), genRequest("Mathematics", string(model.QuestionTypeNested)))
	if !errors.Is(err, ErrNoFixture) {
		t.Fatalf("err = %v, want ErrNoFixture", err)
	}
}

// Callers edit the generated draft; edits must not bleed into the shared
// fixture table.
func TestFixtureGenerator_ResultDoesNotAliasFixture(t *testing.T) {
	gen := NewFixtureGenerator()
	req := genRequest("Physics", string(model.QuestionTypeSingleCorrect))

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	first.Options[0].Text = "tampered"

	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if second.Options[0].Text == "tampered" {
		t.Fatal("generated drafts share option slices with the fixture table")
	}
}
