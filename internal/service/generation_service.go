package service

import (
	"context"
	"errors"
	"strings"

	"github.com/qforge/qforge-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrNoFixture is returned when the fixture generator has no template for
// the requested subject and question type.
var ErrNoFixture = errors.New("no generation template for subject and type")

// Generator produces a question draft from classification, type, difficulty
// and marks. Implementations may call a real content-generation backend;
// the shipped FixtureGenerator is a deterministic lookup table.
type Generator interface {
	Generate(ctx context.Context, req model.GenerateQuestionRequest) (*model.Question, error)
}

// GenerationService fronts a Generator with logging. Failures are surfaced
// to the caller untouched; the caller's draft is never modified on failure.
type GenerationService struct {
	gen Generator
	log zerolog.Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(gen Generator, log zerolog.Logger) *GenerationService {
	return &GenerationService{
		gen: gen,
		log: log.With().Str("component", "generation_service").Logger(),
	}
}

// Generate produces a question draft. The result is not validated here: the
// teacher reviews and edits it, and the draft validator gates the eventual
// save like any hand-written question.
func (s *GenerationService) Generate(ctx context.Context, req model.GenerateQuestionRequest) (*model.Question, error) {
	q, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).
			Str("subject", req.Subject).
			Str("type", req.Type).
			Msg("generation failed")
		return nil, err
	}
	return q, nil
}

// FixtureGenerator serves canned question templates keyed by subject and
// question type. It stands in for a real generation backend during
// development and in tests.
type FixtureGenerator struct{}

// NewFixtureGenerator creates a FixtureGenerator.
func NewFixtureGenerator() *FixtureGenerator {
	return &FixtureGenerator{}
}

type fixtureKey struct {
	subject string
	qtype   model.QuestionType
}

var fixtures = map[fixtureKey]model.Question{
	{"physics", model.QuestionTypeSingleCorrect}: {
		QuestionText: "Which of the following is the SI unit of force?",
		Options: []model.OptionItem{
			{Text: "Newton", IsCorrect: true},
			{Text: "Joule"},
			{Text: "Watt"},
			{Text: "Pascal"},
		},
	},
	{"physics", model.QuestionTypeMultipleCorrect}: {
		QuestionText: "Which of the following are vector quantities?",
		Options: []model.OptionItem{
			{Text: "Velocity", IsCorrect: true},
			{Text: "Displacement", IsCorrect: true},
			{Text: "Speed"},
			{Text: "Distance"},
		},
	},
	{"physics", model.QuestionTypeTrueFalse}: {
		QuestionText: "The acceleration due to gravity is the same for all objects in free fall.",
		Options: []model.OptionItem{
			{Text: "True", IsCorrect: true},
			{Text: "False"},
		},
	},
	{"physics", model.QuestionTypeFillBlank}: {
		QuestionText: "The rate of change of momentum of a body is directly proportional to the applied ____.",
		Answer:       "force",
	},
	{"physics", model.QuestionTypeSubjective}: {
		QuestionText: "State Newton's second law of motion and derive F = ma from it.",
		Rubrics: []model.RubricItem{
			{Criteria: "Correct statement of the law", Weight: 40},
			{Criteria: "Derivation with momentum", Weight: 40},
			{Criteria: "Units and notation", Weight: 20},
		},
	},
	{"physics", model.QuestionTypeNested}: {
		ParentQuestion: "A 2 kg block is pulled along a frictionless surface by a horizontal force of 10 N.",
		ChildQuestions: []model.ChildQuestionItem{
			{Question: "Draw the free-body diagram of the block.", Marks: 2},
			{Question: "Calculate the acceleration of the block.", Marks: 3, Answer: "a = F/m = 5 m/s²"},
		},
	},
	{"mathematics", model.QuestionTypeSingleCorrect}: {
		QuestionText: "What is the value of x if 2x + 6 = 14?",
		Options: []model.OptionItem{
			{Text: "4", IsCorrect: true},
			{Text: "5"},
			{Text: "6"},
			{Text: "10"},
		},
	},
	{"mathematics", model.QuestionTypeSubjective}: {
		QuestionText: "Prove that the sum of the angles of a triangle is 180 degrees.",
		Rubrics: []model.RubricItem{
			{Criteria: "Construction of the parallel line", Weight: 30},
			{Criteria: "Alternate-angle argument", Weight: 50},
			{Criteria: "Conclusion", Weight: 20},
		},
	},
	{"chemistry", model.QuestionTypeSingleCorrect}: {
		QuestionText: "What is the chemical symbol for sodium?",
		Options: []model.OptionItem{
			{Text: "Na", IsCorrect: true},
			{Text: "So"},
			{Text: "S"},
			{Text: "N"},
		},
	},
	{"chemistry", model.QuestionTypeFillBlank}: {
		QuestionText: "The pH of a neutral solution at 25°C is ____.",
		Answer:       "7",
	},
}

// Generate returns a copy of the matching fixture with the request's
// classification and metadata filled in, or ErrNoFixture.
func (g *FixtureGenerator) Generate(_ context.Context, req model.GenerateQuestionRequest) (*model.Question, error) {
	key := fixtureKey{
		subject: strings.ToLower(strings.TrimSpace(req.Subject)),
		qtype:   model.QuestionType(req.Type),
	}
	tmpl, ok := fixtures[key]
	if !ok {
		return nil, ErrNoFixture
	}

	q := tmpl
	q.Options = append([]model.OptionItem(nil), tmpl.Options...)
	q.Rubrics = append([]model.RubricItem(nil), tmpl.Rubrics...)
	q.ChildQuestions = append([]model.ChildQuestionItem(nil), tmpl.ChildQuestions...)

	q.Board = req.Board
	q.Grade = req.Grade
	q.Subject = req.Subject
	q.Chapter = req.Chapter
	q.Type = model.QuestionType(req.Type)
	q.Difficulty = model.Difficulty(req.Difficulty)
	q.Marks = req.Marks
	return &q, nil
}
