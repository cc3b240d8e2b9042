package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/model"
)

func newTestDraftService(t *testing.T) *DraftService {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewDraftService(&config.Config{DraftTTL: time.Hour}, rdb)
}

// A client that switched the type to TRUE_FALSE but sent its stale choice
// list must get the fixed True/False pair back, the same way the editor
// reshapes the payload on a type switch.
func TestDraftSave_ReconcilesOptionsToDeclaredType(t *testing.T) {
	svc := newTestDraftService(t)
	ctx := context.Background()

	q := model.Question{
		Type:         model.QuestionTypeTrueFalse,
		QuestionText: "Sound travels faster in water than in air",
		Options: []model.OptionItem{
			{Text: "Red"},
			{Text: "Green", IsCorrect: true},
			{Text: "Blue"},
		},
	}
	if err := svc.Save(ctx, 7, "wip-1", q); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := svc.Load(ctx, 7, "wip-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []model.OptionItem{
		{Text: "True", IsCorrect: true},
		{Text: "False", IsCorrect: false},
	}
	if len(loaded.Options) != len(want) {
		t.Fatalf("got %d options, want %d", len(loaded.Options), len(want))
	}
	for i, opt := range want {
		if loaded.Options[i] != opt {
			t.Errorf("option %d = %+v, want %+v", i, loaded.Options[i], opt)
		}
	}
}

func TestDraftSave_SubjectivePayloadRoundTrips(t *testing.T) {
	svc := newTestDraftService(t)
	ctx := context.Background()

	q := model.Question{
		Type:         model.QuestionTypeSubjective,
		QuestionText: "Explain total internal reflection",
		Rubrics: []model.RubricItem{
			{Criteria: "Definition", Weight: 40},
			{Criteria: "Worked example", Weight: 60},
		},
	}
	if err := svc.Save(ctx, 7, "wip-2", q); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := svc.Load(ctx, 7, "wip-2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.QuestionText != q.QuestionText {
		t.Errorf("question text = %q, want %q", loaded.QuestionText, q.QuestionText)
	}
	if len(loaded.Rubrics) != 2 || loaded.Rubrics[1].Weight != 60 {
		t.Errorf("rubrics not preserved: %+v", loaded.Rubrics)
	}
}

func TestDraftDiscardThenLoad(t *testing.T) {
	svc := newTestDraftService(t)
	ctx := context.Background()

	if err := svc.Save(ctx, 7, "wip-3", model.Question{QuestionText: "scratch"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Discard(ctx, 7, "wip-3"); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if _, err := svc.Load(ctx, 7, "wip-3"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got: %v", err)
	}
}
