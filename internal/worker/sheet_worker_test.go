package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/model"
)

type stubSheetStore struct {
	sheets     map[uuid.UUID]*model.AnswerSheet
	failReason map[uuid.UUID]string
}

func newStubSheetStore() *stubSheetStore {
	return &stubSheetStore{
		sheets:     map[uuid.UUID]*model.AnswerSheet{},
		failReason: map[uuid.UUID]string{},
	}
}

func (s *stubSheetStore) GetByID(_ context.Context, id uuid.UUID) (*model.AnswerSheet, error) {
	sheet, ok := s.sheets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	snapshot := *sheet
	return &snapshot, nil
}

func (s *stubSheetStore) SetStatus(_ context.Context, id uuid.UUID, status model.SheetStatus) error {
	s.sheets[id].Status = status
	return nil
}

func (s *stubSheetStore) MarkProcessed(_ context.Context, id uuid.UUID) error {
	s.sheets[id].Status = model.SheetStatusProcessed
	return nil
}

func (s *stubSheetStore) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	s.sheets[id].Status = model.SheetStatusFailed
	s.failReason[id] = reason
	return nil
}

func newTestWorker(t *testing.T, store sheetStore) (*SheetWorker, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSheetWorker(store, rdb, zerolog.Nop()), rdb
}

func latestEvent(t *testing.T, rdb *redis.Client, sheetID uuid.UUID) model.SheetProgressEvent {
	t.Helper()
	raw, err := rdb.Get(context.Background(), config.CacheKey.SheetStatusKey(sheetID.String())).Bytes()
	if err != nil {
		t.Fatalf("reading status key: %v", err)
	}
	var event model.SheetProgressEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("decoding status event: %v", err)
	}
	return event
}

// A sheet row that disappeared while the job sat in the queue (papers
// cascade-delete their sheets) must be dropped, not requeued: returning an
// error here would spin the same job through the queue forever.
func TestProcessSheet_DeletedSheetDropsJob(t *testing.T) {
	w, _ := newTestWorker(t, newStubSheetStore())

	if err := w.processSheet(context.Background(), uuid.New()); err != nil {
		t.Fatalf("expected deleted sheet to be dropped, got: %v", err)
	}
}

func TestProcessSheet_MissingFileMarksFailed(t *testing.T) {
	store := newStubSheetStore()
	id := uuid.New()
	store.sheets[id] = &model.AnswerSheet{ID: id, Status: model.SheetStatusUploaded}
	w, rdb := newTestWorker(t, store)

	if err := w.processSheet(context.Background(), id); err != nil {
		t.Fatalf("permanent failure must not be requeued, got: %v", err)
	}
	if got := store.sheets[id].Status; got != model.SheetStatusFailed {
		t.Errorf("status = %s, want %s", got, model.SheetStatusFailed)
	}
	if store.failReason[id] == "" {
		t.Error("expected a failure reason to be recorded")
	}

	event := latestEvent(t, rdb, id)
	if event.Status != model.SheetStatusFailed {
		t.Errorf("published status = %s, want %s", event.Status, model.SheetStatusFailed)
	}
	if event.Message == "" {
		t.Error("expected the failure reason in the published event")
	}
}

func TestProcessSheet_TerminalSheetIsNoOp(t *testing.T) {
	store := newStubSheetStore()
	id := uuid.New()
	store.sheets[id] = &model.AnswerSheet{ID: id, Status: model.SheetStatusProcessed, FileURL: "/uploads/a.pdf"}
	w, rdb := newTestWorker(t, store)

	if err := w.processSheet(context.Background(), id); err != nil {
		t.Fatalf("duplicate job must be a no-op, got: %v", err)
	}
	if got := store.sheets[id].Status; got != model.SheetStatusProcessed {
		t.Errorf("status = %s, want %s", got, model.SheetStatusProcessed)
	}
	if err := rdb.Get(context.Background(), config.CacheKey.SheetStatusKey(id.String())).Err(); err != redis.Nil {
		t.Errorf("duplicate job must not publish, got: %v", err)
	}
}

func TestProcessSheet_HappyPathMarksProcessed(t *testing.T) {
	store := newStubSheetStore()
	id := uuid.New()
	store.sheets[id] = &model.AnswerSheet{ID: id, Status: model.SheetStatusUploaded, FileURL: "/uploads/a.pdf"}
	w, rdb := newTestWorker(t, store)

	if err := w.processSheet(context.Background(), id); err != nil {
		t.Fatalf("processSheet: %v", err)
	}
	if got := store.sheets[id].Status; got != model.SheetStatusProcessed {
		t.Errorf("status = %s, want %s", got, model.SheetStatusProcessed)
	}

	event := latestEvent(t, rdb, id)
	if event.Status != model.SheetStatusProcessed || event.Progress != 100 {
		t.Errorf("final event = %s/%d, want %s/100", event.Status, event.Progress, model.SheetStatusProcessed)
	}
}
