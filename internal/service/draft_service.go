package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/draft"
	"github.com/qforge/qforge-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrDraftNotFound is returned when no autosaved draft exists under a key.
var ErrDraftNotFound = errors.New("draft not found")

// DraftService stores in-progress question drafts in Redis so a teacher can
// resume editing across devices. Drafts expire after the configured TTL of
// inactivity; saving refreshes the clock.
type DraftService struct {
	cfg *config.Config
	rdb *redis.Client
}

// NewDraftService creates a new DraftService.
func NewDraftService(cfg *config.Config, rdb *redis.Client) *DraftService {
	return &DraftService{cfg: cfg, rdb: rdb}
}

// Save upserts an autosaved draft under the teacher's key. The payload is
// hydrated through the editing model first: re-asserting the question type
// reconciles an options payload a client sent stale after a type switch, and
// the snapshot detaches every slice from the caller's value.
func (s *DraftService) Save(ctx context.Context, teacherID int, draftID string, q model.Question) error {
	d := draft.FromQuestion(q)
	d.SetField(draft.FieldQuestionType, string(q.Type))
	raw, err := json.Marshal(d.Question())
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	key := config.CacheKey.QuestionDraftKey(teacherID, draftID)
	if err := s.rdb.Set(ctx, key, raw, s.cfg.DraftTTL).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// Load retrieves an autosaved draft.
func (s *DraftService) Load(ctx context.Context, teacherID int, draftID string) (*model.Question, error) {
	key := config.CacheKey.QuestionDraftKey(teacherID, draftID)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var q model.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &q, nil
}

// Discard removes an autosaved draft, typically after a successful submit.
func (s *DraftService) Discard(ctx context.Context, teacherID int, draftID string) error {
	key := config.CacheKey.QuestionDraftKey(teacherID, draftID)
	return s.rdb.Del(ctx, key).Err()
}
