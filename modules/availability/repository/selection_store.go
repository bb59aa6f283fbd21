package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"meetpoll-api/core/cache"
	"meetpoll-api/core/constants"
	"meetpoll-api/core/logger"
	"meetpoll-api/modules/availability/entity"

	"github.com/google/uuid"
)

// SelectionStore keeps the host's pending final slot outside the record store.
// A missing key means no selection.
type SelectionStore interface {
	Load(ctx context.Context, eventID uuid.UUID, hostID string) (*entity.SelectedSlot, error)
	Save(ctx context.Context, eventID uuid.UUID, hostID string, slot entity.SelectedSlot) error
	Clear(ctx context.Context, eventID uuid.UUID, hostID string) error
}

type CacheSelectionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheSelectionStore keeps selections in c, each expiring ttl after its last save.
func NewCacheSelectionStore(c cache.Cache, ttl time.Duration) *CacheSelectionStore {
	return &CacheSelectionStore{cache: c, ttl: ttl}
}

func selectionKey(eventID uuid.UUID, hostID string) string {
	return constants.RedisKeyFinalSelection + eventID.String() + ":" + hostID
}

func (s *CacheSelectionStore) Load(ctx context.Context, eventID uuid.UUID, hostID string) (*entity.SelectedSlot, error) {
	raw, err := s.cache.Get(ctx, selectionKey(eventID, hostID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		logger.Error("SelectionStore:Load", err)
		return nil, err
	}

	var slot entity.SelectedSlot
	if err := json.Unmarshal(raw, &slot); err != nil {
		// An unreadable snapshot is treated as no selection.
		logger.Warn("SelectionStore:Load - corrupt snapshot", "error", err, "event_id", eventID.String())
		return nil, nil
	}
	return &slot, nil
}

func (s *CacheSelectionStore) Save(ctx context.Context, eventID uuid.UUID, hostID string, slot entity.SelectedSlot) error {
	raw, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, selectionKey(eventID, hostID), raw, s.ttl); err != nil {
		logger.Error("SelectionStore:Save", err)
		return err
	}
	return nil
}

func (s *CacheSelectionStore) Clear(ctx context.Context, eventID uuid.UUID, hostID string) error {
	if err := s.cache.Del(ctx, selectionKey(eventID, hostID)); err != nil {
		logger.Error("SelectionStore:Clear", err)
		return err
	}
	return nil
}
