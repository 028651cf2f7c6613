// Package store holds an in-process thumbnail store for local development
// and tests.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"thumbnail-backend/internal/models"
)

type MemoryStore struct {
	mu         sync.RWMutex
	thumbnails map[uuid.UUID]models.Thumbnail
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		thumbnails: make(map[uuid.UUID]models.Thumbnail),
		now:        time.Now,
	}
}

func (s *MemoryStore) CreateThumbnail(ctx context.Context, t *models.Thumbnail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Outcome = models.Pending()
	s.thumbnails[t.ID] = *t
	return nil
}

func (s *MemoryStore) CompleteThumbnail(ctx context.Context, id uuid.UUID, outcome models.Outcome, promptUsed string) (*models.Thumbnail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.thumbnails[id]
	if !ok || !t.Outcome.InProgress() {
		return nil, models.ErrThumbnailNotFound
	}

	t.Outcome = outcome
	if promptUsed != "" {
		t.PromptUsed = promptUsed
	}
	t.UpdatedAt = s.now().UTC()
	s.thumbnails[id] = t
	return &t, nil
}

func (s *MemoryStore) GetThumbnail(ctx context.Context, id, userID uuid.UUID) (*models.Thumbnail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.thumbnails[id]
	if !ok || t.UserID != userID {
		return nil, models.ErrThumbnailNotFound
	}
	return &t, nil
}

func (s *MemoryStore) ListThumbnails(ctx context.Context, userID uuid.UUID) ([]models.Thumbnail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thumbnails := make([]models.Thumbnail, 0)
	for _, t := range s.thumbnails {
		if t.UserID == userID {
			thumbnails = append(thumbnails, t)
		}
	}
	sort.Slice(thumbnails, func(i, j int) bool {
		return thumbnails[i].CreatedAt.After(thumbnails[j].CreatedAt)
	})
	return thumbnails, nil
}

func (s *MemoryStore) DeleteThumbnail(ctx context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.thumbnails[id]; ok && t.UserID == userID {
		delete(s.thumbnails, id)
	}
	return nil
}

// Len reports how many records are stored, across all users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.thumbnails)
}
