package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/logger"
)

// ActivityStore persists activity log entries
type ActivityStore interface {
	Append(ctx context.Context, entry *models.ActivityEntry) error
	Latest(ctx context.Context, n int) ([]*models.ActivityEntry, error)
}

// Broadcaster pushes a payload to all connected activity feed clients
type Broadcaster interface {
	Broadcast(payload []byte)
}

// ActivityService appends to the activity log and mirrors each entry onto
// the live feed. Logging failures never fail the operation that produced
// the entry.
type ActivityService struct {
	store ActivityStore
	feed  Broadcaster
	now   func() time.Time
}

// NewActivityService creates a new activity service. feed may be nil when no
// live feed is attached.
func NewActivityService(store ActivityStore, feed Broadcaster, now func() time.Time) *ActivityService {
	if now == nil {
		now = time.Now
	}
	return &ActivityService{
		store: store,
		feed:  feed,
		now:   now,
	}
}

// Record appends one entry and pushes it to the live feed
func (s *ActivityService) Record(ctx context.Context, kind, message string) {
	entry := &models.ActivityEntry{
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now(),
	}

	if err := s.store.Append(ctx, entry); err != nil {
		logger.Error().Err(err).Str("kind", kind).Msg("Failed to append activity entry")
		return
	}

	if s.feed != nil {
		payload, err := json.Marshal(entry)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to encode activity entry")
			return
		}
		s.feed.Broadcast(payload)
	}
}

// Latest returns the most recent n entries, newest first
func (s *ActivityService) Latest(ctx context.Context, n int) ([]*models.ActivityEntry, error) {
	return s.store.Latest(ctx, n)
}
