package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/repository"
)

// LogService validates incoming measurements, scopes them to their
// authenticated owner and persists them through a LogStore.
type LogService struct {
	store repository.LogStore
}

// NewLogService creates a new LogService.
func NewLogService(store repository.LogStore) *LogService {
	return &LogService{store: store}
}

// Submit validates a raw measurement payload and appends it to the store.
// The owner always comes from the verified token; any ownerId in the
// payload is overwritten. Persistence failures are wrapped and surfaced,
// never dropped.
func (s *LogService) Submit(ctx context.Context, ownerID string, raw []byte) (model.Measurement, error) {
	m, err := model.Validate(raw)
	if err != nil {
		return nil, err
	}

	base := m.Base()
	base.OwnerID = ownerID
	base.ID = uuid.NewString()

	if err := s.store.Append(ctx, m); err != nil {
		return nil, fmt.Errorf("saving measurement: %w", err)
	}
	return m, nil
}

// List returns the owner's measurements in insertion order, optionally
// narrowed to one kind. An empty kind means no filter.
func (s *LogService) List(ctx context.Context, ownerID string, kind model.Kind) ([]model.Measurement, error) {
	logs, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading measurements: %w", err)
	}

	if kind == "" {
		return logs, nil
	}

	var filtered []model.Measurement
	for _, m := range logs {
		if m.Kind() == kind {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}
