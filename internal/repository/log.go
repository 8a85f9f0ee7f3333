package repository

import (
	"context"

	"github.com/healthtrack/healthtrack-go/internal/model"
)

// LogStore is the append/query capability the log service persists
// measurements through.
type LogStore interface {
	Append(ctx context.Context, m model.Measurement) error
	// ListByOwner returns the owner's measurements in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Measurement, error)
}
