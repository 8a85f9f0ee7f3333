package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/sheet"
)

// SheetLogStore appends measurement rows to a spreadsheet tab and reads
// them back through the row codec.
type SheetLogStore struct {
	client    sheet.Client
	readRange string
}

// NewSheetLogStore creates a LogStore on the given tab range, e.g.
// "Logs!A:F".
func NewSheetLogStore(client sheet.Client, readRange string) *SheetLogStore {
	return &SheetLogStore{client: client, readRange: readRange}
}

// Append encodes the measurement and adds it as the bottom row.
func (s *SheetLogStore) Append(ctx context.Context, m model.Measurement) error {
	if err := s.client.Append(ctx, s.readRange, sheet.EncodeRow(m)); err != nil {
		return fmt.Errorf("appending log row: %w", err)
	}
	return nil
}

// ListByOwner decodes every row and keeps the owner's, preserving sheet
// order. A malformed row is skipped with a warning rather than aborting
// the whole listing; one bad row must not hide the rest of a user's
// history. A not-yet-provisioned tab reads as empty.
func (s *SheetLogStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Measurement, error) {
	rows, err := s.client.Read(ctx, s.readRange)
	if err != nil {
		if errors.Is(err, sheet.ErrSheetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading log rows: %w", err)
	}

	var logs []model.Measurement
	for i, row := range rows {
		m, err := sheet.DecodeRow(row)
		if err != nil {
			slog.Warn("skipping malformed log row", "row", i+1, "error", err)
			continue
		}
		if m.Base().OwnerID != ownerID {
			continue
		}
		logs = append(logs, m)
	}
	return logs, nil
}
