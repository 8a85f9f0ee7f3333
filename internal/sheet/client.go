// Package sheet abstracts the spreadsheet used as a flat row store, and
// provides the codec between measurements and their row representation.
package sheet

import (
	"context"
	"errors"
)

// ErrSheetNotFound is returned by Read when the backing tab has not been
// provisioned yet. Stores treat it the same as an empty tab.
var ErrSheetNotFound = errors.New("sheet not found")

// Client is the minimal surface the stores need from a spreadsheet
// backend. Ranges use A1 notation, e.g. "Logs!A:F".
type Client interface {
	// Append adds one row below the last row of the range.
	Append(ctx context.Context, readRange string, row []string) error
	// Read returns every row in the range, in sheet order.
	Read(ctx context.Context, readRange string) ([][]string, error)
}
