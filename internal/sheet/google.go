package sheet

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Google reads and appends rows of a Google Sheets spreadsheet through
// the Sheets v4 API.
type Google struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewGoogle builds a client for the given spreadsheet using a service
// account key in JSON form.
func NewGoogle(ctx context.Context, credentialsJSON []byte, spreadsheetID string) (*Google, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Google{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Append adds one row to the bottom of the range.
func (g *Google) Append(ctx context.Context, readRange string, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	_, err := g.svc.Spreadsheets.Values.
		Append(g.spreadsheetID, readRange, &sheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}
	return nil
}

// Read returns every row in the range. A range pointing at a tab that
// does not exist yet yields ErrSheetNotFound.
func (g *Google) Read(ctx context.Context, readRange string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		if isMissingRange(err) {
			return nil, ErrSheetNotFound
		}
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isMissingRange reports whether the API rejected the request because the
// tab named in the range has not been created. The Sheets API answers
// with 400 "Unable to parse range" for an unknown tab and 404 for an
// unknown spreadsheet.
func isMissingRange(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 400 || apiErr.Code == 404
}
