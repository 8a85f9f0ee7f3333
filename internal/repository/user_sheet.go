package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/healthtrack/healthtrack-go/internal/sheet"
)

// userColumns is the credential row layout: userId, username, passwordHash.
const userColumns = 3

// userHeader is written as the first row of the tab and skipped on read.
var userHeader = []string{"UserID", "Username", "PasswordHash"}

// SheetUserStore keeps credential records as rows on a spreadsheet tab.
// The sheet cannot hold a createdAt cell in the fixed 3-column layout, so
// records read back with a zero CreatedAt.
type SheetUserStore struct {
	client    sheet.Client
	readRange string

	// mu serializes the duplicate check against the append in Create.
	// The sheet has no uniqueness constraint of its own, so without this
	// two concurrent registrations for one username could both land.
	mu sync.Mutex
}

// NewSheetUserStore creates a UserStore on the given tab range, e.g.
// "Users!A:C".
func NewSheetUserStore(client sheet.Client, readRange string) *SheetUserStore {
	return &SheetUserStore{client: client, readRange: readRange}
}

// records reads every credential row, skipping the header. A tab that has
// not been provisioned yet reads as empty.
func (s *SheetUserStore) records(ctx context.Context) ([][]string, error) {
	rows, err := s.client.Read(ctx, s.readRange)
	if err != nil {
		if errors.Is(err, sheet.ErrSheetNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

func userFromRow(row []string) (*User, bool) {
	if len(row) < userColumns {
		return nil, false
	}
	return &User{ID: row[0], Username: row[1], PasswordHash: row[2]}, true
}

// FindByUsername scans the tab for an exact username match.
func (s *SheetUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	rows, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if user, ok := userFromRow(row); ok && user.Username == username {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID scans the tab for a matching user id.
func (s *SheetUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	rows, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if user, ok := userFromRow(row); ok && user.ID == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new credential row. The username re-check and the
// append run under the store lock, which is the serialization point that
// keeps two racing registrations from both succeeding.
func (s *SheetUserStore) Create(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.client.Read(ctx, s.readRange)
	switch {
	case errors.Is(err, sheet.ErrSheetNotFound):
		rows = nil
	case err != nil:
		return err
	}

	if len(rows) == 0 {
		if err := s.client.Append(ctx, s.readRange, userHeader); err != nil {
			return err
		}
	} else {
		for _, row := range rows[1:] {
			if existing, ok := userFromRow(row); ok && existing.Username == user.Username {
				return ErrDuplicateUsername
			}
		}
	}

	return s.client.Append(ctx, s.readRange, []string{user.ID, user.Username, user.PasswordHash})
}
