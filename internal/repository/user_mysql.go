package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQLUserStore keeps credential records in a users table. The UNIQUE
// index on username is what closes the registration race for this
// backend: a losing concurrent insert surfaces as ErrDuplicateUsername.
type MySQLUserStore struct {
	db *sql.DB
}

// NewMySQLUserStore creates a UserStore backed by the given pool.
func NewMySQLUserStore(db *sql.DB) *MySQLUserStore {
	return &MySQLUserStore{db: db}
}

// Create inserts a new credential record.
func (s *MySQLUserStore) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt); err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// FindByUsername retrieves a user by exact username. BINARY forces a
// case-sensitive match regardless of the column collation.
func (s *MySQLUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = BINARY ?`
	return s.findOne(ctx, query, username)
}

// FindByID retrieves a user by id.
func (s *MySQLUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE id = ?`
	return s.findOne(ctx, query, id)
}

func (s *MySQLUserStore) findOne(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// isDuplicateEntryError checks for MySQL error 1062 (duplicate entry on a
// unique index).
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
