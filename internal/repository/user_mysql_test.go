package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserStore(t *testing.T) (*MySQLUserStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMySQLUserStore(db), mock
}

func TestMySQLUserStoreCreate(t *testing.T) {
	store, mock := newMockUserStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`)).
		WithArgs("u1", "alice123", "hash1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Create(context.Background(), &User{
		ID:           "u1",
		Username:     "alice123",
		PasswordHash: "hash1",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserStoreCreateDuplicate(t *testing.T) {
	store, mock := newMockUserStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice123' for key 'users.username'"})

	err := store.Create(context.Background(), &User{ID: "u2", Username: "alice123", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestMySQLUserStoreFindByUsername(t *testing.T) {
	store, mock := newMockUserStore(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow("u1", "alice123", "hash1", created)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, created_at FROM users WHERE username = BINARY ?`)).
		WithArgs("alice123").
		WillReturnRows(rows)

	user, err := store.FindByUsername(context.Background(), "alice123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, created, user.CreatedAt)
}

func TestMySQLUserStoreFindByUsernameNotFound(t *testing.T) {
	store, mock := newMockUserStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, created_at FROM users WHERE username = BINARY ?`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	_, err := store.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMySQLUserStoreFindByID(t *testing.T) {
	store, mock := newMockUserStore(t)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow("u1", "alice123", "hash1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`)).
		WithArgs("u1").
		WillReturnRows(rows)

	user, err := store.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice123", user.Username)
}

func TestIsDuplicateEntryError(t *testing.T) {
	assert.False(t, isDuplicateEntryError(nil))
	assert.False(t, isDuplicateEntryError(ErrUserNotFound))
	assert.False(t, isDuplicateEntryError(&mysql.MySQLError{Number: 1045}))
	assert.True(t, isDuplicateEntryError(&mysql.MySQLError{Number: 1062}))
}
