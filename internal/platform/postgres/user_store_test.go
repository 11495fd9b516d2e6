package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/worktracker/internal/domain"
	"github.com/phrazzld/worktracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertUserSQL  = `INSERT INTO users (email, full_name) VALUES ($1, $2) RETURNING id`
	selectUserSQL  = `SELECT id, email, full_name FROM users WHERE id = $1`
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "full_name"})
}

func TestNewPostgresUserStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(insertUserSQL).
			WithArgs("a@x.com", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		user := &domain.User{Email: "a@x.com"}
		require.NoError(t, s.Create(ctx, user))
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(insertUserSQL).
			WithArgs("a@x.com", "Ada").
			WillReturnError(newPgError(uniqueViolationCode, "users_email_key"))

		err := s.Create(ctx, &domain.User{Email: "a@x.com", FullName: strPtr("Ada")})
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid user never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		err := s.Create(ctx, &domain.User{Email: "not-an-email"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(selectUserSQL).
			WithArgs(int64(3)).
			WillReturnRows(userRows().AddRow(int64(3), "a@x.com", "Ada"))

		user, err := s.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: 3, Email: "a@x.com", FullName: strPtr("Ada")}, user)
	})

	t.Run("null full name", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(selectUserSQL).
			WithArgs(int64(3)).
			WillReturnRows(userRows().AddRow(int64(3), "a@x.com", nil))

		user, err := s.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Nil(t, user.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(selectUserSQL).WithArgs(int64(9)).WillReturnRows(userRows())

		_, err := s.GetByID(ctx, 9)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("driver failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		driverErr := errors.New("connection reset")
		mock.ExpectQuery(selectUserSQL).WithArgs(int64(9)).WillReturnError(driverErr)

		_, err := s.GetByID(ctx, 9)
		assert.ErrorIs(t, err, driverErr)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPostgresUserStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("sets only present fields", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(`UPDATE users SET email = $1 WHERE id = $2 RETURNING id, email, full_name`).
			WithArgs("b@x.com", int64(1)).
			WillReturnRows(userRows().AddRow(int64(1), "b@x.com", "Ada"))

		user, err := s.Update(ctx, 1, domain.UserPatch{Email: domain.Some("b@x.com")})
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", user.Email)
		assert.Equal(t, "Ada", *user.FullName)
	})

	t.Run("null clears full name", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(`UPDATE users SET full_name = $1 WHERE id = $2 RETURNING id, email, full_name`).
			WithArgs(nil, int64(1)).
			WillReturnRows(userRows().AddRow(int64(1), "a@x.com", nil))

		user, err := s.Update(ctx, 1, domain.UserPatch{FullName: domain.Null[string]()})
		require.NoError(t, err)
		assert.Nil(t, user.FullName)
	})

	t.Run("empty patch reads current row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(selectUserSQL).
			WithArgs(int64(1)).
			WillReturnRows(userRows().AddRow(int64(1), "a@x.com", nil))

		user, err := s.Update(ctx, 1, domain.UserPatch{})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(`UPDATE users SET email = $1, full_name = $2 WHERE id = $3 RETURNING id, email, full_name`).
			WithArgs("b@x.com", "Bea", int64(4)).
			WillReturnRows(userRows())

		_, err := s.Update(ctx, 4, domain.UserPatch{Email: domain.Some("b@x.com"), FullName: domain.Some("Bea")})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("email taken", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		mock.ExpectQuery(`UPDATE users SET email = $1 WHERE id = $2 RETURNING id, email, full_name`).
			WithArgs("b@x.com", int64(1)).
			WillReturnError(newPgError(uniqueViolationCode, "users_email_key"))

		_, err := s.Update(ctx, 1, domain.UserPatch{Email: domain.Some("b@x.com")})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(selectUserSQL).
		WithArgs(int64(2)).
		WillReturnRows(userRows().AddRow(int64(2), "t@x.com", nil))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	user, err := s.WithTx(tx).GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	require.NoError(t, tx.Rollback())
}
