package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}
	ctx := context.Background()

	create := &dto.UserCreate{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Create(ctx, create))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	assert.Error(t, repo.Create(ctx, create))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users" (.+) VALUES (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &dto.UserCreate{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(
		[]string{"id", "username", "email", "password", "name", "created_at", "updated_at"},
	).AddRow(id, "alice", "alice@example.com", "hashed", "Alice", now, now)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(id, 1).WillReturnRows(rows)

	got, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hashed", got.HashedPassword)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)

	got, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}
	id := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(
		[]string{"id", "username", "email", "password", "name", "created_at", "updated_at"},
	).AddRow(id, "alice", "alice@example.com", "hashed", "Alice", now, now)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("alice@example.com", 1).WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}
	id := uuid.New()
	name := "Alice B."

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET (.+) WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), id, &dto.UserUpdate{Name: &name})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NoFieldsIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}

	// No SQL expected for an empty update.
	err := repo.Update(context.Background(), uuid.New(), &dto.UserUpdate{})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "deleted_at"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err = repo.ExistsByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
