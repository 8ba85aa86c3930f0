package transaction

import (
	"context"
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

func TestRepository_MarkPaid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET (.+) WHERE id = \$\d AND is_paid = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkPaid(context.Background(), uuid.New(), time.Now().UTC())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPaid_AlreadyPaidRowIsNotMatched(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}

	// The WHERE clause excludes paid rows, so zero affected rows means the
	// transaction is missing or already settled.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET (.+) WHERE id = \$\d AND is_paid = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkPaid(context.Background(), uuid.New(), time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := &repository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET "deleted_at"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
