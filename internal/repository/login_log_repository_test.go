package repository_test

import (
	"context"
	"testing"
	"time"

	"rollingpaper/internal/model"
	"rollingpaper/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestLoginLogRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLoginLogRepository(gormDB)

	entry := &model.LoginLog{
		ID:          "log-1",
		UID:         "google-123",
		Email:       "user@example.com",
		DisplayName: "Test User",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "login_logs"`).
		WithArgs(entry.ID, entry.UID, entry.Email, entry.DisplayName, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := repo.Create(context.Background(), entry)

	// Assert
	assert.NoError(t, err)
	assert.False(t, entry.LoginAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginLogRepository_List(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLoginLogRepository(gormDB)

	newer := time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "login_logs" ORDER BY login_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uid", "email", "display_name", "login_at"}).
			AddRow("log-2", "google-2", "b@example.com", "B", newer).
			AddRow("log-1", "google-1", "a@example.com", "A", older))

	// Act
	logs, err := repo.List(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, "log-2", logs[0].ID)
	assert.Equal(t, "B", logs[0].DisplayName)
	assert.Equal(t, newer, logs[0].LoginAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginLogRepository_List_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewLoginLogRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "login_logs"`).WillReturnError(assert.AnError)

	// Act
	logs, err := repo.List(context.Background())

	// Assert
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
