package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockAttachmentRepository(t *testing.T) (*GormAttachmentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAttachmentRepository(gormDB), mock, mockDB
}

func TestGormAttachmentRepository_FindAll(t *testing.T) {
	t.Run("search spans the asset name and uploader", func(t *testing.T) {
		repo, mock, mockDB := newMockAttachmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT .* FROM "attachments" LEFT JOIN assets ON assets\.id = attachments\.asset_id LEFT JOIN users ON users\.id = attachments\.uploaded_by_id WHERE .*assets\.name ILIKE.*users\.username ILIKE.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		filter := shared.DefaultFilter()
		filter.Search = "warranty"

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
