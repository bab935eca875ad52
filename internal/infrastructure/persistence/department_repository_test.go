package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDepartmentRepository(t *testing.T) (*GormDepartmentRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormDepartmentRepository(gormDB), mock, mockDB
}

func departmentRows(id uuid.UUID, name, code string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "is_active", "created_at", "updated_at", "name", "code", "description",
	}).AddRow(id, true, now, now, name, code, "")
}

func TestGormDepartmentRepository_FindByCode(t *testing.T) {
	t.Run("uppercases the code before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockDepartmentRepository(t)
		defer mockDB.Close()

		deptID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "departments" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("HR", 1).
			WillReturnRows(departmentRows(deptID, "Human Resources", "HR", time.Now()))

		dept, err := repo.FindByCode(context.Background(), "hr")

		assert.NoError(t, err)
		require.NotNil(t, dept)
		assert.Equal(t, "HR", dept.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown code", func(t *testing.T) {
		repo, mock, mockDB := newMockDepartmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "departments" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("NOPE", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		dept, err := repo.FindByCode(context.Background(), "nope")

		assert.Nil(t, dept)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDepartmentRepository_FindAll(t *testing.T) {
	t.Run("defaults to ordering by name", func(t *testing.T) {
		repo, mock, mockDB := newMockDepartmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "departments" ORDER BY name ASC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(departmentRows(uuid.New(), "Finance", "FIN", time.Now()))

		filter := shared.DefaultFilter()
		filter.OrderBy = ""
		filter.OrderDir = "asc"

		depts, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, depts, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search matches name and code", func(t *testing.T) {
		repo, mock, mockDB := newMockDepartmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "departments" WHERE name ILIKE \$1 OR code ILIKE \$2 ORDER BY .* LIMIT .*`).
			WithArgs("%fin%", "%fin%", 20).
			WillReturnRows(departmentRows(uuid.New(), "Finance", "FIN", time.Now()))

		filter := shared.DefaultFilter()
		filter.Search = "fin"

		depts, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, depts, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDepartmentRepository_Save(t *testing.T) {
	t.Run("maps unique violation to ErrAlreadyExists", func(t *testing.T) {
		repo, mock, mockDB := newMockDepartmentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "departments" SET .*`).
			WillReturnError(&pq.Error{Code: pgUniqueViolation})

		dept, err := inventory.NewDepartment("Finance", "FIN")
		require.NoError(t, err)

		err = repo.Save(context.Background(), dept)

		assert.Equal(t, shared.ErrAlreadyExists, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDepartmentRepository_ExistsByCode(t *testing.T) {
	repo, mock, mockDB := newMockDepartmentRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "departments" WHERE code = \$1`).
		WithArgs("IT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByCode(context.Background(), "it")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
