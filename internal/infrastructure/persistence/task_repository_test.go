package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockTaskRepository(t *testing.T) (*GormTaskRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormTaskRepository(gormDB), mock, mockDB
}

func taskRows(id, projectID uuid.UUID, title string, status string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "is_active", "created_at", "updated_at", "project_id", "title",
		"description", "status", "priority", "created_by_id", "assigned_to_id",
		"due_date", "progress",
	}).AddRow(
		id, true, now, now, projectID, title,
		"", status, 2, nil, nil,
		nil, 0,
	)
}

func TestGormTaskRepository_FindByID(t *testing.T) {
	t.Run("finds existing task", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		taskID := uuid.New()
		projectID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(taskID, 1).
			WillReturnRows(taskRows(taskID, projectID, "Prepare onboarding", "todo", time.Now()))

		task, err := repo.FindByID(context.Background(), taskID)

		assert.NoError(t, err)
		require.NotNil(t, task)
		assert.Equal(t, taskID, task.ID)
		assert.Equal(t, tracker.StatusTodo, task.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing task", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		taskID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(taskID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		task, err := repo.FindByID(context.Background(), taskID)

		assert.Nil(t, task)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaskRepository_FindByProject(t *testing.T) {
	t.Run("scopes to project with status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		projectID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE tasks\.project_id = \$1 AND tasks\.status = \$2 ORDER BY tasks\.created_at DESC LIMIT .*`).
			WithArgs(projectID, "in_progress", 20).
			WillReturnRows(taskRows(uuid.New(), projectID, "Review migration", "in_progress", time.Now()))

		filter := shared.DefaultFilter()
		filter.Filters["status"] = "in_progress"

		tasks, err := repo.FindByProject(context.Background(), projectID, filter)

		assert.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, tracker.StatusInProgress, tasks[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaskRepository_FindByAssignee(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE tasks\.assigned_to_id = \$1 ORDER BY tasks\.created_at DESC LIMIT .*`).
		WithArgs(userID, 20).
		WillReturnRows(taskRows(uuid.New(), uuid.New(), "Audit inventory", "todo", time.Now()))

	tasks, err := repo.FindByAssignee(context.Background(), userID, shared.DefaultFilter())

	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_FindAll(t *testing.T) {
	t.Run("filters unassigned tasks with nil value", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE tasks\.assigned_to_id IS NULL ORDER BY tasks\.created_at DESC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		filter := shared.DefaultFilter()
		filter.Filters["assigned_to_id"] = nil

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search spans project and assignee columns", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT .* FROM "tasks" LEFT JOIN projects ON projects\.id = tasks\.project_id LEFT JOIN users ON users\.id = tasks\.assigned_to_id WHERE .*projects\.name ILIKE.*users\.username ILIKE.*users\.email ILIKE.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		filter := shared.DefaultFilter()
		filter.Search = "onboarding"

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sorts by whitelisted due_date field", func(t *testing.T) {
		repo, mock, mockDB := newMockTaskRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "tasks" ORDER BY tasks\.due_date ASC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		filter := shared.DefaultFilter()
		filter.OrderBy = "due_date"
		filter.OrderDir = "asc"

		_, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTaskRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockTaskRepository(t)
	defer mockDB.Close()

	projectID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE tasks\.project_id = \$1`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	filter := shared.DefaultFilter()
	filter.Filters["project_id"] = projectID

	count, err := repo.Count(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
