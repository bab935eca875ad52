package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.Task, error) {
	var task tracker.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindAll finds all tasks matching the filter
func (r *GormTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.Task, error) {
	var tasks []tracker.Task
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracker.Task{}), filter)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByProject finds all tasks of a project
func (r *GormTaskRepository) FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]tracker.Task, error) {
	var tasks []tracker.Task
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&tracker.Task{}).Where("tasks.project_id = ?", projectID),
		filter,
	)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByAssignee finds all tasks assigned to a user
func (r *GormTaskRepository) FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]tracker.Task, error) {
	var tasks []tracker.Task
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&tracker.Task{}).Where("tasks.assigned_to_id = ?", userID),
		filter,
	)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, task *tracker.Task) error {
	return translateDBError(r.db.WithContext(ctx).Save(task).Error)
}

// Delete deletes a task. Comments cascade at the database level.
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracker.Task{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tasks matching the filter
func (r *GormTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&tracker.Task{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TaskSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("tasks." + orderBy + " " + orderDir)
}

func (r *GormTaskRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the task plus its project name and assignee account
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
			Joins("LEFT JOIN users ON users.id = tasks.assigned_to_id").
			Where("tasks.title ILIKE ? OR tasks.description ILIKE ? OR projects.name ILIKE ? OR users.username ILIKE ? OR users.email ILIKE ?",
				pattern, pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "project_id":
			query = query.Where("tasks.project_id = ?", value)
		case "status":
			query = query.Where("tasks.status = ?", value)
		case "priority":
			query = query.Where("tasks.priority = ?", value)
		case "assigned_to_id":
			if value == nil {
				query = query.Where("tasks.assigned_to_id IS NULL")
			} else {
				query = query.Where("tasks.assigned_to_id = ?", value)
			}
		case "created_by_id":
			query = query.Where("tasks.created_by_id = ?", value)
		}
	}

	return query
}

var _ tracker.TaskRepository = (*GormTaskRepository)(nil)
