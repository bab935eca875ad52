package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
	"gorm.io/gorm"
)

// GormActivityLogRepository implements ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// FindByID finds a log entry by its ID
func (r *GormActivityLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.ActivityLog, error) {
	var entry tracker.ActivityLog
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds all log entries matching the filter
func (r *GormActivityLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.ActivityLog, error) {
	var entries []tracker.ActivityLog
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracker.ActivityLog{}), filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByActor finds all log entries produced by a user
func (r *GormActivityLogRepository) FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]tracker.ActivityLog, error) {
	var entries []tracker.ActivityLog
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&tracker.ActivityLog{}).Where("actor_id = ?", actorID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save appends a log entry. Entries are immutable once written.
func (r *GormActivityLogRepository) Save(ctx context.Context, entry *tracker.ActivityLog) error {
	return translateDBError(r.db.WithContext(ctx).Save(entry).Error)
}

// Delete deletes a log entry
func (r *GormActivityLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracker.ActivityLog{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts log entries matching the filter
func (r *GormActivityLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&tracker.ActivityLog{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormActivityLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ActivityLogSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("activity_logs." + orderBy + " " + orderDir)
}

func (r *GormActivityLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the message plus the actor's account name
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = activity_logs.actor_id").
			Where("activity_logs.message ILIKE ? OR users.username ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "actor_id":
			query = query.Where("activity_logs.actor_id = ?", value)
		case "action":
			query = query.Where("activity_logs.action = ?", value)
		}
	}

	return query
}

var _ tracker.ActivityLogRepository = (*GormActivityLogRepository)(nil)
