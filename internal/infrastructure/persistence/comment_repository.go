package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
	"gorm.io/gorm"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by its ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.Comment, error) {
	var comment tracker.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// FindAll finds all comments matching the filter
func (r *GormCommentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.Comment, error) {
	var comments []tracker.Comment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracker.Comment{}), filter)

	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindByTask finds all comments on a task
func (r *GormCommentRepository) FindByTask(ctx context.Context, taskID uuid.UUID, filter shared.Filter) ([]tracker.Comment, error) {
	var comments []tracker.Comment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&tracker.Comment{}).Where("comments.task_id = ?", taskID),
		filter,
	)

	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Save creates or updates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *tracker.Comment) error {
	return translateDBError(r.db.WithContext(ctx).Save(comment).Error)
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracker.Comment{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts comments matching the filter
func (r *GormCommentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&tracker.Comment{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCommentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("comments." + orderBy + " " + orderDir)
}

func (r *GormCommentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the comment body, the task title and the author's username
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN tasks ON tasks.id = comments.task_id").
			Joins("LEFT JOIN users ON users.id = comments.author_id").
			Where("comments.body ILIKE ? OR tasks.title ILIKE ? OR users.username ILIKE ?",
				pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "task_id":
			query = query.Where("comments.task_id = ?", value)
		case "author_id":
			query = query.Where("comments.author_id = ?", value)
		}
	}

	return query
}

var _ tracker.CommentRepository = (*GormCommentRepository)(nil)
