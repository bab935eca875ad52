package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.Project, error) {
	var project tracker.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByIDWithMembers finds a project with its member roster preloaded
func (r *GormProjectRepository) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*tracker.Project, error) {
	var project tracker.Project
	if err := r.db.WithContext(ctx).
		Preload("Members").
		First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindAll finds all projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.Project, error) {
	var projects []tracker.Project
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracker.Project{}), filter)

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Save creates or updates a project. The member roster is managed
// through the dedicated roster methods, not Save.
func (r *GormProjectRepository) Save(ctx context.Context, project *tracker.Project) error {
	return translateDBError(r.db.WithContext(ctx).Omit("Members").Save(project).Error)
}

// Delete deletes a project. Tasks and their comments cascade at the
// database level.
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracker.Project{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&tracker.Project{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddMember adds a user to the project roster. Adding an existing
// member is a no-op.
func (r *GormProjectRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	project := tracker.Project{}
	project.ID = projectID
	member := identity.UserRef{ID: userID}

	err := r.db.WithContext(ctx).
		Model(&project).
		Association("Members").
		Append(&member)
	return translateDBError(err)
}

// RemoveMember removes a user from the project roster
func (r *GormProjectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	project := tracker.Project{}
	project.ID = projectID
	member := identity.UserRef{ID: userID}

	err := r.db.WithContext(ctx).
		Model(&project).
		Association("Members").
		Delete(&member)
	return translateDBError(err)
}

// ReplaceMembers replaces the entire project roster
func (r *GormProjectRepository) ReplaceMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	project := tracker.Project{}
	project.ID = projectID

	if len(userIDs) == 0 {
		err := r.db.WithContext(ctx).Model(&project).Association("Members").Clear()
		return translateDBError(err)
	}

	members := make([]identity.UserRef, len(userIDs))
	for i, id := range userIDs {
		members[i] = identity.UserRef{ID: id}
	}

	err := r.db.WithContext(ctx).
		Model(&project).
		Association("Members").
		Replace(&members)
	return translateDBError(err)
}

func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProjectSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("projects." + orderBy + " " + orderDir)
}

func (r *GormProjectRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the project plus its owner's account
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = projects.owner_id").
			Where("projects.name ILIKE ? OR projects.description ILIKE ? OR users.username ILIKE ? OR users.email ILIKE ?",
				pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "owner_id":
			query = query.Where("projects.owner_id = ?", value)
		case "is_active":
			query = query.Where("projects.is_active = ?", value)
		case "member_id":
			query = query.
				Joins("JOIN project_members ON project_members.project_id = projects.id").
				Where("project_members.user_ref_id = ?", value)
		}
	}

	return query
}

var _ tracker.ProjectRepository = (*GormProjectRepository)(nil)
