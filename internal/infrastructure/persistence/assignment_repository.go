package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAssetAssignmentRepository implements AssetAssignmentRepository using GORM
type GormAssetAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssetAssignmentRepository creates a new GormAssetAssignmentRepository
func NewGormAssetAssignmentRepository(db *gorm.DB) *GormAssetAssignmentRepository {
	return &GormAssetAssignmentRepository{db: db}
}

// FindByID finds an assignment by its ID
func (r *GormAssetAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.AssetAssignment, error) {
	var assignment inventory.AssetAssignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindAll finds all assignments matching the filter
func (r *GormAssetAssignmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.AssetAssignment, error) {
	var assignments []inventory.AssetAssignment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.AssetAssignment{}), filter)

	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindByAsset finds the assignment history of an asset
func (r *GormAssetAssignmentRepository) FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]inventory.AssetAssignment, error) {
	var assignments []inventory.AssetAssignment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.AssetAssignment{}).Where("asset_assignments.asset_id = ?", assetID),
		filter,
	)

	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindByAssignee finds all assignments held by a user
func (r *GormAssetAssignmentRepository) FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]inventory.AssetAssignment, error) {
	var assignments []inventory.AssetAssignment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.AssetAssignment{}).Where("asset_assignments.assigned_to_id = ?", userID),
		filter,
	)

	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Save creates or updates an assignment
func (r *GormAssetAssignmentRepository) Save(ctx context.Context, assignment *inventory.AssetAssignment) error {
	return translateDBError(r.db.WithContext(ctx).Save(assignment).Error)
}

// Delete deletes an assignment
func (r *GormAssetAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.AssetAssignment{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts assignments matching the filter
func (r *GormAssetAssignmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.AssetAssignment{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAssetAssignmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AssignmentSortFields, "start_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("asset_assignments." + orderBy + " " + orderDir)
}

func (r *GormAssetAssignmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the asset name and the assignee's username
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN assets ON assets.id = asset_assignments.asset_id").
			Joins("LEFT JOIN users ON users.id = asset_assignments.assigned_to_id").
			Where("assets.name ILIKE ? OR users.username ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "asset_id":
			query = query.Where("asset_assignments.asset_id = ?", value)
		case "assigned_to_id":
			query = query.Where("asset_assignments.assigned_to_id = ?", value)
		case "open":
			// Open assignments have no end date yet
			if isTrue, ok := value.(bool); ok && isTrue {
				query = query.Where("asset_assignments.end_date IS NULL")
			}
		}
	}

	return query
}

var _ inventory.AssetAssignmentRepository = (*GormAssetAssignmentRepository)(nil)
