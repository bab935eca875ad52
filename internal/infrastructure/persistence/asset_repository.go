package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAssetRepository implements AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByID finds an asset by its ID
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Asset, error) {
	var asset inventory.Asset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// FindAll finds all assets matching the filter
func (r *GormAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Asset, error) {
	var assets []inventory.Asset
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Asset{}), filter)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByCategory finds assets in a category
func (r *GormAssetRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]inventory.Asset, error) {
	var assets []inventory.Asset
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Asset{}).Where("assets.category_id = ?", categoryID),
		filter,
	)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByDepartment finds assets held by a department
func (r *GormAssetRepository) FindByDepartment(ctx context.Context, departmentID uuid.UUID, filter shared.Filter) ([]inventory.Asset, error) {
	var assets []inventory.Asset
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Asset{}).Where("assets.department_id = ?", departmentID),
		filter,
	)

	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// Save creates or updates an asset
func (r *GormAssetRepository) Save(ctx context.Context, asset *inventory.Asset) error {
	return translateDBError(r.db.WithContext(ctx).Save(asset).Error)
}

// Delete deletes an asset. Attachments and assignments cascade at the
// database level.
func (r *GormAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Asset{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts assets matching the filter
func (r *GormAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Asset{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAssetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AssetSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("assets." + orderBy + " " + orderDir)
}

func (r *GormAssetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the asset plus its category and department names
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN categories ON categories.id = assets.category_id").
			Joins("LEFT JOIN departments ON departments.id = assets.department_id").
			Where("assets.name ILIKE ? OR assets.serial_number ILIKE ? OR categories.name ILIKE ? OR departments.name ILIKE ?",
				pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			if value == nil {
				query = query.Where("assets.category_id IS NULL")
			} else {
				query = query.Where("assets.category_id = ?", value)
			}
		case "department_id":
			if value == nil {
				query = query.Where("assets.department_id IS NULL")
			} else {
				query = query.Where("assets.department_id = ?", value)
			}
		case "condition":
			query = query.Where("assets.condition = ?", value)
		case "is_active":
			query = query.Where("assets.is_active = ?", value)
		}
	}

	return query
}

var _ inventory.AssetRepository = (*GormAssetRepository)(nil)
