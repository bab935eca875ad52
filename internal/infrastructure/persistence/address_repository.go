package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	var address identity.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindAll finds all addresses matching the filter
func (r *GormAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Address, error) {
	var addresses []identity.Address
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.Address{}), filter)

	if err := query.Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindByProfile finds all addresses of a profile
func (r *GormAddressRepository) FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]identity.Address, error) {
	var addresses []identity.Address
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&identity.Address{}).Where("profile_id = ?", profileID),
		filter,
	)

	if err := query.Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	return translateDBError(r.db.WithContext(ctx).Save(address).Error)
}

// Delete deletes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Address{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts addresses matching the filter
func (r *GormAddressRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&identity.Address{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProfile counts addresses of a profile
func (r *GormAddressRepository) CountByProfile(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Address{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAddressRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AddressSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("addresses." + orderBy + " " + orderDir)
}

func (r *GormAddressRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the address plus the owning profile's full name
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN profiles ON profiles.id = addresses.profile_id").
			Where("addresses.city ILIKE ? OR addresses.district ILIKE ? OR addresses.street ILIKE ? OR addresses.postal_code ILIKE ? OR addresses.label ILIKE ? OR profiles.full_name ILIKE ?",
				pattern, pattern, pattern, pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "profile_id":
			query = query.Where("addresses.profile_id = ?", value)
		case "city":
			query = query.Where("addresses.city = ?", value)
		case "is_default":
			query = query.Where("addresses.is_default = ?", value)
		}
	}

	return query
}

var _ identity.AddressRepository = (*GormAddressRepository)(nil)
