package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRefRepository implements UserRefRepository using GORM.
// The users table is owned by the authentication system, so this
// repository is read-only.
type GormUserRefRepository struct {
	db *gorm.DB
}

// NewGormUserRefRepository creates a new GormUserRefRepository
func NewGormUserRefRepository(db *gorm.DB) *GormUserRefRepository {
	return &GormUserRefRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRefRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.UserRef, error) {
	var user identity.UserRef
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Exists checks whether a user with the given ID exists
func (r *GormUserRefRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.UserRef{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.UserRefRepository = (*GormUserRefRepository)(nil)
