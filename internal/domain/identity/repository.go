package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// ProfileRepository persists profiles
type ProfileRepository interface {
	shared.Repository[Profile]
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AddressRepository persists profile addresses
type AddressRepository interface {
	shared.Repository[Address]
	FindByProfile(ctx context.Context, profileID uuid.UUID, filter shared.Filter) ([]Address, error)
	CountByProfile(ctx context.Context, profileID uuid.UUID) (int64, error)
}
