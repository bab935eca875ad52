package identity

import (
	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// Address is one of possibly many postal addresses attached to a
// profile. Addresses are deleted together with their profile. More than
// one address of a profile may be flagged as default; the storage layer
// does not enforce a single default.
type Address struct {
	shared.BaseEntity
	ProfileID  uuid.UUID `gorm:"type:uuid;not null;index:idx_addresses_profile_default,priority:1" json:"profile_id"`
	Profile    *Profile  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Label      string    `gorm:"type:varchar(50)" json:"label"`
	City       string    `gorm:"type:varchar(100);not null" json:"city"`
	District   string    `gorm:"type:varchar(100)" json:"district"`
	Street     string    `gorm:"type:varchar(200)" json:"street"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code"`
	IsDefault  bool      `gorm:"not null;default:false;index:idx_addresses_profile_default,priority:2" json:"is_default"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates an address for the given profile. City is the only
// required component.
func NewAddress(profileID uuid.UUID, city string) (*Address, error) {
	if city == "" {
		return nil, shared.NewValidationError("city", "City is required")
	}
	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		ProfileID:  profileID,
		City:       city,
	}, nil
}

// SetCity validates and sets the city
func (a *Address) SetCity(city string) error {
	if city == "" {
		return shared.NewValidationError("city", "City is required")
	}
	a.City = city
	a.Touch()
	return nil
}
