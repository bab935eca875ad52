package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities: a random UUID
// identifier assigned once at construction, an advisory active flag,
// and creation/update timestamps. The identifier is never sequential,
// so records can be created without coordinating with a central counter
// and exposed IDs are not enumerable.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch refreshes the update timestamp. Mutators call this on every change.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// Enable marks the entity as active
func (e *BaseEntity) Enable() {
	e.IsActive = true
	e.Touch()
}

// Disable marks the entity as inactive. The flag is advisory: no read
// path excludes inactive records unless the caller filters on it.
func (e *BaseEntity) Disable() {
	e.IsActive = false
	e.Touch()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
