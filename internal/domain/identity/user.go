package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRef is a read-only reference to the external user entity. The
// identity collaborator owns the users table; this core only references
// it by foreign key and resolves usernames for display. It never
// creates, authenticates, or deletes users.
type UserRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"type:varchar(254);index" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName returns the table name for GORM
func (UserRef) TableName() string {
	return "users"
}

// UserRefRepository provides read-only access to external users
type UserRefRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserRef, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
