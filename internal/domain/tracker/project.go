package tracker

import (
	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// Project is a generic container for tasks. Ownership and membership
// are independent: the owner reference is cleared when that user is
// deleted, while the member roster is a plain many-to-many join.
// Deleting a project cascades to its tasks and, transitively, their
// comments.
type Project struct {
	shared.BaseEntity
	Name        string             `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	OwnerID     *uuid.UUID         `gorm:"type:uuid;index" json:"owner_id"`
	Owner       *identity.UserRef  `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	Members     []identity.UserRef `gorm:"many2many:project_members;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a project, optionally owned by a user
func NewProject(name string, ownerID *uuid.UUID) (*Project, error) {
	if err := validateProjectName(name); err != nil {
		return nil, err
	}
	return &Project{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		OwnerID:    ownerID,
	}, nil
}

// Update updates the project's basic information
func (p *Project) Update(name, description string) error {
	if err := validateProjectName(name); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.Touch()
	return nil
}

// SetOwner sets or clears the owning user
func (p *Project) SetOwner(ownerID *uuid.UUID) {
	p.OwnerID = ownerID
	p.Owner = nil
	p.Touch()
}

func validateProjectName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Project name cannot exceed 200 characters")
	}
	return nil
}
