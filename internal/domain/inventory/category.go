package inventory

import (
	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// Category classifies assets into a tree of unbounded depth via a
// nullable parent pointer. The (name, parent) pair is unique. Deleting
// a category nulls the parent reference of its children and the
// category reference of its assets; nothing below it is deleted.
type Category struct {
	shared.BaseEntity
	Name     string     `gorm:"type:varchar(150);not null;index;uniqueIndex:idx_categories_name_parent,priority:1" json:"name"`
	ParentID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_categories_name_parent,priority:2" json:"parent_id"`
	Parent   *Category  `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"parent,omitempty"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category, optionally nested under a parent
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		ParentID:   parentID,
	}, nil
}

// Rename validates and sets the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetParent moves the category under a new parent (nil makes it a root).
// Cycle checking requires the full ancestor chain and is done by the
// application service before calling this.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewValidationError("parent_id", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.Touch()
	return nil
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Category name cannot be empty")
	}
	if len(name) > 150 {
		return shared.NewValidationError("name", "Category name cannot exceed 150 characters")
	}
	return nil
}
