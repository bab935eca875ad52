package inventory

import (
	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// Condition grades the physical state of an asset
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionGood Condition = "good"
	ConditionFair Condition = "fair"
	ConditionPoor Condition = "poor"
)

// IsValid reports whether the condition is one of the known values
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Asset is an inventory record. Category and department tags are
// optional and survive the deletion of either (set-null); the asset's
// own deletion cascades to its attachments and assignments.
type Asset struct {
	shared.BaseEntity
	Name         string      `gorm:"type:varchar(200);not null;index" json:"name"`
	CategoryID   *uuid.UUID  `gorm:"type:uuid;index" json:"category_id"`
	Category     *Category   `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
	SerialNumber string      `gorm:"type:varchar(100);index" json:"serial_number"`
	Quantity     int         `gorm:"not null;default:1" json:"quantity"`
	Condition    Condition   `gorm:"type:varchar(10);not null;default:'good'" json:"condition"`
	Notes        string      `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "assets"
}

// NewAsset creates an asset with quantity 1 and condition good
func NewAsset(name string) (*Asset, error) {
	if err := validateAssetName(name); err != nil {
		return nil, err
	}
	return &Asset{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Quantity:   1,
		Condition:  ConditionGood,
	}, nil
}

// Rename validates and sets the asset name
func (a *Asset) Rename(name string) error {
	if err := validateAssetName(name); err != nil {
		return err
	}
	a.Name = name
	a.Touch()
	return nil
}

// SetQuantity enforces the quantity minimum of 1
func (a *Asset) SetQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewValidationError("quantity", "Quantity must be at least 1")
	}
	a.Quantity = quantity
	a.Touch()
	return nil
}

// SetCondition validates and sets the condition grade
func (a *Asset) SetCondition(condition Condition) error {
	if !condition.IsValid() {
		return shared.NewValidationError("condition", "Condition must be one of new, good, fair, poor")
	}
	a.Condition = condition
	a.Touch()
	return nil
}

// TagCategory sets or clears the category reference
func (a *Asset) TagCategory(categoryID *uuid.UUID) {
	a.CategoryID = categoryID
	a.Category = nil
	a.Touch()
}

// TagDepartment sets or clears the department reference
func (a *Asset) TagDepartment(departmentID *uuid.UUID) {
	a.DepartmentID = departmentID
	a.Department = nil
	a.Touch()
}

func validateAssetName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Asset name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Asset name cannot exceed 200 characters")
	}
	return nil
}
