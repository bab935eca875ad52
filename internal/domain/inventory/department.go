package inventory

import (
	"strings"

	"github.com/orgadmin/backend/internal/domain/shared"
)

// Department is an organizational unit that assets can be tagged with.
// Name and code are globally unique. Deleting a department never deletes
// its assets; their reference is cleared instead.
type Department struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(150);not null;uniqueIndex" json:"name"`
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

// NewDepartment creates a department with the given name and code
func NewDepartment(name, code string) (*Department, error) {
	if err := validateDepartmentName(name); err != nil {
		return nil, err
	}
	if err := validateDepartmentCode(code); err != nil {
		return nil, err
	}
	return &Department{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       strings.ToUpper(code),
	}, nil
}

// Update updates the department's basic information
func (d *Department) Update(name, code, description string) error {
	if err := validateDepartmentName(name); err != nil {
		return err
	}
	if err := validateDepartmentCode(code); err != nil {
		return err
	}
	d.Name = name
	d.Code = strings.ToUpper(code)
	d.Description = description
	d.Touch()
	return nil
}

func validateDepartmentName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Department name cannot be empty")
	}
	if len(name) > 150 {
		return shared.NewValidationError("name", "Department name cannot exceed 150 characters")
	}
	return nil
}

func validateDepartmentCode(code string) error {
	if code == "" {
		return shared.NewValidationError("code", "Department code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewValidationError("code", "Department code cannot exceed 50 characters")
	}
	return nil
}
