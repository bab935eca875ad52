package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// AssetAssignment hands an asset to a user for a date range. The
// assignee reference cascades with both the asset and the user; the
// assigner reference is informational and survives the assigner's
// deletion. Overlapping assignments of the same asset are not
// prevented by the storage layer.
type AssetAssignment struct {
	shared.BaseEntity
	AssetID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_assignments_asset_assignee,priority:1" json:"asset_id"`
	Asset        *Asset            `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	AssignedToID uuid.UUID         `gorm:"type:uuid;not null;index:idx_assignments_asset_assignee,priority:2" json:"assigned_to_id"`
	AssignedTo   *identity.UserRef `gorm:"foreignKey:AssignedToID;constraint:OnDelete:CASCADE" json:"assigned_to,omitempty"`
	AssignedByID *uuid.UUID        `gorm:"type:uuid;index" json:"assigned_by_id"`
	AssignedBy   *identity.UserRef `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL" json:"assigned_by,omitempty"`
	StartDate    time.Time         `gorm:"type:date;not null;index:idx_assignments_dates,priority:1" json:"start_date"`
	EndDate      *time.Time        `gorm:"type:date;index:idx_assignments_dates,priority:2" json:"end_date"`
	Note         string            `gorm:"type:text" json:"note"`
}

// TableName returns the table name for GORM
func (AssetAssignment) TableName() string {
	return "asset_assignments"
}

// NewAssetAssignment records an asset handover starting on startDate
func NewAssetAssignment(assetID, assignedTo uuid.UUID, startDate time.Time) (*AssetAssignment, error) {
	if startDate.IsZero() {
		return nil, shared.NewValidationError("start_date", "Start date is required")
	}
	return &AssetAssignment{
		BaseEntity:   shared.NewBaseEntity(),
		AssetID:      assetID,
		AssignedToID: assignedTo,
		StartDate:    startDate,
	}, nil
}

// SetPeriod validates and sets the assignment date range. End date, when
// present, may not precede the start date.
func (a *AssetAssignment) SetPeriod(startDate time.Time, endDate *time.Time) error {
	if startDate.IsZero() {
		return shared.NewValidationError("start_date", "Start date is required")
	}
	if endDate != nil && endDate.Before(startDate) {
		return shared.NewValidationError("end_date", "End date cannot precede start date")
	}
	a.StartDate = startDate
	a.EndDate = endDate
	a.Touch()
	return nil
}
