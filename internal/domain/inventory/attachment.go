package inventory

import (
	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// Attachment records a file stored in the external blob store against
// an asset. It holds only the storage key, never the content. An
// attachment has no meaning without its asset and is deleted with it;
// deleting the uploader merely clears the reference.
type Attachment struct {
	shared.BaseEntity
	AssetID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset        *Asset            `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
	Title        string            `gorm:"type:varchar(200)" json:"title"`
	StorageKey   string            `gorm:"type:varchar(500);not null" json:"storage_key"`
	ContentType  string            `gorm:"type:varchar(100)" json:"content_type"`
	UploadedByID *uuid.UUID        `gorm:"type:uuid;index" json:"uploaded_by_id"`
	UploadedBy   *identity.UserRef `gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL" json:"uploaded_by,omitempty"`
}

// TableName returns the table name for GORM
func (Attachment) TableName() string {
	return "attachments"
}

// NewAttachment creates an attachment record for the given asset
func NewAttachment(assetID uuid.UUID, title, storageKey string, uploadedBy *uuid.UUID) (*Attachment, error) {
	if storageKey == "" {
		return nil, shared.NewValidationError("storage_key", "Storage key is required")
	}
	return &Attachment{
		BaseEntity:   shared.NewBaseEntity(),
		AssetID:      assetID,
		Title:        title,
		StorageKey:   storageKey,
		UploadedByID: uploadedBy,
	}, nil
}
