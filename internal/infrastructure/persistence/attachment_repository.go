package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// FindByID finds an attachment by its ID
func (r *GormAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Attachment, error) {
	var attachment inventory.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// FindAll finds all attachments matching the filter
func (r *GormAttachmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Attachment, error) {
	var attachments []inventory.Attachment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Attachment{}), filter)

	if err := query.Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// FindByAsset finds all attachments of an asset
func (r *GormAttachmentRepository) FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]inventory.Attachment, error) {
	var attachments []inventory.Attachment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Attachment{}).Where("asset_id = ?", assetID),
		filter,
	)

	if err := query.Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Save creates or updates an attachment
func (r *GormAttachmentRepository) Save(ctx context.Context, attachment *inventory.Attachment) error {
	return translateDBError(r.db.WithContext(ctx).Save(attachment).Error)
}

// Delete deletes an attachment record. The stored object is removed
// separately by the service layer.
func (r *GormAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Attachment{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts attachments matching the filter
func (r *GormAttachmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Attachment{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAttachmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AttachmentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order("attachments." + orderBy + " " + orderDir)
}

func (r *GormAttachmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search spans the attachment plus its asset name and uploader account
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN assets ON assets.id = attachments.asset_id").
			Joins("LEFT JOIN users ON users.id = attachments.uploaded_by_id").
			Where("attachments.title ILIKE ? OR assets.name ILIKE ? OR users.username ILIKE ?",
				pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "asset_id":
			query = query.Where("attachments.asset_id = ?", value)
		case "uploaded_by_id":
			query = query.Where("attachments.uploaded_by_id = ?", value)
		case "content_type":
			query = query.Where("attachments.content_type = ?", value)
		}
	}

	return query
}

var _ inventory.AttachmentRepository = (*GormAttachmentRepository)(nil)
