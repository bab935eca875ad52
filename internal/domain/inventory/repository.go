package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// DepartmentRepository persists departments
type DepartmentRepository interface {
	shared.Repository[Department]
	FindByCode(ctx context.Context, code string) (*Department, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// CategoryRepository persists the category tree
type CategoryRepository interface {
	shared.Repository[Category]
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	FindRoots(ctx context.Context) ([]Category, error)
	ExistsByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID) (bool, error)
}

// AssetRepository persists assets
type AssetRepository interface {
	shared.Repository[Asset]
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Asset, error)
	FindByDepartment(ctx context.Context, departmentID uuid.UUID, filter shared.Filter) ([]Asset, error)
}

// AttachmentRepository persists asset attachments
type AttachmentRepository interface {
	shared.Repository[Attachment]
	FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]Attachment, error)
}

// AssetAssignmentRepository persists asset assignments
type AssetAssignmentRepository interface {
	shared.Repository[AssetAssignment]
	FindByAsset(ctx context.Context, assetID uuid.UUID, filter shared.Filter) ([]AssetAssignment, error)
	FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]AssetAssignment, error)
}
