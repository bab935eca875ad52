package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// AssetService handles asset-related business operations
type AssetService struct {
	assetRepo      inventory.AssetRepository
	categoryRepo   inventory.CategoryRepository
	departmentRepo inventory.DepartmentRepository
	recorder       ActivityRecorder
}

// NewAssetService creates a new AssetService
func NewAssetService(
	assetRepo inventory.AssetRepository,
	categoryRepo inventory.CategoryRepository,
	departmentRepo inventory.DepartmentRepository,
	recorder ActivityRecorder,
) *AssetService {
	return &AssetService{
		assetRepo:      assetRepo,
		categoryRepo:   categoryRepo,
		departmentRepo: departmentRepo,
		recorder:       recorder,
	}
}

// Create creates an asset. Category and department tags are optional
// and validated when present.
func (s *AssetService) Create(ctx context.Context, req CreateAssetRequest) (*AssetResponse, error) {
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.DepartmentID != nil {
		if err := s.ensureDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}

	asset, err := inventory.NewAsset(req.Name)
	if err != nil {
		return nil, err
	}
	asset.CategoryID = req.CategoryID
	asset.DepartmentID = req.DepartmentID
	asset.SerialNumber = req.SerialNumber
	asset.Notes = req.Notes

	if req.Quantity != nil {
		if err := asset.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Condition != "" {
		if err := asset.SetCondition(inventory.Condition(req.Condition)); err != nil {
			return nil, err
		}
	}

	if err := s.assetRepo.Save(ctx, asset); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Created asset %s", asset.Name), tracker.Metadata{
		"asset_id": asset.ID.String(),
	})

	return ToAssetResponse(asset), nil
}

// GetByID retrieves an asset by ID
func (s *AssetService) GetByID(ctx context.Context, id uuid.UUID) (*AssetResponse, error) {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAssetResponse(asset), nil
}

// List retrieves assets matching the filter, ordered by name by default
func (s *AssetService) List(ctx context.Context, filter AssetListFilter) (*shared.Paginated[AssetResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.DepartmentID != nil {
		domainFilter.Filters["department_id"] = *filter.DepartmentID
	}
	if filter.Condition != "" {
		domainFilter.Filters["condition"] = filter.Condition
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	assets, err := s.assetRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.assetRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToAssetResponses(assets), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates an existing asset. Clear flags drop the category or
// department tag; a present ID retags.
func (s *AssetService) Update(ctx context.Context, id uuid.UUID, req UpdateAssetRequest) (*AssetResponse, error) {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := asset.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ClearCategory {
		asset.TagCategory(nil)
	} else if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		asset.TagCategory(req.CategoryID)
	}
	if req.ClearDepartment {
		asset.TagDepartment(nil)
	} else if req.DepartmentID != nil {
		if err := s.ensureDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		asset.TagDepartment(req.DepartmentID)
	}
	if req.SerialNumber != nil {
		asset.SerialNumber = *req.SerialNumber
		asset.Touch()
	}
	if req.Quantity != nil {
		if err := asset.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Condition != nil {
		if err := asset.SetCondition(inventory.Condition(*req.Condition)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		asset.Notes = *req.Notes
		asset.Touch()
	}
	if req.IsActive != nil {
		if *req.IsActive {
			asset.Enable()
		} else {
			asset.Disable()
		}
	}

	if err := s.assetRepo.Save(ctx, asset); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated asset %s", asset.Name), tracker.Metadata{
		"asset_id": asset.ID.String(),
	})

	return ToAssetResponse(asset), nil
}

// Delete removes an asset and, by cascade, its attachments and
// assignments. Stored attachment objects are removed by the attachment
// service before this is called when a full cleanup is wanted.
func (s *AssetService) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.assetRepo.Delete(ctx, asset.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted asset %s", asset.Name), tracker.Metadata{
		"asset_id": asset.ID.String(),
	})

	return nil
}

func (s *AssetService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

func (s *AssetService) ensureDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.departmentRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_DEPARTMENT", "Department not found")
		}
		return err
	}
	return nil
}

func (s *AssetService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.recorder != nil {
		s.recorder.Record(ctx, action, message, metadata)
	}
}
