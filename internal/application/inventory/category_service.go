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

// maxAncestorWalk bounds the reparent cycle check so a corrupted parent
// chain cannot spin forever.
const maxAncestorWalk = 1000

// CategoryService handles category tree operations
type CategoryService struct {
	categoryRepo inventory.CategoryRepository
	recorder     ActivityRecorder
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo inventory.CategoryRepository, recorder ActivityRecorder) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		recorder:     recorder,
	}
}

// Create creates a category, optionally nested under a parent. Sibling
// names must be unique under one parent.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	// Root categories may share a name; the unique index treats NULL
	// parents as distinct rows.
	if req.ParentID != nil {
		taken, err := s.categoryRepo.ExistsByNameAndParent(ctx, req.Name, req.ParentID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists under the same parent")
		}
	}

	category, err := inventory.NewCategory(req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Created category %s", category.Name), tracker.Metadata{
		"category_id": category.ID.String(),
	})

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List retrieves categories matching the filter, ordered by name by default
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) (*shared.Paginated[CategoryResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.ParentID != nil {
		domainFilter.Filters["parent_id"] = *filter.ParentID
	} else if filter.RootOnly {
		domainFilter.Filters["parent_id"] = nil
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToCategoryResponses(categories), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// GetChildren retrieves the direct children of a category
func (s *CategoryService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]CategoryResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, parentID); err != nil {
		return nil, err
	}
	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// GetTree retrieves the full category tree
func (s *CategoryService) GetTree(ctx context.Context) ([]CategoryTreeNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "name",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories), nil
}

// Update renames a category. Sibling uniqueness is re-checked under the
// current parent.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		if category.ParentID != nil {
			taken, err := s.categoryRepo.ExistsByNameAndParent(ctx, *req.Name, category.ParentID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists under the same parent")
			}
		}
		if err := category.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			category.Enable()
		} else {
			category.Disable()
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated category %s", category.Name), tracker.Metadata{
		"category_id": category.ID.String(),
	})

	return ToCategoryResponse(category), nil
}

// Move reparents a category. Moving onto itself or any of its
// descendants is rejected, so the tree can never form a cycle.
func (s *CategoryService) Move(ctx context.Context, id uuid.UUID, req MoveCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		newParent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}

		isDescendant, err := s.isSelfOrDescendant(ctx, category.ID, newParent)
		if err != nil {
			return nil, err
		}
		if isDescendant {
			return nil, shared.NewValidationError("parent_id", "Category cannot be moved under itself or one of its descendants")
		}
	}

	if req.ParentID != nil {
		taken, err := s.categoryRepo.ExistsByNameAndParent(ctx, category.Name, req.ParentID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists under the target parent")
		}
	}

	if err := category.SetParent(req.ParentID); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Moved category %s", category.Name), tracker.Metadata{
		"category_id": category.ID.String(),
	})

	return ToCategoryResponse(category), nil
}

// Delete removes a category. Children become roots and assets lose the
// tag; nothing below the category is deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted category %s", category.Name), tracker.Metadata{
		"category_id": category.ID.String(),
	})

	return nil
}

// isSelfOrDescendant walks the candidate parent's ancestor chain and
// reports whether categoryID appears in it.
func (s *CategoryService) isSelfOrDescendant(ctx context.Context, categoryID uuid.UUID, candidate *inventory.Category) (bool, error) {
	current := candidate
	for depth := 0; depth < maxAncestorWalk; depth++ {
		if current.ID == categoryID {
			return true, nil
		}
		if current.ParentID == nil {
			return false, nil
		}
		parent, err := s.categoryRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		current = parent
	}
	return false, shared.NewDomainError("INTEGRITY", "Category ancestor chain exceeds the supported depth")
}

func (s *CategoryService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.recorder != nil {
		s.recorder.Record(ctx, action, message, metadata)
	}
}

// buildCategoryTree nests a flat category list by parent pointer
func buildCategoryTree(categories []inventory.Category) []CategoryTreeNode {
	children := make(map[uuid.UUID][]inventory.Category)
	var roots []inventory.Category
	for _, cat := range categories {
		if cat.ParentID == nil {
			roots = append(roots, cat)
		} else {
			children[*cat.ParentID] = append(children[*cat.ParentID], cat)
		}
	}

	var build func(cats []inventory.Category) []CategoryTreeNode
	build = func(cats []inventory.Category) []CategoryTreeNode {
		nodes := make([]CategoryTreeNode, len(cats))
		for i, cat := range cats {
			nodes[i] = CategoryTreeNode{
				ID:       cat.ID,
				Name:     cat.Name,
				ParentID: cat.ParentID,
				IsActive: cat.IsActive,
				Children: build(children[cat.ID]),
			}
		}
		return nodes
	}
	return build(roots)
}
