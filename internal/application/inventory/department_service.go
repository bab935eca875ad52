package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// ActivityRecorder appends audit trail entries for administrative
// actions. Implementations must never fail the calling operation;
// recording errors are swallowed and logged.
type ActivityRecorder interface {
	Record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata)
}

// DepartmentService handles department-related business operations
type DepartmentService struct {
	departmentRepo inventory.DepartmentRepository
	recorder       ActivityRecorder
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo inventory.DepartmentRepository, recorder ActivityRecorder) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		recorder:       recorder,
	}
}

// Create creates a department. Name and code are globally unique; the
// database unique indexes remain the authoritative backstop.
func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	nameTaken, err := s.departmentRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if nameTaken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Department with this name already exists")
	}

	codeTaken, err := s.departmentRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if codeTaken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Department with this code already exists")
	}

	department, err := inventory.NewDepartment(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	department.Description = req.Description

	if err := s.departmentRepo.Save(ctx, department); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Created department %s", department.Code), tracker.Metadata{
		"department_id": department.ID.String(),
		"code":          department.Code,
	})

	return ToDepartmentResponse(department), nil
}

// GetByID retrieves a department by ID
func (s *DepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*DepartmentResponse, error) {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDepartmentResponse(department), nil
}

// GetByCode retrieves a department by its code
func (s *DepartmentService) GetByCode(ctx context.Context, code string) (*DepartmentResponse, error) {
	department, err := s.departmentRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToDepartmentResponse(department), nil
}

// List retrieves departments matching the filter, ordered by name by default
func (s *DepartmentService) List(ctx context.Context, filter DepartmentListFilter) (*shared.Paginated[DepartmentResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	departments, err := s.departmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.departmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToDepartmentResponses(departments), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates an existing department
func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, req UpdateDepartmentRequest) (*DepartmentResponse, error) {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := department.Name
	if req.Name != nil {
		name = *req.Name
	}
	code := department.Code
	if req.Code != nil {
		code = *req.Code
	}
	description := department.Description
	if req.Description != nil {
		description = *req.Description
	}

	if req.Name != nil || req.Code != nil || req.Description != nil {
		if err := department.Update(name, code, description); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			department.Enable()
		} else {
			department.Disable()
		}
	}

	if err := s.departmentRepo.Save(ctx, department); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated department %s", department.Code), tracker.Metadata{
		"department_id": department.ID.String(),
	})

	return ToDepartmentResponse(department), nil
}

// Delete removes a department. Assets tagged with it keep existing; the
// database clears their department reference.
func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.departmentRepo.Delete(ctx, department.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted department %s", department.Code), tracker.Metadata{
		"department_id": department.ID.String(),
		"code":          department.Code,
	})

	return nil
}

func (s *DepartmentService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.recorder != nil {
		s.recorder.Record(ctx, action, message, metadata)
	}
}

// buildFilter assembles a domain filter from the common list parameters
func buildFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}
