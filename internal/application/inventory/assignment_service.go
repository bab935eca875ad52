package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/inventory"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// AssignmentService handles asset assignment operations. Overlapping
// assignments of one asset are permitted; the history is a plain log of
// handovers, not an exclusive lease.
type AssignmentService struct {
	assignmentRepo inventory.AssetAssignmentRepository
	assetRepo      inventory.AssetRepository
	userRepo       identity.UserRefRepository
	recorder       ActivityRecorder
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo inventory.AssetAssignmentRepository,
	assetRepo inventory.AssetRepository,
	userRepo identity.UserRefRepository,
	recorder ActivityRecorder,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		assetRepo:      assetRepo,
		userRepo:       userRepo,
		recorder:       recorder,
	}
}

// Create records an asset handover
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	if _, err := s.assetRepo.FindByID(ctx, req.AssetID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_ASSET", "Asset not found")
		}
		return nil, err
	}
	if err := s.ensureUser(ctx, req.AssignedToID); err != nil {
		return nil, err
	}
	if req.AssignedByID != nil {
		if err := s.ensureUser(ctx, *req.AssignedByID); err != nil {
			return nil, err
		}
	}

	assignment, err := inventory.NewAssetAssignment(req.AssetID, req.AssignedToID, req.StartDate)
	if err != nil {
		return nil, err
	}
	if err := assignment.SetPeriod(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	assignment.AssignedByID = req.AssignedByID
	assignment.Note = req.Note

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Assigned asset %s to user %s", req.AssetID, req.AssignedToID), tracker.Metadata{
		"assignment_id":  assignment.ID.String(),
		"asset_id":       req.AssetID.String(),
		"assigned_to_id": req.AssignedToID.String(),
	})

	return ToAssignmentResponse(assignment), nil
}

// GetByID retrieves an assignment by ID
func (s *AssignmentService) GetByID(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponse(assignment), nil
}

// List retrieves assignments matching the filter. The open filter
// selects assignments with no end date.
func (s *AssignmentService) List(ctx context.Context, filter AssignmentListFilter) (*shared.Paginated[AssignmentResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "start_date"
	}
	if filter.AssetID != nil {
		domainFilter.Filters["asset_id"] = *filter.AssetID
	}
	if filter.AssignedToID != nil {
		domainFilter.Filters["assigned_to_id"] = *filter.AssignedToID
	}
	if filter.Open != nil {
		domainFilter.Filters["open"] = *filter.Open
	}

	assignments, err := s.assignmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.assignmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToAssignmentResponses(assignments), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByAsset retrieves the assignment history of one asset
func (s *AssignmentService) ListByAsset(ctx context.Context, assetID uuid.UUID, filter AssignmentListFilter) ([]AssignmentResponse, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "start_date"
	}
	assignments, err := s.assignmentRepo.FindByAsset(ctx, assetID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(assignments), nil
}

// ListByAssignee retrieves the assignments held by one user
func (s *AssignmentService) ListByAssignee(ctx context.Context, userID uuid.UUID, filter AssignmentListFilter) ([]AssignmentResponse, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "start_date"
	}
	assignments, err := s.assignmentRepo.FindByAssignee(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(assignments), nil
}

// Update updates an assignment's period or note
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, req UpdateAssignmentRequest) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil || req.ClearEnd {
		start := assignment.StartDate
		if req.StartDate != nil {
			start = *req.StartDate
		}
		end := assignment.EndDate
		if req.ClearEnd {
			end = nil
		} else if req.EndDate != nil {
			end = req.EndDate
		}
		if err := assignment.SetPeriod(start, end); err != nil {
			return nil, err
		}
	}
	if req.Note != nil {
		assignment.Note = *req.Note
		assignment.Touch()
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated assignment %s", assignment.ID), tracker.Metadata{
		"assignment_id": assignment.ID.String(),
	})

	return ToAssignmentResponse(assignment), nil
}

// Delete removes an assignment record
func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.assignmentRepo.Delete(ctx, assignment.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted assignment %s", assignment.ID), tracker.Metadata{
		"assignment_id": assignment.ID.String(),
		"asset_id":      assignment.AssetID.String(),
	})

	return nil
}

func (s *AssignmentService) ensureUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_USER", "Referenced user does not exist")
	}
	return nil
}

func (s *AssignmentService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.recorder != nil {
		s.recorder.Record(ctx, action, message, metadata)
	}
}
