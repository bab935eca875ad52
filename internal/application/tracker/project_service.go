package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// ProjectService handles project and member roster operations
type ProjectService struct {
	projectRepo tracker.ProjectRepository
	userRepo    identity.UserRefRepository
	activities  *ActivityLogService
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo tracker.ProjectRepository,
	userRepo identity.UserRefRepository,
	activities *ActivityLogService,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		activities:  activities,
	}
}

// Create creates a project with an optional owner and initial roster
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	if req.OwnerID != nil {
		if err := s.ensureUser(ctx, *req.OwnerID); err != nil {
			return nil, err
		}
	}
	for _, memberID := range req.MemberIDs {
		if err := s.ensureUser(ctx, memberID); err != nil {
			return nil, err
		}
	}

	project, err := tracker.NewProject(req.Name, req.OwnerID)
	if err != nil {
		return nil, err
	}
	project.Description = req.Description

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	if len(req.MemberIDs) > 0 {
		if err := s.projectRepo.ReplaceMembers(ctx, project.ID, req.MemberIDs); err != nil {
			return nil, err
		}
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Created project %s", project.Name), tracker.Metadata{
		"project_id": project.ID.String(),
	})

	return s.respondWithMembers(ctx, project.ID)
}

// GetByID retrieves a project with its member roster
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDWithMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProjectResponse(project), nil
}

// List retrieves projects matching the filter, ordered by name by default
func (s *ProjectService) List(ctx context.Context, filter ProjectListFilter) (*shared.Paginated[ProjectResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.OwnerID != nil {
		domainFilter.Filters["owner_id"] = *filter.OwnerID
	}
	if filter.MemberID != nil {
		domainFilter.Filters["member_id"] = *filter.MemberID
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	projects, err := s.projectRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.projectRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProjectResponses(projects), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update updates a project's basic information or owner
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := project.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := project.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := project.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.ClearOwner {
		project.SetOwner(nil)
	} else if req.OwnerID != nil {
		if err := s.ensureUser(ctx, *req.OwnerID); err != nil {
			return nil, err
		}
		project.SetOwner(req.OwnerID)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			project.Enable()
		} else {
			project.Disable()
		}
	}

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated project %s", project.Name), tracker.Metadata{
		"project_id": project.ID.String(),
	})

	return s.respondWithMembers(ctx, project.ID)
}

// AddMember adds a user to the project roster. Membership is
// independent of ownership.
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID uuid.UUID) (*ProjectResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.AddMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Added member %s to project %s", userID, projectID), tracker.Metadata{
		"project_id": projectID.String(),
		"user_id":    userID.String(),
	})

	return s.respondWithMembers(ctx, projectID)
}

// RemoveMember removes a user from the project roster
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) (*ProjectResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Removed member %s from project %s", userID, projectID), tracker.Metadata{
		"project_id": projectID.String(),
		"user_id":    userID.String(),
	})

	return s.respondWithMembers(ctx, projectID)
}

// ReplaceMembers swaps the full member roster. An empty list clears it.
func (s *ProjectService) ReplaceMembers(ctx context.Context, projectID uuid.UUID, req ReplaceMembersRequest) (*ProjectResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	for _, memberID := range req.MemberIDs {
		if err := s.ensureUser(ctx, memberID); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.ReplaceMembers(ctx, projectID, req.MemberIDs); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Replaced member roster of project %s", projectID), tracker.Metadata{
		"project_id":   projectID.String(),
		"member_count": len(req.MemberIDs),
	})

	return s.respondWithMembers(ctx, projectID)
}

// Delete removes a project and, by cascade, its tasks and their comments
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted project %s", project.Name), tracker.Metadata{
		"project_id": project.ID.String(),
	})

	return nil
}

func (s *ProjectService) respondWithMembers(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByIDWithMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProjectResponse(project), nil
}

func (s *ProjectService) ensureUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_USER", "Referenced user does not exist")
	}
	return nil
}

func (s *ProjectService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.activities != nil {
		s.activities.Record(ctx, action, message, metadata)
	}
}
