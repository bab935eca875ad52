package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// TaskService handles task-related business operations
type TaskService struct {
	taskRepo    tracker.TaskRepository
	projectRepo tracker.ProjectRepository
	userRepo    identity.UserRefRepository
	activities  *ActivityLogService
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo tracker.TaskRepository,
	projectRepo tracker.ProjectRepository,
	userRepo identity.UserRefRepository,
	activities *ActivityLogService,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		activities:  activities,
	}
}

// Create creates a task in the given project
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PROJECT", "Project not found")
		}
		return nil, err
	}
	if req.CreatedByID != nil {
		if err := s.ensureUser(ctx, *req.CreatedByID); err != nil {
			return nil, err
		}
	}
	if req.AssignedToID != nil {
		if err := s.ensureUser(ctx, *req.AssignedToID); err != nil {
			return nil, err
		}
	}

	task, err := tracker.NewTask(req.ProjectID, req.Title)
	if err != nil {
		return nil, err
	}
	task.Description = req.Description
	task.CreatedByID = req.CreatedByID
	task.AssignedToID = req.AssignedToID
	task.DueDate = req.DueDate

	if req.Status != "" {
		if err := task.SetStatus(tracker.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := task.SetPriority(tracker.Priority(*req.Priority)); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Created task %s", task.Title), tracker.Metadata{
		"task_id":    task.ID.String(),
		"project_id": task.ProjectID.String(),
	})

	return ToTaskResponse(task), nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTaskResponse(task), nil
}

// List retrieves tasks matching the filter
func (s *TaskService) List(ctx context.Context, filter TaskListFilter) (*shared.Paginated[TaskResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.ProjectID != nil {
		domainFilter.Filters["project_id"] = *filter.ProjectID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Priority != nil {
		domainFilter.Filters["priority"] = *filter.Priority
	}
	if filter.Unassigned {
		domainFilter.Filters["assigned_to_id"] = nil
	} else if filter.AssignedToID != nil {
		domainFilter.Filters["assigned_to_id"] = *filter.AssignedToID
	}
	if filter.CreatedByID != nil {
		domainFilter.Filters["created_by_id"] = *filter.CreatedByID
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	tasks, err := s.taskRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.taskRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToTaskResponses(tasks), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByProject retrieves the tasks of one project
func (s *TaskService) ListByProject(ctx context.Context, projectID uuid.UUID, filter TaskListFilter) ([]TaskResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PROJECT", "Project not found")
		}
		return nil, err
	}

	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	tasks, err := s.taskRepo.FindByProject(ctx, projectID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks), nil
}

// ListByAssignee retrieves the tasks assigned to one user
func (s *TaskService) ListByAssignee(ctx context.Context, userID uuid.UUID, filter TaskListFilter) ([]TaskResponse, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	tasks, err := s.taskRepo.FindByAssignee(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToTaskResponses(tasks), nil
}

// Update updates an existing task. Status moves freely between any two
// states.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := task.Retitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		task.Description = *req.Description
		task.Touch()
	}
	if req.Status != nil {
		if err := task.SetStatus(tracker.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := task.SetPriority(tracker.Priority(*req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.ClearAssignee {
		task.Assign(nil)
	} else if req.AssignedToID != nil {
		if err := s.ensureUser(ctx, *req.AssignedToID); err != nil {
			return nil, err
		}
		task.Assign(req.AssignedToID)
	}
	if req.ClearDueDate {
		task.DueDate = nil
		task.Touch()
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
		task.Touch()
	}
	if req.Progress != nil {
		if err := task.SetProgress(*req.Progress); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			task.Enable()
		} else {
			task.Disable()
		}
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Updated task %s", task.Title), tracker.Metadata{
		"task_id": task.ID.String(),
		"status":  string(task.Status),
	})

	return ToTaskResponse(task), nil
}

// Delete removes a task and, by cascade, its comments
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted task %s", task.Title), tracker.Metadata{
		"task_id":    task.ID.String(),
		"project_id": task.ProjectID.String(),
	})

	return nil
}

func (s *TaskService) ensureUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_USER", "Referenced user does not exist")
	}
	return nil
}

func (s *TaskService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.activities != nil {
		s.activities.Record(ctx, action, message, metadata)
	}
}
