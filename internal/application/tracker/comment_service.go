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

// CommentService handles task comment operations
type CommentService struct {
	commentRepo tracker.CommentRepository
	taskRepo    tracker.TaskRepository
	userRepo    identity.UserRefRepository
	activities  *ActivityLogService
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo tracker.CommentRepository,
	taskRepo tracker.TaskRepository,
	userRepo identity.UserRefRepository,
	activities *ActivityLogService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		activities:  activities,
	}
}

// Create adds a comment to a task
func (s *CommentService) Create(ctx context.Context, req CreateCommentRequest) (*CommentResponse, error) {
	if _, err := s.taskRepo.FindByID(ctx, req.TaskID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TASK", "Task not found")
		}
		return nil, err
	}
	if req.AuthorID != nil {
		exists, err := s.userRepo.Exists(ctx, *req.AuthorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("INVALID_USER", "Referenced user does not exist")
		}
	}

	comment, err := tracker.NewComment(req.TaskID, req.AuthorID, req.Body)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionCreate, fmt.Sprintf("Commented on task %s", req.TaskID), tracker.Metadata{
		"comment_id": comment.ID.String(),
		"task_id":    req.TaskID.String(),
	})

	return ToCommentResponse(comment), nil
}

// GetByID retrieves a comment by ID
func (s *CommentService) GetByID(ctx context.Context, id uuid.UUID) (*CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCommentResponse(comment), nil
}

// List retrieves comments matching the filter
func (s *CommentService) List(ctx context.Context, filter CommentListFilter) (*shared.Paginated[CommentResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.TaskID != nil {
		domainFilter.Filters["task_id"] = *filter.TaskID
	}
	if filter.AuthorID != nil {
		domainFilter.Filters["author_id"] = *filter.AuthorID
	}

	comments, err := s.commentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.commentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToCommentResponses(comments), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByTask retrieves the comments of one task, oldest first
func (s *CommentService) ListByTask(ctx context.Context, taskID uuid.UUID, filter CommentListFilter) ([]CommentResponse, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TASK", "Task not found")
		}
		return nil, err
	}

	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
		domainFilter.OrderDir = "asc"
	}
	comments, err := s.commentRepo.FindByTask(ctx, taskID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToCommentResponses(comments), nil
}

// Update replaces a comment's body
func (s *CommentService) Update(ctx context.Context, id uuid.UUID, req UpdateCommentRequest) (*CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := comment.Edit(req.Body); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	s.record(ctx, tracker.ActionUpdate, fmt.Sprintf("Edited comment %s", comment.ID), tracker.Metadata{
		"comment_id": comment.ID.String(),
		"task_id":    comment.TaskID.String(),
	})

	return ToCommentResponse(comment), nil
}

// Delete removes a comment
func (s *CommentService) Delete(ctx context.Context, id uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return err
	}

	s.record(ctx, tracker.ActionDelete, fmt.Sprintf("Deleted comment %s", comment.ID), tracker.Metadata{
		"comment_id": comment.ID.String(),
		"task_id":    comment.TaskID.String(),
	})

	return nil
}

func (s *CommentService) record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	if s.activities != nil {
		s.activities.Record(ctx, action, message, metadata)
	}
}
