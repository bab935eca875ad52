package tracker

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// ProjectRepository persists projects and their member rosters
type ProjectRepository interface {
	shared.Repository[Project]
	FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*Project, error)
	AddMember(ctx context.Context, projectID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	ReplaceMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error
}

// TaskRepository persists tasks
type TaskRepository interface {
	shared.Repository[Task]
	FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]Task, error)
	FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Task, error)
}

// CommentRepository persists task comments
type CommentRepository interface {
	shared.Repository[Comment]
	FindByTask(ctx context.Context, taskID uuid.UUID, filter shared.Filter) ([]Comment, error)
}

// ActivityLogRepository persists audit trail entries
type ActivityLogRepository interface {
	shared.Repository[ActivityLog]
	FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)
}
