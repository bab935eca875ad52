package tracker

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
	"github.com/orgadmin/backend/internal/infrastructure/logger"
)

// ActivityLogService appends to and reads the audit trail. Entries are
// append-only; there is no update or delete path.
type ActivityLogService struct {
	logRepo tracker.ActivityLogRepository
}

// NewActivityLogService creates a new ActivityLogService
func NewActivityLogService(logRepo tracker.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{logRepo: logRepo}
}

// Append validates and stores an audit entry
func (s *ActivityLogService) Append(ctx context.Context, req AppendActivityRequest) (*ActivityLogResponse, error) {
	entry, err := tracker.NewActivityLog(req.ActorID, tracker.Action(req.Action), req.Message, req.Metadata)
	if err != nil {
		return nil, err
	}

	if err := s.logRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	return ToActivityLogResponse(entry), nil
}

// Record stores an audit entry on behalf of another service. The actor
// is taken from the request context when present. Failures are logged
// and swallowed so an audit hiccup never fails the triggering
// operation.
func (s *ActivityLogService) Record(ctx context.Context, action tracker.Action, message string, metadata tracker.Metadata) {
	var actorID *uuid.UUID
	if raw := logger.GetActorID(ctx); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			actorID = &id
		}
	}

	entry, err := tracker.NewActivityLog(actorID, action, message, metadata)
	if err != nil {
		logger.L(ctx).Warn("Failed to build activity log entry",
			zap.String("action", string(action)),
			zap.Error(err))
		return
	}

	if err := s.logRepo.Save(ctx, entry); err != nil {
		logger.L(ctx).Warn("Failed to record activity log entry",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// GetByID retrieves an audit entry by ID
func (s *ActivityLogService) GetByID(ctx context.Context, id uuid.UUID) (*ActivityLogResponse, error) {
	entry, err := s.logRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToActivityLogResponse(entry), nil
}

// List retrieves audit entries matching the filter
func (s *ActivityLogService) List(ctx context.Context, filter ActivityLogListFilter) (*shared.Paginated[ActivityLogResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.ActorID != nil {
		domainFilter.Filters["actor_id"] = *filter.ActorID
	}
	if filter.Action != "" {
		domainFilter.Filters["action"] = filter.Action
	}

	entries, err := s.logRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.logRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToActivityLogResponses(entries), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByActor retrieves the audit entries of one actor
func (s *ActivityLogService) ListByActor(ctx context.Context, actorID uuid.UUID, filter ActivityLogListFilter) ([]ActivityLogResponse, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	entries, err := s.logRepo.FindByActor(ctx, actorID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToActivityLogResponses(entries), nil
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
