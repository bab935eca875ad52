package tracker

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=200"`
	Description string      `json:"description"`
	OwnerID     *uuid.UUID  `json:"owner_id"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	ClearOwner  bool       `json:"clear_owner"`
	IsActive    *bool      `json:"is_active"`
}

// ReplaceMembersRequest swaps a project's full member roster
type ReplaceMembersRequest struct {
	MemberIDs []uuid.UUID `json:"member_ids"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerID     *uuid.UUID       `json:"owner_id"`
	Members     []MemberResponse `json:"members,omitempty"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// MemberResponse represents a project member in API responses
type MemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
}

// ProjectListFilter represents filter options for the project list
type ProjectListFilter struct {
	Search   string     `form:"search"`
	OwnerID  *uuid.UUID `form:"owner_id"`
	MemberID *uuid.UUID `form:"member_id"`
	IsActive *bool      `form:"is_active"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	ProjectID    uuid.UUID  `json:"project_id" binding:"required"`
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Description  string     `json:"description"`
	Status       string     `json:"status" binding:"omitempty,oneof=todo in_progress done canceled"`
	Priority     *int       `json:"priority" binding:"omitempty,min=1,max=4"`
	CreatedByID  *uuid.UUID `json:"created_by_id"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
	DueDate      *time.Time `json:"due_date"`
}

// UpdateTaskRequest represents a request to update a task
type UpdateTaskRequest struct {
	Title          *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status" binding:"omitempty,oneof=todo in_progress done canceled"`
	Priority       *int       `json:"priority" binding:"omitempty,min=1,max=4"`
	AssignedToID   *uuid.UUID `json:"assigned_to_id"`
	ClearAssignee  bool       `json:"clear_assignee"`
	DueDate        *time.Time `json:"due_date"`
	ClearDueDate   bool       `json:"clear_due_date"`
	Progress       *int       `json:"progress"`
	IsActive       *bool      `json:"is_active"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    uuid.UUID  `json:"project_id"`
	ProjectName  string     `json:"project_name,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     int        `json:"priority"`
	CreatedByID  *uuid.UUID `json:"created_by_id"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
	DueDate      *time.Time `json:"due_date"`
	Progress     int        `json:"progress"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TaskListFilter represents filter options for the task list
type TaskListFilter struct {
	Search       string     `form:"search"`
	ProjectID    *uuid.UUID `form:"project_id"`
	Status       string     `form:"status" binding:"omitempty,oneof=todo in_progress done canceled"`
	Priority     *int       `form:"priority" binding:"omitempty,min=1,max=4"`
	AssignedToID *uuid.UUID `form:"assigned_to_id"`
	Unassigned   bool       `form:"unassigned"`
	CreatedByID  *uuid.UUID `form:"created_by_id"`
	IsActive     *bool      `form:"is_active"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateCommentRequest represents a request to comment on a task
type CreateCommentRequest struct {
	TaskID   uuid.UUID  `json:"task_id" binding:"required"`
	AuthorID *uuid.UUID `json:"author_id"`
	Body     string     `json:"body" binding:"required,min=1"`
}

// UpdateCommentRequest represents a request to edit a comment
type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        uuid.UUID  `json:"id"`
	TaskID    uuid.UUID  `json:"task_id"`
	AuthorID  *uuid.UUID `json:"author_id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CommentListFilter represents filter options for the comment list
type CommentListFilter struct {
	Search   string     `form:"search"`
	TaskID   *uuid.UUID `form:"task_id"`
	AuthorID *uuid.UUID `form:"author_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AppendActivityRequest represents a request to append an audit entry
type AppendActivityRequest struct {
	ActorID  *uuid.UUID             `json:"actor_id"`
	Action   string                 `json:"action" binding:"required,oneof=create update delete login other"`
	Message  string                 `json:"message" binding:"required,max=500"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ActivityLogResponse represents an audit entry in API responses
type ActivityLogResponse struct {
	ID        uuid.UUID              `json:"id"`
	ActorID   *uuid.UUID             `json:"actor_id"`
	Actor     string                 `json:"actor,omitempty"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// ActivityLogListFilter represents filter options for the audit trail
type ActivityLogListFilter struct {
	Search   string     `form:"search"`
	ActorID  *uuid.UUID `form:"actor_id"`
	Action   string     `form:"action" binding:"omitempty,oneof=create update delete login other"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *tracker.Project) *ProjectResponse {
	resp := &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, m := range p.Members {
		resp.Members = append(resp.Members, MemberResponse{
			ID:       m.ID,
			Username: m.Username,
			Email:    m.Email,
		})
	}
	return resp
}

// ToProjectResponses converts a slice of domain Projects
func ToProjectResponses(projects []tracker.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *ToProjectResponse(&projects[i])
	}
	return responses
}

// ToTaskResponse converts a domain Task to TaskResponse
func ToTaskResponse(t *tracker.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     int(t.Priority),
		CreatedByID:  t.CreatedByID,
		AssignedToID: t.AssignedToID,
		DueDate:      t.DueDate,
		Progress:     t.Progress,
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Project != nil {
		resp.ProjectName = t.Project.Name
	}
	return resp
}

// ToTaskResponses converts a slice of domain Tasks
func ToTaskResponses(tasks []tracker.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *ToTaskResponse(&tasks[i])
	}
	return responses
}

// ToCommentResponse converts a domain Comment to CommentResponse
func ToCommentResponse(c *tracker.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCommentResponses converts a slice of domain Comments
func ToCommentResponses(comments []tracker.Comment) []CommentResponse {
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = *ToCommentResponse(&comments[i])
	}
	return responses
}

// ToActivityLogResponse converts a domain ActivityLog to ActivityLogResponse
func ToActivityLogResponse(l *tracker.ActivityLog) *ActivityLogResponse {
	resp := &ActivityLogResponse{
		ID:        l.ID,
		ActorID:   l.ActorID,
		Action:    string(l.Action),
		Message:   l.Message,
		Metadata:  l.Metadata,
		CreatedAt: l.CreatedAt,
	}
	if l.Actor != nil {
		resp.Actor = l.Actor.Username
	}
	return resp
}

// ToActivityLogResponses converts a slice of domain ActivityLogs
func ToActivityLogResponses(logs []tracker.ActivityLog) []ActivityLogResponse {
	responses := make([]ActivityLogResponse, len(logs))
	for i := range logs {
		responses[i] = *ToActivityLogResponse(&logs[i])
	}
	return responses
}
