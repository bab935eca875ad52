package tracker

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// Status is the workflow state of a task. Any status may follow any
// other; no transition table is enforced.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCanceled   Status = "canceled"
)

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// Priority ranks task urgency from low (1) to urgent (4)
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
	PriorityUrgent Priority = 4
)

// IsValid reports whether the priority is within the known range
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// Task is a work item scoped to a project. Tasks are deleted with their
// project; references to the creating and assigned users are cleared
// when those users are deleted, preserving the task itself.
type Task struct {
	shared.BaseEntity
	ProjectID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_tasks_project_status,priority:1" json:"project_id"`
	Project      *Project          `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Title        string            `gorm:"type:varchar(200);not null;index" json:"title"`
	Description  string            `gorm:"type:text" json:"description"`
	Status       Status            `gorm:"type:varchar(20);not null;default:'todo';index:idx_tasks_project_status,priority:2;index:idx_tasks_assignee_status,priority:2" json:"status"`
	Priority     Priority          `gorm:"not null;default:2;index" json:"priority"`
	CreatedByID  *uuid.UUID        `gorm:"type:uuid;index" json:"created_by_id"`
	CreatedBy    *identity.UserRef `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
	AssignedToID *uuid.UUID        `gorm:"type:uuid;index:idx_tasks_assignee_status,priority:1" json:"assigned_to_id"`
	AssignedTo   *identity.UserRef `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`
	DueDate      *time.Time        `gorm:"type:date" json:"due_date"`
	Progress     int               `gorm:"not null;default:0" json:"progress"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a task in the todo state with medium priority
func NewTask(projectID uuid.UUID, title string) (*Task, error) {
	if err := validateTaskTitle(title); err != nil {
		return nil, err
	}
	return &Task{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Title:      title,
		Status:     StatusTodo,
		Priority:   PriorityMedium,
	}, nil
}

// Retitle validates and sets the task title
func (t *Task) Retitle(title string) error {
	if err := validateTaskTitle(title); err != nil {
		return err
	}
	t.Title = title
	t.Touch()
	return nil
}

// SetStatus validates and sets the workflow state. Transitions are
// unconstrained.
func (t *Task) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "Status must be one of todo, in_progress, done, canceled")
	}
	t.Status = status
	t.Touch()
	return nil
}

// SetPriority validates and sets the priority
func (t *Task) SetPriority(priority Priority) error {
	if !priority.IsValid() {
		return shared.NewValidationError("priority", "Priority must be between 1 (low) and 4 (urgent)")
	}
	t.Priority = priority
	t.Touch()
	return nil
}

// SetProgress rejects values outside [0, 100]
func (t *Task) SetProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return shared.NewValidationError("progress", "Progress must be between 0 and 100")
	}
	t.Progress = progress
	t.Touch()
	return nil
}

// Assign sets or clears the assigned user
func (t *Task) Assign(userID *uuid.UUID) {
	t.AssignedToID = userID
	t.AssignedTo = nil
	t.Touch()
}

func validateTaskTitle(title string) error {
	if title == "" {
		return shared.NewValidationError("title", "Task title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewValidationError("title", "Task title cannot exceed 200 characters")
	}
	return nil
}
