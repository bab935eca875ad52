package tracker

import (
	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// Comment is a free-form note on a task. Comments are deleted with
// their task; the author reference is cleared when the author is
// deleted, keeping the comment itself.
type Comment struct {
	shared.BaseEntity
	TaskID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"task_id"`
	Task     *Task             `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
	AuthorID *uuid.UUID        `gorm:"type:uuid;index" json:"author_id"`
	Author   *identity.UserRef `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	Body     string            `gorm:"type:text;not null" json:"body"`
}

// TableName returns the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// NewComment creates a comment on the given task
func NewComment(taskID uuid.UUID, authorID *uuid.UUID, body string) (*Comment, error) {
	if body == "" {
		return nil, shared.NewValidationError("body", "Comment body cannot be empty")
	}
	return &Comment{
		BaseEntity: shared.NewBaseEntity(),
		TaskID:     taskID,
		AuthorID:   authorID,
		Body:       body,
	}, nil
}

// Edit replaces the comment body
func (c *Comment) Edit(body string) error {
	if body == "" {
		return shared.NewValidationError("body", "Comment body cannot be empty")
	}
	c.Body = body
	c.Touch()
	return nil
}
