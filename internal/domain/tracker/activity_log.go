package tracker

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
)

// MaxActivityMessageLength caps the human-readable message
const MaxActivityMessageLength = 500

// Action categorizes an activity log entry
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionLogin  Action = "login"
	ActionOther  Action = "other"
)

// IsValid reports whether the action is one of the known values
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionOther:
		return true
	}
	return false
}

// Metadata is a free-form JSON payload stored with a log entry
type Metadata map[string]interface{}

// Value implements driver.Valuer for JSON column storage
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
	if len(data) == 0 {
		*m = Metadata{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// ActivityLog is a simple audit trail entry: who did what. Entries are
// append-only in practice; deleting the actor clears the reference and
// keeps the history.
type ActivityLog struct {
	shared.BaseEntity
	ActorID  *uuid.UUID        `gorm:"type:uuid;index" json:"actor_id"`
	Actor    *identity.UserRef `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"actor,omitempty"`
	Action   Action            `gorm:"type:varchar(20);not null;default:'other';index" json:"action"`
	Message  string            `gorm:"type:varchar(500);not null" json:"message"`
	Metadata Metadata          `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
}

// TableName returns the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog records an action taken by an optional actor
func NewActivityLog(actorID *uuid.UUID, action Action, message string, metadata Metadata) (*ActivityLog, error) {
	if !action.IsValid() {
		return nil, shared.NewValidationError("action", "Action must be one of create, update, delete, login, other")
	}
	if len(message) > MaxActivityMessageLength {
		return nil, shared.NewValidationError("message", "Message cannot exceed 500 characters")
	}
	if metadata == nil {
		metadata = Metadata{}
	}
	return &ActivityLog{
		BaseEntity: shared.NewBaseEntity(),
		ActorID:    actorID,
		Action:     action,
		Message:    message,
		Metadata:   metadata,
	}, nil
}
