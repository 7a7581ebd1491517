package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FieldChange is one before/after delta in an audit entry.
type FieldChange struct {
	Field string      `json:"field"`
	Old   interface{} `json:"old"`
	New   interface{} `json:"new"`
}

// ChangeList stores audit deltas as a JSONB column.
type ChangeList []FieldChange

// Scan implements the Scanner interface for database reading
func (cl *ChangeList) Scan(value interface{}) error {
	if value == nil {
		*cl = ChangeList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into ChangeList", value)
	}
	return json.Unmarshal(b, cl)
}

// Value implements the Valuer interface for database writing
func (cl ChangeList) Value() (driver.Value, error) {
	if cl == nil {
		cl = ChangeList{}
	}
	return json.Marshal(cl)
}

// AuditLog is an append-only record of a financial mutation. Entries are
// immutable once written and outlive the entities they describe.
type AuditLog struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Action      AuditAction `json:"action" gorm:"not null;type:varchar(15)" validate:"required"`
	EntityType  string      `json:"entity_type" gorm:"not null;index" validate:"required"`
	EntityID    string      `json:"entity_id" gorm:"not null;index" validate:"required"`
	PerformedBy string      `json:"performed_by" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Changes     ChangeList  `json:"changes" gorm:"type:jsonb;not null;default:'[]'"`
	Reason      string      `json:"reason,omitempty" gorm:"type:text"`
	IPAddress   string      `json:"ip_address,omitempty" gorm:"type:varchar(45)"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
}
