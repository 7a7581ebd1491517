package models

import "time"

// Batch represents an intake cohort: the (program, session) pair a student
// was admitted into. Fee provisioning targets batches.
type Batch struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Program   string     `json:"program" gorm:"not null;index" validate:"required"`
	Session   string     `json:"session" gorm:"not null;index" validate:"required"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// Student is the minimal admissions record the ledger needs: who can owe
// fees, and through which batch. The full admissions profile lives outside
// this subsystem.
type Student struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    *string    `json:"user_id,omitempty" gorm:"type:uuid;index"`
	BatchID   string     `json:"batch_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FirstName string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName  string     `json:"last_name" gorm:"not null" validate:"required"`
	RollNo    string     `json:"roll_no,omitempty" gorm:"type:varchar(30)"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Batch *Batch `json:"batch,omitempty" gorm:"foreignKey:BatchID;references:ID"`
}
