package models

import "time"

// FeeStructure defines a financial obligation for a cohort: one per
// (program, session, semester). Amounts are integer minor units.
type FeeStructure struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Program     string     `json:"program" gorm:"not null" validate:"required"`
	Session     string     `json:"session" gorm:"not null" validate:"required"`
	Semester    int        `json:"semester" gorm:"not null" validate:"required,gt=0"`
	TotalAmount int64      `json:"total_amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	Currency    string     `json:"currency" gorm:"not null;default:'UGX';type:varchar(3)"`
	DueDate     CustomTime `json:"due_date" gorm:"not null;type:date" validate:"required"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"default:true;not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
