package models

import "time"

// Expense represents a school expense
type Expense struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	CategoryID  string     `json:"category_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Title       string     `json:"title" gorm:"not null" validate:"required"`
	Amount      int64      `json:"amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	Currency    string     `json:"currency" gorm:"not null;default:'UGX';type:varchar(3)"`
	PaidOn      CustomTime `json:"paid_on" gorm:"not null;index;type:date" validate:"required"`
	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	IsLocked    bool       `json:"is_locked" gorm:"not null;default:false"`
	LockedBy    *string    `json:"locked_by,omitempty" gorm:"type:uuid"`
	LockedAt    *time.Time `json:"locked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"` // optional for JSON responses
}

// Category groups expenses for reporting.
type Category struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
