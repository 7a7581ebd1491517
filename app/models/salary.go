package models

import "time"

// Salary is one payroll entry per (employee, month). NetAmount is derived as
// BaseAmount minus Deductions; deductions can never exceed the base.
type Salary struct {
	ID         string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EmployeeID string       `json:"employee_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Month      string       `json:"month" gorm:"not null;type:varchar(7)" validate:"required"`
	BaseAmount int64        `json:"base_amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	Deductions int64        `json:"deductions" gorm:"not null;default:0;type:bigint" validate:"gte=0"`
	NetAmount  int64        `json:"net_amount" gorm:"not null;type:bigint"`
	Status     SalaryStatus `json:"status" gorm:"not null;default:'pending';type:varchar(10)"`
	PaidOn     *CustomTime  `json:"paid_on,omitempty" gorm:"type:date"`
	Notes      string       `json:"notes,omitempty" gorm:"type:text"`
	IsLocked   bool         `json:"is_locked" gorm:"not null;default:false"`
	LockedBy   *string      `json:"locked_by,omitempty" gorm:"type:uuid"`
	LockedAt   *time.Time   `json:"locked_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time   `json:"deleted_at,omitempty" gorm:"index"`

	Employee *User `json:"employee,omitempty" gorm:"foreignKey:EmployeeID;references:ID"`
}

// ComputeNet recalculates NetAmount from the base and deductions.
func (s *Salary) ComputeNet() {
	s.NetAmount = s.BaseAmount - s.Deductions
}

// ValidDeductions reports whether deductions fall within [0, base].
func (s *Salary) ValidDeductions() bool {
	return s.Deductions >= 0 && s.Deductions <= s.BaseAmount
}
