package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PaymentTransaction is one discrete payment against a fee payment record.
// Transactions are embedded in the parent FeePayment, not stored standalone.
type PaymentTransaction struct {
	Amount     int64      `json:"amount" validate:"required,gt=0"`
	PaidOn     CustomTime `json:"paid_on" validate:"required"`
	Mode       string     `json:"mode" validate:"required"`
	ReceiptNo  string     `json:"receipt_no,omitempty"`
	RecordedBy string     `json:"recorded_by,omitempty"`
}

// TransactionList stores the embedded transaction history as a JSONB column.
type TransactionList []PaymentTransaction

// Scan implements the Scanner interface for database reading
func (tl *TransactionList) Scan(value interface{}) error {
	if value == nil {
		*tl = TransactionList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into TransactionList", value)
	}
	return json.Unmarshal(b, tl)
}

// Value implements the Valuer interface for database writing
func (tl TransactionList) Value() (driver.Value, error) {
	if tl == nil {
		tl = TransactionList{}
	}
	return json.Marshal(tl)
}

// Total returns the sum of all transaction amounts.
func (tl TransactionList) Total() int64 {
	var sum int64
	for _, t := range tl {
		sum += t.Amount
	}
	return sum
}

// AnyOnOrBefore reports whether at least one transaction was paid on or
// before the cutoff date.
func (tl TransactionList) AnyOnOrBefore(cutoff time.Time) bool {
	for _, t := range tl {
		if !t.PaidOn.After(cutoff) {
			return true
		}
	}
	return false
}

// FeePayment is a student's running ledger against one fee structure. One
// record exists per (student, fee_structure) pair. AmountPaid is derived from
// the embedded transactions and Status from AmountPaid vs the structure's
// total; neither is edited directly.
type FeePayment struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID      string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeStructureID string          `json:"fee_structure_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AmountPaid     int64           `json:"amount_paid" gorm:"not null;default:0;type:bigint"`
	Status         PaymentStatus   `json:"status" gorm:"not null;default:'unpaid';type:varchar(10)"`
	Transactions   TransactionList `json:"transactions" gorm:"type:jsonb;not null;default:'[]'"`
	IsLocked       bool            `json:"is_locked" gorm:"not null;default:false"`
	LockedBy       *string         `json:"locked_by,omitempty" gorm:"type:uuid"`
	LockedAt       *time.Time      `json:"locked_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Student      *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	FeeStructure *FeeStructure `json:"fee_structure,omitempty" gorm:"foreignKey:FeeStructureID;references:ID"`
}

// DeriveStatus returns the payment status for an amount paid against a
// structure total: unpaid at zero, paid at or above the total, else partial.
func DeriveStatus(amountPaid, totalAmount int64) PaymentStatus {
	switch {
	case amountPaid <= 0:
		return PaymentUnpaid
	case amountPaid >= totalAmount:
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// Remaining returns the outstanding balance against the structure total,
// never negative.
func (fp *FeePayment) Remaining(totalAmount int64) int64 {
	if r := totalAmount - fp.AmountPaid; r > 0 {
		return r
	}
	return 0
}

// IsOverdue reports whether the payment is past the structure's due date and
// not yet fully paid.
func (fp *FeePayment) IsOverdue(dueDate, now time.Time) bool {
	return now.After(dueDate) && fp.Status != PaymentPaid
}

// StudentFeeView is the projection returned to a student viewing their own
// ledger.
type StudentFeeView struct {
	FeePayment
	TotalAmount int64  `json:"total_amount"`
	Remaining   int64  `json:"remaining"`
	Overdue     bool   `json:"isOverdue"`
	Program     string `json:"program"`
	Session     string `json:"session"`
	Semester    int    `json:"semester"`
}
