package models

// PaymentStatus defines the derived state of a fee payment against its
// structure's total.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// SalaryStatus defines the payout state of a salary record.
type SalaryStatus string

const (
	SalaryPending SalaryStatus = "pending"
	SalaryPaid    SalaryStatus = "paid"
)

// AuditAction defines the recorded action types for the audit log.
type AuditAction string

const (
	AuditCreate     AuditAction = "CREATE"
	AuditUpdate     AuditAction = "UPDATE"
	AuditDelete     AuditAction = "DELETE"
	AuditSoftDelete AuditAction = "SOFT_DELETE"
	AuditLock       AuditAction = "LOCK"
	AuditUnlock     AuditAction = "UNLOCK"
)

// ValidAuditAction reports whether a is one of the recorded action types.
func ValidAuditAction(a AuditAction) bool {
	switch a {
	case AuditCreate, AuditUpdate, AuditDelete, AuditSoftDelete, AuditLock, AuditUnlock:
		return true
	}
	return false
}
