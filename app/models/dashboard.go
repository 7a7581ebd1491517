package models

// FinanceSummary aggregates the ledger for the admin dashboard.
type FinanceSummary struct {
	TotalStudents    int   `json:"total_students"`
	FeesCollected    int64 `json:"fees_collected"`
	FeesOutstanding  int64 `json:"fees_outstanding"`
	UnpaidCount      int   `json:"unpaid_count"`
	PartialCount     int   `json:"partial_count"`
	PaidCount        int   `json:"paid_count"`
	ExpensesTotal    int64 `json:"expenses_total"`
	SalariesPaid     int64 `json:"salaries_paid"`
	SalariesPending  int64 `json:"salaries_pending"`
	LockedFeeRecords int   `json:"locked_fee_records"`
}
