package database

import (
	"database/sql"

	"school-ledger/app/models"
)

// GetFinanceSummary returns the ledger aggregates for the admin dashboard.
func GetFinanceSummary(db *sql.DB) (*models.FinanceSummary, error) {
	summary := &models.FinanceSummary{}

	err := db.QueryRow("SELECT COUNT(*) FROM students WHERE is_active = true AND deleted_at IS NULL").
		Scan(&summary.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(fp.amount_paid), 0),
		       COALESCE(SUM(GREATEST(fs.total_amount - fp.amount_paid, 0)), 0),
		       COUNT(*) FILTER (WHERE fp.status = 'unpaid'),
		       COUNT(*) FILTER (WHERE fp.status = 'partial'),
		       COUNT(*) FILTER (WHERE fp.status = 'paid'),
		       COUNT(*) FILTER (WHERE fp.is_locked)
		FROM fee_payments fp
		JOIN fee_structures fs ON fp.fee_structure_id = fs.id
	`).Scan(
		&summary.FeesCollected, &summary.FeesOutstanding,
		&summary.UnpaidCount, &summary.PartialCount, &summary.PaidCount,
		&summary.LockedFeeRecords,
	)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE deleted_at IS NULL").
		Scan(&summary.ExpensesTotal)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(net_amount) FILTER (WHERE status = 'paid'), 0),
		       COALESCE(SUM(net_amount) FILTER (WHERE status = 'pending'), 0)
		FROM salaries WHERE deleted_at IS NULL
	`).Scan(&summary.SalariesPaid, &summary.SalariesPending)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
