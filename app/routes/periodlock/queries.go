package periodlock

import (
	"database/sql"
	"log"
	"time"

	"school-ledger/app/models"
)

// LockResult reports what a period lock touched.
type LockResult struct {
	CutoffDate        models.CustomTime `json:"cutoff_date"`
	ExpensesLocked    int64             `json:"expenses_locked"`
	SalariesLocked    int64             `json:"salaries_locked"`
	FeePaymentsLocked int               `json:"fee_payments_locked"`
	FailedFeePayments []string          `json:"failed_fee_payments,omitempty"`
}

// LockExpenses bulk-locks every unlocked expense paid on or before the
// cutoff. A single filtered update, no partial-failure handling needed.
func LockExpenses(db *sql.DB, cutoff time.Time, lockedBy string, now time.Time) (int64, error) {
	res, err := db.Exec(`
		UPDATE expenses
		SET is_locked = true, locked_by = $1, locked_at = $2, updated_at = $2
		WHERE paid_on <= $3 AND is_locked = false AND deleted_at IS NULL
	`, lockedBy, now, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LockSalaries bulk-locks salaries paid on or before the cutoff, falling
// back to created_at for records never explicitly marked paid.
func LockSalaries(db *sql.DB, cutoff time.Time, lockedBy string, now time.Time) (int64, error) {
	res, err := db.Exec(`
		UPDATE salaries
		SET is_locked = true, locked_by = $1, locked_at = $2, updated_at = $2
		WHERE is_locked = false AND deleted_at IS NULL
		AND (paid_on <= $3 OR (paid_on IS NULL AND created_at <= $3))
	`, lockedBy, now, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// unlockedFeePayments returns every unlocked fee payment with its embedded
// transaction history.
func unlockedFeePayments(db *sql.DB) ([]*models.FeePayment, error) {
	rows, err := db.Query(`
		SELECT id, transactions FROM fee_payments WHERE is_locked = false
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.FeePayment{}
	for rows.Next() {
		fp := &models.FeePayment{}
		if err := rows.Scan(&fp.ID, &fp.Transactions); err != nil {
			return nil, err
		}
		payments = append(payments, fp)
	}
	return payments, nil
}

func lockFeePayment(db *sql.DB, id, lockedBy string, now time.Time) error {
	_, err := db.Exec(`
		UPDATE fee_payments
		SET is_locked = true, locked_by = $1, locked_at = $2, updated_at = $2
		WHERE id = $3 AND is_locked = false
	`, lockedBy, now, id)
	return err
}

// LockFeePayments locks every unlocked fee payment with at least one
// transaction on or before the cutoff. Locking is coarse: one qualifying
// transaction locks the whole record, including transactions made after the
// cutoff. Per-transaction locking was rejected as unneeded complexity, at
// the cost of occasionally freezing later transactions early.
//
// Each record is saved individually and sequentially; a failed save is
// logged and reported while the loop continues, since each lock is
// independently valid. The caller re-invokes the lock for failed ids.
func LockFeePayments(db *sql.DB, cutoff time.Time, lockedBy string, now time.Time) (locked int, failed []string, err error) {
	payments, err := unlockedFeePayments(db)
	if err != nil {
		return 0, nil, err
	}

	for _, fp := range payments {
		if !fp.Transactions.AnyOnOrBefore(cutoff) {
			continue
		}
		if err := lockFeePayment(db, fp.ID, lockedBy, now); err != nil {
			log.Printf("Failed to lock fee payment %s: %v", fp.ID, err)
			failed = append(failed, fp.ID)
			continue
		}
		locked++
	}
	return locked, failed, nil
}
