package feepayments

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"school-ledger/app/apperrors"
	"school-ledger/app/models"
)

const selectColumns = `fp.id, fp.student_id, fp.fee_structure_id, fp.amount_paid, fp.status,
		fp.transactions, fp.is_locked, fp.locked_by, fp.locked_at, fp.created_at, fp.updated_at`

func scanFeePayment(row interface {
	Scan(dest ...interface{}) error
}) (*models.FeePayment, error) {
	fp := &models.FeePayment{}
	err := row.Scan(
		&fp.ID, &fp.StudentID, &fp.FeeStructureID, &fp.AmountPaid, &fp.Status,
		&fp.Transactions, &fp.IsLocked, &fp.LockedBy, &fp.LockedAt, &fp.CreatedAt, &fp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fp, nil
}

func GetFeePaymentByID(db *sql.DB, id string) (*models.FeePayment, error) {
	query := `SELECT ` + selectColumns + ` FROM fee_payments fp WHERE fp.id = $1`
	return scanFeePayment(db.QueryRow(query, id))
}

// RecordPayment appends a transaction and recomputes the running balance and
// status in a single UPDATE, so two concurrent payments to the same record
// can never lose an update. The is_locked guard in the WHERE clause means a
// lock that lands between the read and the write still rejects the mutation.
func RecordPayment(db *sql.DB, id string, txn models.PaymentTransaction) (*models.FeePayment, error) {
	existing, err := GetFeePaymentByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperrors.NotFoundError{Entity: "Fee payment"}
		}
		return nil, err
	}
	if existing.IsLocked {
		return nil, &apperrors.LockedError{Entity: "Fee payment"}
	}

	txnJSON, err := json.Marshal(models.TransactionList{txn})
	if err != nil {
		return nil, err
	}

	query := `UPDATE fee_payments fp
			  SET transactions = fp.transactions || $2::jsonb,
			      amount_paid = fp.amount_paid + $3,
			      status = CASE
			          WHEN fp.amount_paid + $3 >= fs.total_amount THEN 'paid'
			          WHEN fp.amount_paid + $3 > 0 THEN 'partial'
			          ELSE 'unpaid'
			      END,
			      updated_at = NOW()
			  FROM fee_structures fs
			  WHERE fp.id = $1 AND fs.id = fp.fee_structure_id AND fp.is_locked = false
			  RETURNING ` + selectColumns

	fp, err := scanFeePayment(db.QueryRow(query, id, txnJSON, txn.Amount))
	if err != nil {
		if err == sql.ErrNoRows {
			// Locked concurrently; no mutation happened.
			return nil, &apperrors.LockedError{Entity: "Fee payment"}
		}
		return nil, err
	}
	return fp, nil
}

// PaymentFilter narrows fee payment listings. Zero values mean no filtering.
type PaymentFilter struct {
	StudentID string
	Session   string
	Status    string
}

// QueryFeePayments filters by student, session and status. The session
// filter is two-stage: matching structure ids are resolved first, and an
// empty id set yields zero results rather than all.
func QueryFeePayments(db *sql.DB, filter PaymentFilter) ([]*models.FeePayment, error) {
	structureIDs := []string{}
	if filter.Session != "" {
		rows, err := db.Query(`SELECT id FROM fee_structures WHERE session = $1 AND deleted_at IS NULL`, filter.Session)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, err
			}
			structureIDs = append(structureIDs, id)
		}
		if len(structureIDs) == 0 {
			return []*models.FeePayment{}, nil
		}
	}

	query := `SELECT ` + selectColumns + `
			  FROM fee_payments fp
			  WHERE ($1 = '' OR fp.student_id::text = $1)
			  AND ($2 = '' OR fp.status = $2)
			  AND (cardinality($3::uuid[]) = 0 OR fp.fee_structure_id = ANY($3))
			  ORDER BY fp.created_at DESC`

	rows, err := db.Query(query, filter.StudentID, filter.Status, pq.Array(structureIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.FeePayment{}
	for rows.Next() {
		fp, err := scanFeePayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, fp)
	}
	return payments, nil
}

// GetStudentFeeViews returns a student's own payments annotated with the
// remaining balance and overdue flag.
func GetStudentFeeViews(db *sql.DB, studentID string, now time.Time) ([]*models.StudentFeeView, error) {
	query := `SELECT ` + selectColumns + `,
			  fs.total_amount, fs.due_date, fs.program, fs.session, fs.semester
			  FROM fee_payments fp
			  JOIN fee_structures fs ON fp.fee_structure_id = fs.id
			  WHERE fp.student_id = $1
			  ORDER BY fs.due_date`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []*models.StudentFeeView{}
	for rows.Next() {
		v := &models.StudentFeeView{}
		var dueDate time.Time
		err := rows.Scan(
			&v.ID, &v.StudentID, &v.FeeStructureID, &v.AmountPaid, &v.Status,
			&v.Transactions, &v.IsLocked, &v.LockedBy, &v.LockedAt, &v.CreatedAt, &v.UpdatedAt,
			&v.TotalAmount, &dueDate, &v.Program, &v.Session, &v.Semester,
		)
		if err != nil {
			return nil, err
		}
		v.Remaining = v.FeePayment.Remaining(v.TotalAmount)
		v.Overdue = v.FeePayment.IsOverdue(dueDate, now)
		views = append(views, v)
	}
	return views, nil
}
