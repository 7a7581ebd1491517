package salaries

import (
	"database/sql"
	"fmt"
	"time"

	"school-ledger/app/apperrors"
	"school-ledger/app/models"
)

const selectColumns = `s.id, s.employee_id, s.month, s.base_amount, s.deductions, s.net_amount,
		s.status, s.paid_on, COALESCE(s.notes, ''), s.is_locked, s.locked_by, s.locked_at,
		s.created_at, s.updated_at`

func scanSalary(row interface {
	Scan(dest ...interface{}) error
}) (*models.Salary, error) {
	s := &models.Salary{}
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.BaseAmount, &s.Deductions, &s.NetAmount,
		&s.Status, &s.PaidOn, &s.Notes, &s.IsLocked, &s.LockedBy, &s.LockedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func CreateSalary(db *sql.DB, s *models.Salary) error {
	s.ComputeNet()
	query := `INSERT INTO salaries (employee_id, month, base_amount, deductions, net_amount, notes)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			  RETURNING id, status, created_at, updated_at`
	err := db.QueryRow(query, s.EmployeeID, s.Month, s.BaseAmount, s.Deductions, s.NetAmount, s.Notes).
		Scan(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if apperrors.IsUniqueViolation(err, "uq_salaries_employee_month") {
			return &apperrors.ConflictError{Message: "A salary record already exists for this employee and month"}
		}
		return err
	}
	return nil
}

func GetSalaryByID(db *sql.DB, id string) (*models.Salary, error) {
	query := `SELECT ` + selectColumns + ` FROM salaries s WHERE s.id = $1 AND s.deleted_at IS NULL`
	return scanSalary(db.QueryRow(query, id))
}

func GetAllSalaries(db *sql.DB, employeeID, month string) ([]*models.Salary, error) {
	query := `SELECT ` + selectColumns + `
			  FROM salaries s
			  WHERE s.deleted_at IS NULL
			  AND ($1 = '' OR s.employee_id::text = $1)
			  AND ($2 = '' OR s.month = $2)
			  ORDER BY s.month DESC, s.created_at DESC`

	rows, err := db.Query(query, employeeID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	salaries := []*models.Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, s)
	}
	return salaries, nil
}

func UpdateSalary(db *sql.DB, s *models.Salary) error {
	s.ComputeNet()
	query := `UPDATE salaries
			  SET base_amount = $1, deductions = $2, net_amount = $3, notes = NULLIF($4, ''), updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL AND is_locked = false
			  RETURNING updated_at`
	return db.QueryRow(query, s.BaseAmount, s.Deductions, s.NetAmount, s.Notes, s.ID).
		Scan(&s.UpdatedAt)
}

// MarkSalaryPaid flips the salary to paid and records the payout as an
// expense in the same transaction, so the spend side of the ledger never
// drifts from payroll.
func MarkSalaryPaid(db *sql.DB, s *models.Salary, employeeName string, paidOn time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE salaries
			  SET status = 'paid', paid_on = $1, updated_at = NOW()
			  WHERE id = $2 AND status = 'pending' AND is_locked = false
			  RETURNING updated_at`
	if err := tx.QueryRow(query, paidOn, s.ID).Scan(&s.UpdatedAt); err != nil {
		return err
	}

	var categoryID string
	err = tx.QueryRow(`SELECT id FROM categories WHERE name = 'Salaries' AND deleted_at IS NULL`).Scan(&categoryID)
	if err == sql.ErrNoRows {
		err = tx.QueryRow(`INSERT INTO categories (name, is_active) VALUES ('Salaries', true) RETURNING id`).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("failed to create category: %v", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to find category: %v", err)
	}

	title := fmt.Sprintf("Salary Payout: %s", employeeName)
	notes := fmt.Sprintf("System generated expense for payroll disbursement. Month: %s", s.Month)

	queryExpense := `INSERT INTO expenses (category_id, title, amount, paid_on, notes)
					 VALUES ($1, $2, $3, $4, $5)`
	_, err = tx.Exec(queryExpense, categoryID, title, s.NetAmount, paidOn, notes)
	if err != nil {
		return fmt.Errorf("failed to create expense: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.Status = models.SalaryPaid
	s.PaidOn = &models.CustomTime{Time: paidOn}
	return nil
}

func DeleteSalary(db *sql.DB, id string) error {
	var deletedAt sql.NullTime
	query := `UPDATE salaries SET deleted_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL AND is_locked = false
			  RETURNING deleted_at`
	return db.QueryRow(query, id).Scan(&deletedAt)
}
