package feestructures

import (
	"database/sql"
	"log"

	"school-ledger/app/apperrors"
	"school-ledger/app/models"
)

func CreateFeeStructure(db *sql.DB, fs *models.FeeStructure) error {
	query := `INSERT INTO fee_structures (program, session, semester, total_amount, currency, due_date, description)
			  VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'UGX'), $6, NULLIF($7, ''))
			  RETURNING id, currency, is_active, created_at, updated_at`
	err := db.QueryRow(query,
		fs.Program, fs.Session, fs.Semester, fs.TotalAmount, fs.Currency, fs.DueDate, fs.Description,
	).Scan(&fs.ID, &fs.Currency, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt)
	if err != nil {
		if apperrors.IsUniqueViolation(err, "uq_fee_structures_cohort") {
			return &apperrors.ConflictError{Message: "A fee structure already exists for this program, session and semester"}
		}
		return err
	}
	return nil
}

// ProvisionFeePayments creates one unpaid fee payment per active student in
// the structure's cohort. Best-effort: a failed insert (typically a
// duplicate for a student already provisioned) is logged and skipped, never
// aborting the structure itself. Partial provisioning is reconciled by
// re-running this for the same structure; the unique pair constraint makes
// that idempotent.
func ProvisionFeePayments(db *sql.DB, fs *models.FeeStructure, studentIDs []string) (created, skipped int) {
	for _, studentID := range studentIDs {
		_, err := db.Exec(`
			INSERT INTO fee_payments (student_id, fee_structure_id, amount_paid, status)
			VALUES ($1, $2, 0, 'unpaid')
		`, studentID, fs.ID)
		if err != nil {
			log.Printf("Failed to provision fee payment for student %s on structure %s: %v", studentID, fs.ID, err)
			skipped++
			continue
		}
		created++
	}
	return created, skipped
}

func GetFeeStructureByID(db *sql.DB, id string) (*models.FeeStructure, error) {
	fs := &models.FeeStructure{}
	query := `SELECT id, program, session, semester, total_amount, currency, due_date,
			  COALESCE(description, ''), is_active, created_at, updated_at
			  FROM fee_structures WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(
		&fs.ID, &fs.Program, &fs.Session, &fs.Semester, &fs.TotalAmount, &fs.Currency,
		&fs.DueDate, &fs.Description, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

func GetAllFeeStructures(db *sql.DB) ([]*models.FeeStructure, error) {
	query := `SELECT id, program, session, semester, total_amount, currency, due_date,
			  COALESCE(description, ''), is_active, created_at, updated_at
			  FROM fee_structures WHERE deleted_at IS NULL
			  ORDER BY session DESC, program, semester`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	structures := []*models.FeeStructure{}
	for rows.Next() {
		fs := &models.FeeStructure{}
		err := rows.Scan(
			&fs.ID, &fs.Program, &fs.Session, &fs.Semester, &fs.TotalAmount, &fs.Currency,
			&fs.DueDate, &fs.Description, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		structures = append(structures, fs)
	}
	return structures, nil
}

func UpdateFeeStructure(db *sql.DB, fs *models.FeeStructure) error {
	query := `UPDATE fee_structures
			  SET total_amount = $1, due_date = $2, description = NULLIF($3, ''), is_active = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL
			  RETURNING updated_at`
	return db.QueryRow(query, fs.TotalAmount, fs.DueDate, fs.Description, fs.IsActive, fs.ID).
		Scan(&fs.UpdatedAt)
}

// CountPaymentsForStructure reports how many fee payments reference the
// structure; a non-zero count forces soft deactivation instead of deletion.
func CountPaymentsForStructure(db *sql.DB, structureID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM fee_payments WHERE fee_structure_id = $1`, structureID).
		Scan(&count)
	return count, err
}

func DeactivateFeeStructure(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE fee_structures SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func HardDeleteFeeStructure(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM fee_structures WHERE id = $1`, id)
	return err
}
