package feestructures

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"school-ledger/app/models"
)

func TestProvisionFeePaymentsCreatesOnePerStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	fs := &models.FeeStructure{ID: "structure-1"}
	students := []string{"student-1", "student-2", "student-3"}

	for _, id := range students {
		mock.ExpectExec(`INSERT INTO fee_payments`).
			WithArgs(id, "structure-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	created, skipped := ProvisionFeePayments(db, fs, students)
	assert.Equal(t, 3, created)
	assert.Equal(t, 0, skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionFeePaymentsSkipsDuplicatesWithoutAborting(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	fs := &models.FeeStructure{ID: "structure-1"}

	mock.ExpectExec(`INSERT INTO fee_payments`).
		WithArgs("student-1", "structure-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// student-2 was already provisioned on a previous run.
	mock.ExpectExec(`INSERT INTO fee_payments`).
		WithArgs("student-2", "structure-1").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_fee_payments_student_structure"})
	mock.ExpectExec(`INSERT INTO fee_payments`).
		WithArgs("student-3", "structure-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, skipped := ProvisionFeePayments(db, fs, []string{"student-1", "student-2", "student-3"})
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, skipped)
	// The third insert ran even though the second failed.
	assert.NoError(t, mock.ExpectationsWereMet())
}
