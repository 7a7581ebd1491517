package salaries

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"school-ledger/app/apperrors"
	"school-ledger/app/models"
)

func TestCreateSalaryDuplicateMonthConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO salaries`).
		WithArgs("emp-1", "2024-06", int64(900000), int64(50000), int64(850000), "").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_salaries_employee_month"})

	s := &models.Salary{EmployeeID: "emp-1", Month: "2024-06", BaseAmount: 900000, Deductions: 50000}
	err = CreateSalary(db, s)

	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSalaryPaidCreatesExpenseAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	paidOn := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE salaries`).
		WithArgs(paidOn, "sal-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectQuery(`SELECT id FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cat-salaries"))
	mock.ExpectExec(`INSERT INTO expenses`).
		WithArgs("cat-salaries", "Salary Payout: Jane Doe", int64(850000), paidOn, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := &models.Salary{ID: "sal-1", Month: "2024-06", NetAmount: 850000, Status: models.SalaryPending}
	assert.NoError(t, MarkSalaryPaid(db, s, "Jane Doe", paidOn))
	assert.Equal(t, models.SalaryPaid, s.Status)
	assert.NotNil(t, s.PaidOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSalaryPaidRollsBackOnExpenseFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	paidOn := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE salaries`).
		WithArgs(paidOn, "sal-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectQuery(`SELECT id FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cat-salaries"))
	mock.ExpectExec(`INSERT INTO expenses`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	s := &models.Salary{ID: "sal-1", Month: "2024-06", NetAmount: 850000, Status: models.SalaryPending}
	assert.Error(t, MarkSalaryPaid(db, s, "Jane Doe", paidOn))

	// The salary flip never committed and the struct stays pending.
	assert.Equal(t, models.SalaryPending, s.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSalaryLockedRecordReturnsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	// The guarded update matches nothing when the record is locked.
	mock.ExpectQuery(`UPDATE salaries`).
		WithArgs(int64(900000), int64(0), int64(900000), "", "sal-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	s := &models.Salary{ID: "sal-1", BaseAmount: 900000}
	assert.ErrorIs(t, UpdateSalary(db, s), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSalaryLockedRecordReturnsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE salaries SET deleted_at`).
		WithArgs("sal-1").
		WillReturnRows(sqlmock.NewRows([]string{"deleted_at"}))

	assert.ErrorIs(t, DeleteSalary(db, "sal-1"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
