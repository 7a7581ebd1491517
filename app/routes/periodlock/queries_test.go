package periodlock

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLockExpensesBulkUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := mustDate("2024-06-30")
	now := time.Now()

	mock.ExpectExec(`UPDATE expenses`).
		WithArgs("admin-1", now, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 5))

	locked, err := LockExpenses(db, cutoff, "admin-1", now)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), locked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockSalariesBulkUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := mustDate("2024-06-30")
	now := time.Now()

	mock.ExpectExec(`UPDATE salaries`).
		WithArgs("admin-1", now, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	locked, err := LockSalaries(db, cutoff, "admin-1", now)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), locked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockFeePaymentsCoarseCutoffFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := mustDate("2024-06-30")
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "transactions"}).
		// Qualifies: one transaction predates the cutoff even though a later
		// one exists, so the whole record is locked.
		AddRow("fp-1", []byte(`[{"amount":4000,"paid_on":"2024-01-10","mode":"cash"},{"amount":6000,"paid_on":"2024-09-01","mode":"cash"}]`)).
		// All transactions after the cutoff: stays unlocked.
		AddRow("fp-2", []byte(`[{"amount":4000,"paid_on":"2024-07-01","mode":"cash"}]`)).
		// No transactions at all: stays unlocked.
		AddRow("fp-3", []byte(`[]`))

	mock.ExpectQuery(`SELECT id, transactions FROM fee_payments`).WillReturnRows(rows)

	mock.ExpectExec(`UPDATE fee_payments`).
		WithArgs("admin-1", now, "fp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	locked, failed, err := LockFeePayments(db, cutoff, "admin-1", now)
	assert.NoError(t, err)
	assert.Equal(t, 1, locked)
	assert.Empty(t, failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockFeePaymentsContinuesPastFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := mustDate("2024-06-30")
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "transactions"}).
		AddRow("fp-1", []byte(`[{"amount":1000,"paid_on":"2024-01-10","mode":"cash"}]`)).
		AddRow("fp-2", []byte(`[{"amount":2000,"paid_on":"2024-02-10","mode":"cash"}]`)).
		AddRow("fp-3", []byte(`[{"amount":3000,"paid_on":"2024-03-10","mode":"cash"}]`))

	mock.ExpectQuery(`SELECT id, transactions FROM fee_payments`).WillReturnRows(rows)

	mock.ExpectExec(`UPDATE fee_payments`).
		WithArgs("admin-1", now, "fp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The middle save fails; the loop keeps going and reports the id.
	mock.ExpectExec(`UPDATE fee_payments`).
		WithArgs("admin-1", now, "fp-2").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectExec(`UPDATE fee_payments`).
		WithArgs("admin-1", now, "fp-3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	locked, failed, err := LockFeePayments(db, cutoff, "admin-1", now)
	assert.NoError(t, err)
	assert.Equal(t, 2, locked)
	assert.Equal(t, []string{"fp-2"}, failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
