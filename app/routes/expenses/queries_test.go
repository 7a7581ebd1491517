package expenses

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"school-ledger/app/models"
)

func TestUpdateExpenseLockedRecordReturnsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	// The guarded update matches nothing when the record is locked.
	mock.ExpectQuery(`UPDATE expenses`).
		WithArgs("cat-1", "Projector bulbs", int64(120000), sqlmock.AnyArg(), "", "exp-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	e := &models.Expense{
		ID:         "exp-1",
		CategoryID: "cat-1",
		Title:      "Projector bulbs",
		Amount:     120000,
		PaidOn:     models.CustomTime{Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	assert.ErrorIs(t, UpdateExpense(db, e), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpenseLockedRecordReturnsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE expenses SET deleted_at`).
		WithArgs("exp-1").
		WillReturnRows(sqlmock.NewRows([]string{"deleted_at"}))

	assert.ErrorIs(t, DeleteExpense(db, "exp-1"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
