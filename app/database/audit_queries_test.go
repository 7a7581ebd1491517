package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"school-ledger/app/apperrors"
	"school-ledger/app/models"
)

func TestInsertAuditLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO audit_logs`).
		WithArgs(models.AuditLock, "PeriodLock", "2024-06-30", "admin-1", sqlmock.AnyArg(), "month end close", "10.0.0.1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("log-1", time.Now()))

	entry := &models.AuditLog{
		Action:      models.AuditLock,
		EntityType:  "PeriodLock",
		EntityID:    "2024-06-30",
		PerformedBy: "admin-1",
		Changes:     models.ChangeList{{Field: "cutoff_date", Old: nil, New: "2024-06-30"}},
		Reason:      "month end close",
		IPAddress:   "10.0.0.1",
	}
	assert.NoError(t, InsertAuditLog(db, entry))
	assert.Equal(t, "log-1", entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAuditLogRejectsUnknownAction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	entry := &models.AuditLog{
		Action:      models.AuditAction("TRUNCATE"),
		EntityType:  "Expense",
		EntityID:    "exp-1",
		PerformedBy: "admin-1",
	}

	var verr *apperrors.ValidationError
	assert.ErrorAs(t, InsertAuditLog(db, entry), &verr)

	// The insert never reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogMutationAlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	var immutable *apperrors.ImmutableRecordError
	assert.ErrorAs(t, UpdateAuditLog(db, "log-1"), &immutable)
	assert.ErrorAs(t, DeleteAuditLog(db, "log-1"), &immutable)

	// Neither call reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuditLogsCapsPageSize(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "action", "entity_type", "entity_id", "performed_by", "changes", "reason", "ip_address", "created_at"}

	// A requested limit above the cap is clamped to MaxAuditPageSize.
	mock.ExpectQuery(`FROM audit_logs`).
		WithArgs("", "", "", "", MaxAuditPageSize).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = ListAuditLogs(db, AuditFilter{Limit: 5000})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAuditLogsFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "action", "entity_type", "entity_id", "performed_by", "changes", "reason", "ip_address", "created_at"}
	rows := sqlmock.NewRows(columns).AddRow(
		"log-1", "UPDATE", "FeePayment", "fp-1", "admin-1",
		[]byte(`[{"field":"amount_paid","old":0,"new":4000}]`), "", "", time.Now(),
	)

	mock.ExpectQuery(`FROM audit_logs`).
		WithArgs("FeePayment", "fp-1", "UPDATE", "", 20).
		WillReturnRows(rows)

	entries, err := ListAuditLogs(db, AuditFilter{EntityType: "FeePayment", EntityID: "fp-1", Action: "UPDATE", Limit: 20})
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, models.AuditUpdate, entries[0].Action)
	assert.Len(t, entries[0].Changes, 1)
	assert.Equal(t, "amount_paid", entries[0].Changes[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}
