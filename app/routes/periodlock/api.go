package periodlock

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
)

type LockPeriodRequest struct {
	CutoffDate models.CustomTime `json:"cutoff_date"`
	Reason     string            `json:"reason"`
}

// LockPeriodAPI freezes Expense, Salary and FeePayment records up to the
// cutoff date and writes one audit entry for the lock event itself. The
// route is gated by RequireRootAdmin, so nothing here runs for an
// unprivileged caller and no record is touched before the privilege check
// passes.
func LockPeriodAPI(c *fiber.Ctx) error {
	var req LockPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if req.CutoffDate.IsZero() {
		return &apperrors.ValidationError{Message: "cutoff_date is required"}
	}
	cutoff := req.CutoffDate.Time

	user := auth.CurrentUser(c)
	db := config.GetDB()
	now := time.Now()

	result := &LockResult{CutoffDate: req.CutoffDate}

	expenses, err := LockExpenses(db, cutoff, user.ID, now)
	if err != nil {
		return err
	}
	result.ExpensesLocked = expenses

	salaries, err := LockSalaries(db, cutoff, user.ID, now)
	if err != nil {
		return err
	}
	result.SalariesLocked = salaries

	feeLocked, failed, err := LockFeePayments(db, cutoff, user.ID, now)
	if err != nil {
		return err
	}
	result.FeePaymentsLocked = feeLocked
	result.FailedFeePayments = failed

	// One entry for the lock event itself, not one per locked record.
	database.AppendAudit(db, models.AuditLock, "PeriodLock", req.CutoffDate.Format("2006-01-02"), user.ID,
		models.ChangeList{{Field: "cutoff_date", Old: nil, New: req.CutoffDate}},
		req.Reason, c.IP())

	return c.JSON(result)
}
