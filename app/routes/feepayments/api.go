package feepayments

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
	"school-ledger/app/validation"
)

type RecordPaymentRequest struct {
	Amount    int64             `json:"amount" validate:"required,gt=0"`
	PaidOn    models.CustomTime `json:"paid_on" validate:"required"`
	Mode      string            `json:"mode" validate:"required"`
	ReceiptNo string            `json:"receipt_no"`
}

// RecordPaymentAPI appends one transaction to a fee payment. This is the
// sole mutation path for balances; amount_paid and status are never edited
// directly.
func RecordPaymentAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if req.PaidOn.IsZero() {
		return &apperrors.ValidationError{Message: "paid_on is required"}
	}

	user := auth.CurrentUser(c)
	txn := models.PaymentTransaction{
		Amount:     req.Amount,
		PaidOn:     req.PaidOn,
		Mode:       req.Mode,
		ReceiptNo:  req.ReceiptNo,
		RecordedBy: user.ID,
	}
	if txn.ReceiptNo == "" {
		txn.ReceiptNo = uuid.NewString()
	}

	db := config.GetDB()
	fp, err := RecordPayment(db, id, txn)
	if err != nil {
		return err
	}

	database.AppendAudit(db, models.AuditUpdate, "FeePayment", fp.ID, user.ID, models.ChangeList{
		{Field: "amount_paid", Old: fp.AmountPaid - txn.Amount, New: fp.AmountPaid},
		{Field: "receipt_no", Old: nil, New: txn.ReceiptNo},
	}, "", c.IP())

	return c.JSON(fp)
}

func ListFeePaymentsAPI(c *fiber.Ctx) error {
	filter := PaymentFilter{
		StudentID: c.Query("student"),
		Session:   c.Query("session"),
		Status:    c.Query("status"),
	}
	payments, err := QueryFeePayments(config.GetDB(), filter)
	if err != nil {
		return err
	}
	return c.JSON(payments)
}

func GetFeePaymentAPI(c *fiber.Ctx) error {
	fp, err := GetFeePaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Fee payment"}
		}
		return err
	}
	return c.JSON(fp)
}

// MyFeesAPI returns only the caller's own payments. The student id is
// resolved server-side from the authenticated user, never taken from the
// request.
func MyFeesAPI(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	db := config.GetDB()
	studentID, err := database.GetStudentIDForUser(db, user.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Student record"}
		}
		return err
	}

	views, err := GetStudentFeeViews(db, studentID, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(views)
}
