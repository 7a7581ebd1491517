package salaries

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
	"school-ledger/app/validation"
)

type SalaryRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Month      string `json:"month" validate:"required,len=7"`
	BaseAmount int64  `json:"base_amount" validate:"required,gt=0"`
	Deductions int64  `json:"deductions" validate:"gte=0"`
	Notes      string `json:"notes"`
}

func CreateSalaryAPI(c *fiber.Ctx) error {
	var req SalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	s := &models.Salary{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		BaseAmount: req.BaseAmount,
		Deductions: req.Deductions,
		Notes:      req.Notes,
	}
	if !s.ValidDeductions() {
		return &apperrors.ValidationError{Message: "deductions cannot exceed base_amount"}
	}

	db := config.GetDB()
	if err := CreateSalary(db, s); err != nil {
		return err
	}

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditCreate, "Salary", s.ID, user.ID, models.ChangeList{
		{Field: "base_amount", Old: nil, New: s.BaseAmount},
		{Field: "net_amount", Old: nil, New: s.NetAmount},
		{Field: "month", Old: nil, New: s.Month},
	}, "", c.IP())

	return c.Status(fiber.StatusCreated).JSON(s)
}

func ListSalariesAPI(c *fiber.Ctx) error {
	salaries, err := GetAllSalaries(config.GetDB(), c.Query("employee"), c.Query("month"))
	if err != nil {
		return err
	}
	return c.JSON(salaries)
}

func UpdateSalaryAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req SalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if req.BaseAmount <= 0 {
		return &apperrors.ValidationError{Message: "base_amount must be greater than 0"}
	}

	db := config.GetDB()
	existing, err := GetSalaryByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Salary"}
		}
		return err
	}
	if existing.IsLocked {
		return &apperrors.LockedError{Entity: "Salary"}
	}

	s := &models.Salary{
		ID:         id,
		EmployeeID: existing.EmployeeID,
		Month:      existing.Month,
		BaseAmount: req.BaseAmount,
		Deductions: req.Deductions,
		Notes:      req.Notes,
	}
	if !s.ValidDeductions() {
		return &apperrors.ValidationError{Message: "deductions cannot exceed base_amount"}
	}

	if err := UpdateSalary(db, s); err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.LockedError{Entity: "Salary"}
		}
		return err
	}

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditUpdate, "Salary", id, user.ID, models.ChangeList{
		{Field: "base_amount", Old: existing.BaseAmount, New: s.BaseAmount},
		{Field: "deductions", Old: existing.Deductions, New: s.Deductions},
		{Field: "net_amount", Old: existing.NetAmount, New: s.NetAmount},
	}, "", c.IP())

	return c.JSON(s)
}

type MarkPaidRequest struct {
	PaidOn models.CustomTime `json:"paid_on"`
}

func MarkSalaryPaidAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req MarkPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	paidOn := req.PaidOn.Time
	if paidOn.IsZero() {
		paidOn = time.Now()
	}

	db := config.GetDB()
	s, err := GetSalaryByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Salary"}
		}
		return err
	}
	if s.IsLocked {
		return &apperrors.LockedError{Entity: "Salary"}
	}
	if s.Status == models.SalaryPaid {
		return &apperrors.ConflictError{Message: "Salary is already marked paid"}
	}

	employee, err := database.GetUserByID(db, s.EmployeeID)
	if err != nil {
		return err
	}

	if err := MarkSalaryPaid(db, s, employee.FirstName+" "+employee.LastName, paidOn); err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.ConflictError{Message: "Salary is no longer pending"}
		}
		return err
	}

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditUpdate, "Salary", s.ID, user.ID, models.ChangeList{
		{Field: "status", Old: models.SalaryPending, New: models.SalaryPaid},
		{Field: "paid_on", Old: nil, New: s.PaidOn},
	}, "", c.IP())

	return c.JSON(s)
}

func DeleteSalaryAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	db := config.GetDB()
	existing, err := GetSalaryByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Salary"}
		}
		return err
	}
	if existing.IsLocked {
		return &apperrors.LockedError{Entity: "Salary"}
	}

	if err := DeleteSalary(db, id); err != nil {
		if err == sql.ErrNoRows {
			// Locked (or already deleted) between our read and the write.
			return &apperrors.LockedError{Entity: "Salary"}
		}
		return err
	}

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditSoftDelete, "Salary", id, user.ID, nil, "", c.IP())

	return c.SendStatus(fiber.StatusNoContent)
}
