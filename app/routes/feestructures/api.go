package feestructures

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
	"school-ledger/app/routes/auth"
	"school-ledger/app/validation"
)

type CreateFeeStructureRequest struct {
	Program     string            `json:"program" validate:"required"`
	Session     string            `json:"session" validate:"required"`
	Semester    int               `json:"semester" validate:"required,gt=0"`
	TotalAmount int64             `json:"total_amount" validate:"required,gt=0"`
	Currency    string            `json:"currency"`
	DueDate     models.CustomTime `json:"due_date" validate:"required"`
	Description string            `json:"description"`
}

// CreateFeeStructureAPI creates the structure, then provisions one unpaid
// fee payment per active student in the cohort. Provisioning is best-effort;
// the response reports how many records were created and skipped.
func CreateFeeStructureAPI(c *fiber.Ctx) error {
	var req CreateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if req.DueDate.IsZero() {
		return &apperrors.ValidationError{Message: "due_date is required"}
	}

	fs := &models.FeeStructure{
		Program:     req.Program,
		Session:     req.Session,
		Semester:    req.Semester,
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
		DueDate:     req.DueDate,
		Description: req.Description,
	}

	db := config.GetDB()
	if err := CreateFeeStructure(db, fs); err != nil {
		return err
	}

	studentIDs, err := database.GetActiveStudentIDsByCohort(db, fs.Program, fs.Session)
	if err != nil {
		return err
	}
	created, skipped := ProvisionFeePayments(db, fs, studentIDs)

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditCreate, "FeeStructure", fs.ID, user.ID, models.ChangeList{
		{Field: "total_amount", Old: nil, New: fs.TotalAmount},
		{Field: "due_date", Old: nil, New: fs.DueDate},
	}, "", c.IP())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"fee_structure":        fs,
		"payments_provisioned": created,
		"payments_skipped":     skipped,
	})
}

type UpdateFeeStructureRequest struct {
	TotalAmount *int64             `json:"total_amount"`
	DueDate     *models.CustomTime `json:"due_date"`
	Description *string            `json:"description"`
	IsActive    *bool              `json:"is_active"`
}

func UpdateFeeStructureAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if req.TotalAmount != nil && *req.TotalAmount <= 0 {
		return &apperrors.ValidationError{Message: "total_amount must be greater than 0"}
	}

	db := config.GetDB()
	fs, err := GetFeeStructureByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Fee structure"}
		}
		return err
	}

	changes := models.ChangeList{}
	if req.TotalAmount != nil && *req.TotalAmount != fs.TotalAmount {
		changes = append(changes, models.FieldChange{Field: "total_amount", Old: fs.TotalAmount, New: *req.TotalAmount})
		fs.TotalAmount = *req.TotalAmount
	}
	if req.DueDate != nil && !req.DueDate.Equal(fs.DueDate.Time) {
		changes = append(changes, models.FieldChange{Field: "due_date", Old: fs.DueDate, New: *req.DueDate})
		fs.DueDate = *req.DueDate
	}
	if req.Description != nil && *req.Description != fs.Description {
		changes = append(changes, models.FieldChange{Field: "description", Old: fs.Description, New: *req.Description})
		fs.Description = *req.Description
	}
	if req.IsActive != nil && *req.IsActive != fs.IsActive {
		changes = append(changes, models.FieldChange{Field: "is_active", Old: fs.IsActive, New: *req.IsActive})
		fs.IsActive = *req.IsActive
	}

	if len(changes) > 0 {
		if err := UpdateFeeStructure(db, fs); err != nil {
			return err
		}
		user := auth.CurrentUser(c)
		database.AppendAudit(db, models.AuditUpdate, "FeeStructure", fs.ID, user.ID, changes, "", c.IP())
	}

	return c.JSON(fs)
}

// DeleteFeeStructureAPI soft-deactivates a structure that payments already
// reference, preserving referential integrity for historical records;
// otherwise it hard-deletes.
func DeleteFeeStructureAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	db := config.GetDB()
	fs, err := GetFeeStructureByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Fee structure"}
		}
		return err
	}

	count, err := CountPaymentsForStructure(db, fs.ID)
	if err != nil {
		return err
	}

	user := auth.CurrentUser(c)
	if count > 0 {
		if err := DeactivateFeeStructure(db, fs.ID); err != nil {
			return err
		}
		database.AppendAudit(db, models.AuditSoftDelete, "FeeStructure", fs.ID, user.ID, models.ChangeList{
			{Field: "is_active", Old: true, New: false},
		}, "", c.IP())
		return c.JSON(fiber.Map{"message": "Fee structure deactivated; payments reference it", "deactivated": true})
	}

	if err := HardDeleteFeeStructure(db, fs.ID); err != nil {
		return err
	}
	database.AppendAudit(db, models.AuditDelete, "FeeStructure", fs.ID, user.ID, nil, "", c.IP())
	return c.SendStatus(fiber.StatusNoContent)
}

func ListFeeStructuresAPI(c *fiber.Ctx) error {
	structures, err := GetAllFeeStructures(config.GetDB())
	if err != nil {
		return err
	}
	return c.JSON(structures)
}
