package expenses

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

func GetExpensesAPI(c *fiber.Ctx) error {
	expenses, err := GetAllExpenses(config.GetDB())
	if err != nil {
		return err
	}
	return c.JSON(expenses)
}

func GetCategoriesAPI(c *fiber.Ctx) error {
	categories, err := GetAllCategories(config.GetDB())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

type ExpenseRequest struct {
	CategoryID string            `json:"category_id" validate:"required,uuid"`
	Title      string            `json:"title" validate:"required"`
	Amount     int64             `json:"amount" validate:"required,gt=0"`
	Currency   string            `json:"currency"`
	PaidOn     models.CustomTime `json:"paid_on" validate:"required"`
	Notes      string            `json:"notes"`
}

func CreateExpenseAPI(c *fiber.Ctx) error {
	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}
	if req.PaidOn.IsZero() {
		return &apperrors.ValidationError{Message: "paid_on is required"}
	}

	e := &models.Expense{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Amount:     req.Amount,
		Currency:   req.Currency,
		PaidOn:     req.PaidOn,
		Notes:      req.Notes,
	}

	db := config.GetDB()
	if err := CreateExpense(db, e); err != nil {
		return err
	}

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditCreate, "Expense", e.ID, user.ID, models.ChangeList{
		{Field: "amount", Old: nil, New: e.Amount},
		{Field: "title", Old: nil, New: e.Title},
	}, "", c.IP())

	return c.Status(fiber.StatusCreated).JSON(e)
}

func UpdateExpenseAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	db := config.GetDB()
	existing, err := GetExpenseByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Expense"}
		}
		return err
	}
	if existing.IsLocked {
		return &apperrors.LockedError{Entity: "Expense"}
	}

	e := &models.Expense{
		ID:         id,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Amount:     req.Amount,
		PaidOn:     req.PaidOn,
		Notes:      req.Notes,
	}
	if err := UpdateExpense(db, e); err != nil {
		if err == sql.ErrNoRows {
			// Locked between the read and the write.
			return &apperrors.LockedError{Entity: "Expense"}
		}
		return err
	}

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditUpdate, "Expense", id, user.ID, models.ChangeList{
		{Field: "amount", Old: existing.Amount, New: e.Amount},
		{Field: "title", Old: existing.Title, New: e.Title},
	}, "", c.IP())

	return c.JSON(e)
}

func DeleteExpenseAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	db := config.GetDB()
	existing, err := GetExpenseByID(db, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Expense"}
		}
		return err
	}
	if existing.IsLocked {
		return &apperrors.LockedError{Entity: "Expense"}
	}

	if err := DeleteExpense(db, id); err != nil {
		if err == sql.ErrNoRows {
			// Locked (or already deleted) between our read and the write.
			return &apperrors.LockedError{Entity: "Expense"}
		}
		return err
	}

	user := auth.CurrentUser(c)
	database.AppendAudit(db, models.AuditSoftDelete, "Expense", id, user.ID, nil, "", c.IP())

	return c.SendStatus(fiber.StatusNoContent)
}

func CreateCategoryAPI(c *fiber.Ctx) error {
	var cat models.Category
	if err := c.BodyParser(&cat); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if cat.Name == "" {
		return &apperrors.ValidationError{Message: "name is required"}
	}

	if err := CreateCategory(config.GetDB(), &cat); err != nil {
		if apperrors.IsUniqueViolation(err, "") {
			return &apperrors.ConflictError{Message: "Category already exists"}
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cat)
}

func UpdateCategoryAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	var cat models.Category
	if err := c.BodyParser(&cat); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}

	cat.ID = id
	if err := UpdateCategory(config.GetDB(), &cat); err != nil {
		if err == sql.ErrNoRows {
			return &apperrors.NotFoundError{Entity: "Category"}
		}
		return err
	}

	return c.JSON(cat)
}

func DeleteCategoryAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := DeleteCategory(config.GetDB(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
