package students

import (
	"github.com/gofiber/fiber/v2"

	"school-ledger/app/apperrors"
	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
	"school-ledger/app/validation"
)

func GetStudentsAPI(c *fiber.Ctx) error {
	students, err := database.GetAllStudents(config.GetDB())
	if err != nil {
		return err
	}
	return c.JSON(students)
}

type CreateStudentRequest struct {
	BatchID   string  `json:"batch_id" validate:"required,uuid"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	RollNo    string  `json:"roll_no"`
	UserID    *string `json:"user_id"`
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	s := &models.Student{
		BatchID:   req.BatchID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RollNo:    req.RollNo,
		UserID:    req.UserID,
	}
	if err := database.CreateStudent(config.GetDB(), s); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func GetBatchesAPI(c *fiber.Ctx) error {
	batches, err := database.GetAllBatches(config.GetDB())
	if err != nil {
		return err
	}
	return c.JSON(batches)
}

type CreateBatchRequest struct {
	Program string `json:"program" validate:"required"`
	Session string `json:"session" validate:"required"`
}

func CreateBatchAPI(c *fiber.Ctx) error {
	var req CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return &apperrors.ValidationError{Message: "Invalid request body"}
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}

	b := &models.Batch{Program: req.Program, Session: req.Session}
	if err := database.CreateBatch(config.GetDB(), b); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}
