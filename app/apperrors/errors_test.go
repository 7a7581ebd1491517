package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ValidationError{Message: "bad"}, fiber.StatusBadRequest},
		{"not found", &NotFoundError{Entity: "Salary"}, fiber.StatusNotFound},
		{"unauthorized", &UnauthorizedError{Message: "no token"}, fiber.StatusUnauthorized},
		{"forbidden", &ForbiddenError{Message: "nope"}, fiber.StatusForbidden},
		{"conflict", &ConflictError{Message: "dup"}, fiber.StatusConflict},
		{"locked", &LockedError{Entity: "Expense"}, fiber.StatusLocked},
		{"immutable", &ImmutableRecordError{Entity: "audit log"}, fiber.StatusInternalServerError},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
		{"wrapped locked", fmt.Errorf("save failed: %w", &LockedError{Entity: "Fee payment"}), fiber.StatusLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "uq_salaries_employee_month"}

	assert.True(t, IsUniqueViolation(dup, "uq_salaries_employee_month"))
	assert.True(t, IsUniqueViolation(dup, ""), "empty constraint matches any unique violation")
	assert.False(t, IsUniqueViolation(dup, "uq_fee_payments_student_structure"))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))

	wrapped := fmt.Errorf("insert: %w", dup)
	assert.True(t, IsUniqueViolation(wrapped, "uq_salaries_employee_month"))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Salary not found", (&NotFoundError{Entity: "Salary"}).Error())
	assert.Equal(t, "Expense is locked for the accounting period", (&LockedError{Entity: "Expense"}).Error())
	assert.Equal(t, "audit log records are immutable", (&ImmutableRecordError{Entity: "audit log"}).Error())
}
