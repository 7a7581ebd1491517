package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"school-ledger/app/apperrors"
)

type feeStructureInput struct {
	Name        string `validate:"required"`
	Program     string `validate:"required"`
	TotalAmount int64  `validate:"gt=0"`
	Email       string `validate:"omitempty,email"`
}

func TestStructValid(t *testing.T) {
	in := feeStructureInput{Name: "Term 1 Fees", Program: "Primary", TotalAmount: 500000}
	assert.NoError(t, Struct(&in))
}

func TestStructCollectsFieldMessages(t *testing.T) {
	in := feeStructureInput{TotalAmount: 0, Email: "not-an-email"}
	err := Struct(&in)
	assert.Error(t, err)

	var verr *apperrors.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "Name is required")
	assert.Contains(t, verr.Message, "Program is required")
	assert.Contains(t, verr.Message, "TotalAmount must be greater than 0")
	assert.Contains(t, verr.Message, "Email must be a valid email")
}

func TestStructMapsToBadRequest(t *testing.T) {
	err := Struct(&feeStructureInput{})
	assert.Equal(t, 400, apperrors.StatusCode(err))
}
