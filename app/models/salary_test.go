package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalaryComputeNet(t *testing.T) {
	s := &Salary{BaseAmount: 500000, Deductions: 75000}
	s.ComputeNet()
	assert.Equal(t, int64(425000), s.NetAmount)

	noDeductions := &Salary{BaseAmount: 500000}
	noDeductions.ComputeNet()
	assert.Equal(t, int64(500000), noDeductions.NetAmount)
}

func TestSalaryValidDeductions(t *testing.T) {
	assert.True(t, (&Salary{BaseAmount: 100, Deductions: 0}).ValidDeductions())
	assert.True(t, (&Salary{BaseAmount: 100, Deductions: 100}).ValidDeductions())
	assert.False(t, (&Salary{BaseAmount: 100, Deductions: 101}).ValidDeductions())
	assert.False(t, (&Salary{BaseAmount: 100, Deductions: -1}).ValidDeductions())
}
