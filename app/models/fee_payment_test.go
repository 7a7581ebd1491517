package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) CustomTime {
	t, _ := time.Parse("2006-01-02", s)
	return CustomTime{Time: t}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountPaid int64
		total      int64
		want       PaymentStatus
	}{
		{"nothing paid", 0, 10000, PaymentUnpaid},
		{"partially paid", 4000, 10000, PaymentPartial},
		{"exactly paid", 10000, 10000, PaymentPaid},
		{"overpaid", 12000, 10000, PaymentPaid},
		{"negative treated as unpaid", -1, 10000, PaymentUnpaid},
		{"one unit paid", 1, 10000, PaymentPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.amountPaid, tt.total))
		})
	}
}

func TestTransactionListTotal(t *testing.T) {
	tl := TransactionList{
		{Amount: 4000, PaidOn: date("2024-01-10"), Mode: "cash"},
		{Amount: 6000, PaidOn: date("2024-02-10"), Mode: "bank"},
	}
	assert.Equal(t, int64(10000), tl.Total())
	assert.Equal(t, int64(0), TransactionList{}.Total())
}

func TestTransactionListAnyOnOrBefore(t *testing.T) {
	cutoff, _ := time.Parse("2006-01-02", "2024-06-30")

	tl := TransactionList{
		{Amount: 4000, PaidOn: date("2024-01-10")},
		{Amount: 6000, PaidOn: date("2024-09-10")},
	}
	assert.True(t, tl.AnyOnOrBefore(cutoff), "one transaction predates the cutoff")

	late := TransactionList{{Amount: 6000, PaidOn: date("2024-07-01")}}
	assert.False(t, late.AnyOnOrBefore(cutoff))

	onCutoff := TransactionList{{Amount: 6000, PaidOn: date("2024-06-30")}}
	assert.True(t, onCutoff.AnyOnOrBefore(cutoff), "cutoff day itself is included")

	assert.False(t, TransactionList{}.AnyOnOrBefore(cutoff))
}

func TestTransactionListScan(t *testing.T) {
	var tl TransactionList
	err := tl.Scan([]byte(`[{"amount":4000,"paid_on":"2024-01-10","mode":"cash","receipt_no":"R-1"}]`))
	assert.NoError(t, err)
	assert.Len(t, tl, 1)
	assert.Equal(t, int64(4000), tl[0].Amount)
	assert.Equal(t, "R-1", tl[0].ReceiptNo)

	var empty TransactionList
	assert.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestFeePaymentRemaining(t *testing.T) {
	fp := &FeePayment{AmountPaid: 4000}
	assert.Equal(t, int64(6000), fp.Remaining(10000))

	paid := &FeePayment{AmountPaid: 12000}
	assert.Equal(t, int64(0), paid.Remaining(10000), "overpayment never goes negative")
}

func TestFeePaymentIsOverdue(t *testing.T) {
	due, _ := time.Parse("2006-01-02", "2024-06-30")
	after := due.AddDate(0, 1, 0)
	before := due.AddDate(0, -1, 0)

	unpaid := &FeePayment{Status: PaymentUnpaid}
	assert.True(t, unpaid.IsOverdue(due, after))
	assert.False(t, unpaid.IsOverdue(due, before))

	paid := &FeePayment{Status: PaymentPaid}
	assert.False(t, paid.IsOverdue(due, after), "fully paid is never overdue")
}
