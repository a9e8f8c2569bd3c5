package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAmountsDerivesDueAndStatus(t *testing.T) {
	cases := []struct {
		name   string
		total  float64
		paid   float64
		due    float64
		status PaymentStatus
	}{
		{"fully paid", 60000, 60000, 0, PaymentPaid},
		{"nothing paid", 60000, 0, 60000, PaymentUnpaid},
		{"partial", 96000, 54261.5, 41738.5, PaymentPartial},
		{"zero account", 0, 0, 0, PaymentPaid},
		{"cents", 100.10, 100.00, 0.10, PaymentPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fee Fee
			fee.ApplyAmounts(tc.total, tc.paid)
			assert.Equal(t, tc.due, fee.DueAmount)
			assert.Equal(t, tc.status, fee.PaymentStatus)
			assert.InDelta(t, fee.TotalAmount-fee.PaidAmount, fee.DueAmount, 0.005)
		})
	}
}

func TestAttendancePercentage(t *testing.T) {
	assert.Equal(t, 0.0, AttendancePercentage(10, 0))
	assert.Equal(t, 66.67, AttendancePercentage(2, 3))
	assert.Equal(t, 100.0, AttendancePercentage(50, 50))
}

func TestMarkPassThreshold(t *testing.T) {
	assert.True(t, Mark{ObtainedMarks: 17.5, TotalMarks: 35}.Passed())
	assert.False(t, Mark{ObtainedMarks: 12, TotalMarks: 35}.Passed())
	assert.Equal(t, 0.0, Mark{ObtainedMarks: 5}.Percentage())
}
