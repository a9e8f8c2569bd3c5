package models

import (
	"math"
	"time"
)

// PaymentStatus is derived from the paid and total amounts.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPartial PaymentStatus = "Partial"
	PaymentUnpaid  PaymentStatus = "Unpaid"
)

// Fee is the single fee account of a student.
type Fee struct {
	ID              int64         `db:"fee_id" json:"fee_id"`
	StudentID       int64         `db:"student_id" json:"student_id"`
	TotalAmount     float64       `db:"total_amount" json:"total_amount"`
	PaidAmount      float64       `db:"paid_amount" json:"paid_amount"`
	DueAmount       float64       `db:"due_amount" json:"due_amount"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`
	LastPaymentDate *time.Time    `db:"last_payment_date" json:"last_payment_date,omitempty"`
}

// DerivePaymentStatus computes the status from the amounts. A fully covered
// account is Paid even when both amounts are zero.
func DerivePaymentStatus(total, paid float64) PaymentStatus {
	switch {
	case dueAmount(total, paid) == 0:
		return PaymentPaid
	case paid == 0:
		return PaymentUnpaid
	default:
		return PaymentPartial
	}
}

// ApplyAmounts sets total and paid and recomputes due and status.
func (f *Fee) ApplyAmounts(total, paid float64) {
	f.TotalAmount = total
	f.PaidAmount = paid
	f.DueAmount = dueAmount(total, paid)
	f.PaymentStatus = DerivePaymentStatus(total, paid)
}

func dueAmount(total, paid float64) float64 {
	return math.Round((total-paid)*100) / 100
}
