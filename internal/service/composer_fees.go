package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

const adminListLimit = 20

func (c *Composer) composeFees(ctx context.Context, req ComposeRequest) (models.Reply, error) {
	intent := models.IntentFeeQuery
	if req.Role.IsAdmin() {
		filters, err := c.adminFilters(ctx, req)
		if err != nil {
			return models.Reply{}, err
		}
		if filters.TargetStudentID != nil {
			return c.targetFees(ctx, *filters.TargetStudentID)
		}
		return c.feeOverview(ctx, filters.ClassFilter)
	}

	studentID, ok, err := c.resolveStudent(ctx, req)
	if err != nil {
		return models.Reply{}, err
	}
	if !ok {
		return textReply(intent, "Please log in as a student to view fee details."), nil
	}
	fee, err := c.fees.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return textReply(intent, "No fee details found for your account."), nil
		}
		return models.Reply{}, err
	}
	fee.ApplyAmounts(fee.TotalAmount, fee.PaidAmount)
	return dataReply(intent, renderFee(fee, ""), fee), nil
}

func (c *Composer) targetFees(ctx context.Context, studentID int64) (models.Reply, error) {
	intent := models.IntentFeeQuery
	name, err := c.studentName(ctx, studentID)
	if err != nil {
		return models.Reply{}, err
	}
	fee, err := c.fees.GetByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return textReply(intent, fmt.Sprintf("No fee details found for %s.", name)), nil
		}
		return models.Reply{}, err
	}
	fee.ApplyAmounts(fee.TotalAmount, fee.PaidAmount)
	return dataReply(intent, renderFee(fee, name), fee), nil
}

func (c *Composer) feeOverview(ctx context.Context, className string) (models.Reply, error) {
	rows, err := c.fees.Overview(ctx, className)
	if err != nil {
		return models.Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💳 **Students Fee Status%s**\n%s\n\n", classSuffix(className), rule60)
	fmt.Fprintf(&b, "Total Students: %d\n\n", len(rows))
	for _, row := range firstN(rows, adminListLimit) {
		if row.FeeID == nil {
			continue
		}
		var fee models.Fee
		fee.ApplyAmounts(derefFloat(row.TotalAmount), derefFloat(row.PaidAmount))
		badge := "⚠️"
		if fee.PaymentStatus == models.PaymentPaid {
			badge = "✅"
		}
		fmt.Fprintf(&b, "📌 **%s** (Roll: %s)\n", row.Name, row.RollNo)
		fmt.Fprintf(&b, "   └─ Paid: ₹%s / Total: ₹%s  |  Status: %s %s\n\n", formatAmount(fee.PaidAmount, 0), formatAmount(fee.TotalAmount, 0), badge, fee.PaymentStatus)
	}
	return textReply(models.IntentFeeQuery, b.String()), nil
}

// renderFee formats one fee account. owner is appended to the title when set.
func renderFee(fee *models.Fee, owner string) string {
	title := "💳 **Fee Payment Details**"
	if owner != "" {
		title = fmt.Sprintf("💳 **Fee Payment Details for %s**", owner)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", title, rule50)
	fmt.Fprintf(&b, "\n📌 **Total Fee:**      ₹%s\n", formatAmount(fee.TotalAmount, 2))
	fmt.Fprintf(&b, "✅ **Paid Amount:**   ₹%s\n", formatAmount(fee.PaidAmount, 2))
	fmt.Fprintf(&b, "⏳ **Due Amount:**    ₹%s\n", formatAmount(fee.DueAmount, 2))
	fmt.Fprintf(&b, "\n📋 **Status:**         %s", fee.PaymentStatus)
	if fee.LastPaymentDate != nil {
		fmt.Fprintf(&b, "\n📅 **Last Payment:**   %s", fee.LastPaymentDate.Format(dateLayout))
	}
	fmt.Fprintf(&b, "\n%s", rule50)
	return b.String()
}

func classSuffix(className string) string {
	if className == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", className)
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
