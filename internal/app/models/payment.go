package models

import (
	"time"

	"github.com/kerem/schoolhub/internal/pkg/money"
)

// FeePayment is one month's fee transaction owned by a student.
// (student_id, month) is unique, enforced by the fee_payments table.
type FeePayment struct {
	ID            int64         `json:"id" db:"id" example:"10"`
	StudentID     int64         `json:"studentId" db:"student_id" example:"1"`
	Month         string        `json:"month" db:"month" example:"January"`
	Amount        money.Amount  `json:"amount" db:"amount_cents" example:"1500"`
	PaymentDate   time.Time     `json:"paymentDate" db:"payment_date" example:"2025-01-05T09:30:00Z"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method" example:"Cash"`
	PaidBy        int64         `json:"paidBy" db:"paid_by" example:"1"`
	ReceiptNo     string        `json:"receiptNo" db:"receipt_no" example:"RCPT-1736069400000-042"`
	Status        FeeStatus     `json:"status" db:"status" example:"Paid"`
}

// SalaryPayment is one month's salary transaction owned by a teacher.
// (teacher_id, month) is unique, enforced by the salary_payments table.
type SalaryPayment struct {
	ID            int64         `json:"id" db:"id" example:"7"`
	TeacherID     int64         `json:"teacherId" db:"teacher_id" example:"1"`
	Month         string        `json:"month" db:"month" example:"January"`
	Amount        money.Amount  `json:"amount" db:"amount_cents" example:"8500"`
	PaymentDate   time.Time     `json:"paymentDate" db:"payment_date" example:"2025-01-28T16:00:00Z"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method" example:"Bank Transfer"`
	PaidBy        int64         `json:"paidBy" db:"paid_by" example:"1"`
	Notes         string        `json:"notes" db:"notes" example:"January salary"`
	Status        SalaryStatus  `json:"status" db:"status" example:"Paid"`
}

// ActivityEntry is one row of the append-only activity log shown on the
// dashboard.
type ActivityEntry struct {
	ID        int64     `json:"id" db:"id" example:"101"`
	Kind      string    `json:"type" db:"kind" example:"fee"`
	Message   string    `json:"message" db:"message" example:"Fee payment recorded for Amina Yusuf (January)"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-05T09:30:00Z"`
}
