package dto

import (
	"time"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

// RecordSalaryPaymentRequest records one month's salary payment for a teacher
type RecordSalaryPaymentRequest struct {
	TeacherID     int64        `json:"teacherId" binding:"required" example:"1"`
	Month         string       `json:"month" binding:"required,month" example:"January"`
	Amount        money.Amount `json:"amount" binding:"required" example:"8500"`
	PaymentMethod string       `json:"paymentMethod" binding:"required,paymentmethod" example:"Bank Transfer"`
	Status        string       `json:"status" binding:"omitempty,oneof=Paid Pending Partial" example:"Paid"`
	Notes         string       `json:"notes" example:"January salary"`
}

// UpdateSalaryPaymentRequest partially updates a salary payment; absent fields
// keep their previous value
type UpdateSalaryPaymentRequest struct {
	Month         *string       `json:"month,omitempty" binding:"omitempty,month"`
	Amount        *money.Amount `json:"amount,omitempty"`
	PaymentMethod *string       `json:"paymentMethod,omitempty" binding:"omitempty,paymentmethod"`
	Status        *string       `json:"status,omitempty" binding:"omitempty,oneof=Paid Pending Partial"`
	Notes         *string       `json:"notes,omitempty"`
}

// SalaryPaymentRow is a flattened report row: one payment joined with its
// owner's identifying fields
type SalaryPaymentRow struct {
	ID            int64                `json:"id"`
	TeacherID     int64                `json:"teacherId"`
	TeacherName   string               `json:"teacherName"`
	Subject       string               `json:"subject"`
	BaseSalary    money.Amount         `json:"baseSalary"`
	Month         string               `json:"month"`
	Amount        money.Amount         `json:"amount"`
	PaymentDate   time.Time            `json:"paymentDate"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	Notes         string               `json:"notes"`
	Status        models.SalaryStatus  `json:"status"`
}

// SalaryAnalytics summarizes the flattened rows of the current page
type SalaryAnalytics struct {
	TotalSalariesPaid    money.Amount `json:"totalSalariesPaid"`
	CurrentMonthSalaries money.Amount `json:"currentMonthSalaries"`
	CurrentYearSalaries  money.Amount `json:"currentYearSalaries"`
}

// SalaryListResponse is the paginated salary payment report
type SalaryListResponse struct {
	Payments   []SalaryPaymentRow `json:"payments"`
	Analytics  SalaryAnalytics    `json:"analytics"`
	Pagination PaginationInfo     `json:"pagination"`
}

// TeacherSalaryHistoryResponse is one teacher's payment history with a short
// profile header
type TeacherSalaryHistoryResponse struct {
	Teacher  TeacherSummary          `json:"teacher"`
	Payments []*models.SalaryPayment `json:"payments"`
}

// TeacherSummary is the profile header of a salary history response
type TeacherSummary struct {
	Name       string       `json:"name"`
	Subject    string       `json:"subject"`
	BaseSalary money.Amount `json:"baseSalary"`
}
