package dto

import (
	"time"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

// RecordFeePaymentRequest records one month's fee payment for a student
type RecordFeePaymentRequest struct {
	StudentID     int64        `json:"studentId" binding:"required" example:"1"`
	Month         string       `json:"month" binding:"required,month" example:"January"`
	Amount        money.Amount `json:"amount" binding:"required" example:"1500"`
	PaymentMethod string       `json:"paymentMethod" binding:"required,paymentmethod" example:"Cash"`
	Status        string       `json:"status" binding:"omitempty,oneof=Paid Partial Debt" example:"Paid"`
}

// UpdateFeePaymentRequest partially updates a fee payment; absent fields keep
// their previous value
type UpdateFeePaymentRequest struct {
	Month         *string       `json:"month,omitempty" binding:"omitempty,month"`
	Amount        *money.Amount `json:"amount,omitempty"`
	PaymentMethod *string       `json:"paymentMethod,omitempty" binding:"omitempty,paymentmethod"`
	Status        *string       `json:"status,omitempty" binding:"omitempty,oneof=Paid Partial Debt"`
}

// FeePaymentRow is a flattened report row: one payment joined with its
// owner's identifying fields
type FeePaymentRow struct {
	ID            int64                `json:"id"`
	StudentID     int64                `json:"studentId"`
	StudentName   string               `json:"studentName"`
	ClassName     string               `json:"className"`
	Month         string               `json:"month"`
	Amount        money.Amount         `json:"amount"`
	PaymentDate   time.Time            `json:"paymentDate"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	ReceiptNo     string               `json:"receiptNo"`
	Status        models.FeeStatus     `json:"status"`
}

// FeeAnalytics summarizes the flattened rows of the current page
type FeeAnalytics struct {
	TotalRevenue        money.Amount            `json:"totalRevenue"`
	CurrentMonthRevenue money.Amount            `json:"currentMonthRevenue"`
	RevenueByClass      map[string]money.Amount `json:"revenueByClass"`
}

// FeeListResponse is the paginated fee payment report
type FeeListResponse struct {
	Payments   []FeePaymentRow `json:"payments"`
	Analytics  FeeAnalytics    `json:"analytics"`
	Pagination PaginationInfo  `json:"pagination"`
}

// DebtReportRow flags one student lacking a satisfactory current-month payment
type DebtReportRow struct {
	StudentID   int64        `json:"studentId"`
	StudentName string       `json:"studentName"`
	ClassName   string       `json:"className"`
	TotalPaid   money.Amount `json:"totalPaid"`
	DebtAmount  money.Amount `json:"debtAmount"`
}

// StudentFeeHistoryResponse is one student's payment history with a short
// profile header
type StudentFeeHistoryResponse struct {
	Student  StudentSummary       `json:"student"`
	Payments []*models.FeePayment `json:"payments"`
}

// StudentSummary is the profile header of a fee history response
type StudentSummary struct {
	Name      string `json:"name"`
	StudentNo string `json:"studentNo"`
	ClassName string `json:"className"`
}

// RecordFeePaymentResponse confirms a recorded payment
type RecordFeePaymentResponse struct {
	Message   string             `json:"message" example:"Payment recorded successfully"`
	ReceiptNo string             `json:"receiptNo" example:"RCPT-1736069400000-042"`
	Payment   *models.FeePayment `json:"payment"`
}
