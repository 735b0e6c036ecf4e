package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/app/repositories"
	"github.com/kerem/schoolhub/internal/config"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

// LedgerListParams narrows and orders a payment report
type LedgerListParams struct {
	Search    string
	ClassID   *int64
	Month     string // keep only payments labelled with this month
	Method    string // keep only payments made by this method
	SortField string // "name", "paymentDate" or "amount"
	SortOrder string // "asc" or "desc"
	Page      int
	Size      int
}

// FeeStore persists fee payments
type FeeStore interface {
	Insert(ctx context.Context, payment *models.FeePayment) error
	GetByID(ctx context.Context, id int64) (*models.FeePayment, error)
	Update(ctx context.Context, payment *models.FeePayment) error
	Delete(ctx context.Context, id int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.FeePayment, error)
	ListByStudents(ctx context.Context, studentIDs []int64) ([]*models.FeePayment, error)
	SumTotal(ctx context.Context) (money.Amount, error)
	SumByMonth(ctx context.Context, month string) (money.Amount, error)
	RevenueByClass(ctx context.Context) (map[string]money.Amount, error)
	DebtStandings(ctx context.Context, currentMonth string) ([]repositories.DebtRow, error)
}

// FeeService handles the fee payment ledger
type FeeService struct {
	fees        FeeStore
	students    StudentStore
	activity    *ActivityService
	receipts    ReceiptGenerator
	filterScope string
	now         func() time.Time
}

// NewFeeService creates a new fee service. filterScope decides whether report
// analytics cover the current page or the whole ledger.
func NewFeeService(fees FeeStore, students StudentStore, activity *ActivityService, receipts ReceiptGenerator, filterScope string, now func() time.Time) *FeeService {
	if now == nil {
		now = time.Now
	}
	if receipts == nil {
		receipts = NewReceiptGenerator(now)
	}
	return &FeeService{
		fees:        fees,
		students:    students,
		activity:    activity,
		receipts:    receipts,
		filterScope: filterScope,
		now:         now,
	}
}

// RecordPayment records one month's fee payment for a student. At most one
// payment per student per month; recording a second one fails.
func (s *FeeService) RecordPayment(ctx context.Context, adminID int64, req *dto.RecordFeePaymentRequest) (*dto.RecordFeePaymentResponse, error) {
	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	status := models.FeeStatus(req.Status)
	if req.Status == "" {
		status = models.FeePaid
	}

	payment := &models.FeePayment{
		StudentID:     student.ID,
		Month:         req.Month,
		Amount:        req.Amount,
		PaymentDate:   s.now(),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		PaidBy:        adminID,
		Status:        status,
	}
	if err := validateFeePayment(payment); err != nil {
		return nil, err
	}

	if err := s.insertWithReceipt(ctx, payment); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "fee", fmt.Sprintf("Fee payment recorded for %s (%s)", student.Name, payment.Month))

	return &dto.RecordFeePaymentResponse{
		Message:   "Payment recorded successfully",
		ReceiptNo: payment.ReceiptNo,
		Payment:   payment,
	}, nil
}

// insertWithReceipt inserts the payment under freshly generated receipt
// numbers until one does not collide
func (s *FeeService) insertWithReceipt(ctx context.Context, payment *models.FeePayment) error {
	var err error
	for i := 0; i < receiptAttempts; i++ {
		payment.ReceiptNo = s.receipts()
		err = s.fees.Insert(ctx, payment)
		if !errors.Is(err, apperrors.ErrDuplicateReceipt) {
			return err
		}
	}
	return err
}

// UpdatePayment merges the given fields into an existing payment owned by
// the student. Absent fields keep their previous value.
func (s *FeeService) UpdatePayment(ctx context.Context, studentID, paymentID int64, req *dto.UpdateFeePaymentRequest) (*models.FeePayment, error) {
	payment, err := s.fees.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.StudentID != studentID {
		return nil, apperrors.ErrPaymentNotFound
	}

	if req.Month != nil {
		payment.Month = *req.Month
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.PaymentMethod != nil {
		payment.PaymentMethod = models.PaymentMethod(*req.PaymentMethod)
	}
	if req.Status != nil {
		payment.Status = models.FeeStatus(*req.Status)
	}
	if err := validateFeePayment(payment); err != nil {
		return nil, err
	}

	if err := s.fees.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment removes a payment owned by the student. Deleting an absent
// payment succeeds.
func (s *FeeService) DeletePayment(ctx context.Context, studentID, paymentID int64) error {
	payment, err := s.fees.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotFound) {
			return nil
		}
		return err
	}
	if payment.StudentID != studentID {
		return nil
	}

	if err := s.fees.Delete(ctx, paymentID); err != nil {
		return err
	}

	s.activity.Record(ctx, "fee", fmt.Sprintf("Fee payment %s deleted", payment.ReceiptNo))
	return nil
}

// ListPayments builds the fee payment report: a page of students matching the
// filter, their payments flattened into rows, plus summary analytics.
// Pagination counts students, not rows.
func (s *FeeService) ListPayments(ctx context.Context, params LedgerListParams) (*dto.FeeListResponse, error) {
	filter := repositories.StudentFilter{
		Search:  params.Search,
		ClassID: params.ClassID,
	}
	if params.SortField == "name" {
		filter.SortBy = "name"
		filter.SortDesc = params.SortOrder == "desc"
	}
	if s.filterScope == config.FilterScopeAll {
		// report filters apply before pagination
		filter.PaymentMonth = params.Month
		filter.PaymentMethod = params.Method
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	students, total, err := s.students.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Student, len(students))
	ids := make([]int64, 0, len(students))
	for _, st := range students {
		byID[st.ID] = st
		ids = append(ids, st.ID)
	}

	payments, err := s.fees.ListByStudents(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.FeePaymentRow, 0, len(payments))
	for _, p := range payments {
		if params.Month != "" && p.Month != params.Month {
			continue
		}
		if params.Method != "" && string(p.PaymentMethod) != params.Method {
			continue
		}
		st := byID[p.StudentID]
		rows = append(rows, dto.FeePaymentRow{
			ID:            p.ID,
			StudentID:     p.StudentID,
			StudentName:   st.Name,
			ClassName:     st.ClassName(),
			Month:         p.Month,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
			ReceiptNo:     p.ReceiptNo,
			Status:        p.Status,
		})
	}
	sortFeeRows(rows, params.SortField, params.SortOrder)

	analytics, err := s.analytics(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &dto.FeeListResponse{
		Payments:   rows,
		Analytics:  analytics,
		Pagination: helpers.NewPaginationInfo(total, params.Page, limit),
	}, nil
}

func sortFeeRows(rows []dto.FeePaymentRow, field, order string) {
	desc := order == "desc"
	switch field {
	case "name":
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return rows[i].StudentName > rows[j].StudentName
			}
			return rows[i].StudentName < rows[j].StudentName
		})
	case "paymentDate":
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return rows[i].PaymentDate.After(rows[j].PaymentDate)
			}
			return rows[i].PaymentDate.Before(rows[j].PaymentDate)
		})
	case "amount":
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return rows[i].Amount > rows[j].Amount
			}
			return rows[i].Amount < rows[j].Amount
		})
	}
}

// analytics summarizes either the page rows or the whole ledger, per the
// configured scope
func (s *FeeService) analytics(ctx context.Context, rows []dto.FeePaymentRow) (dto.FeeAnalytics, error) {
	currentMonth := helpers.MonthName(s.now())

	if s.filterScope == config.FilterScopeAll {
		total, err := s.fees.SumTotal(ctx)
		if err != nil {
			return dto.FeeAnalytics{}, err
		}
		monthTotal, err := s.fees.SumByMonth(ctx, currentMonth)
		if err != nil {
			return dto.FeeAnalytics{}, err
		}
		byClass, err := s.fees.RevenueByClass(ctx)
		if err != nil {
			return dto.FeeAnalytics{}, err
		}
		return dto.FeeAnalytics{
			TotalRevenue:        total,
			CurrentMonthRevenue: monthTotal,
			RevenueByClass:      byClass,
		}, nil
	}

	analytics := dto.FeeAnalytics{RevenueByClass: make(map[string]money.Amount)}
	for _, row := range rows {
		analytics.TotalRevenue += row.Amount
		if row.Month == currentMonth {
			analytics.CurrentMonthRevenue += row.Amount
		}
		analytics.RevenueByClass[row.ClassName] += row.Amount
	}
	return analytics, nil
}

// StudentHistory returns one student's payments, newest first
func (s *FeeService) StudentHistory(ctx context.Context, studentID int64) (*dto.StudentFeeHistoryResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payments, err := s.fees.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentFeeHistoryResponse{
		Student: dto.StudentSummary{
			Name:      student.Name,
			StudentNo: student.StudentNo,
			ClassName: student.ClassName(),
		},
		Payments: payments,
	}, nil
}

// DebtReport lists students whose current month is unsettled: either no
// record labelled with the current month, or one in Debt status. TotalPaid
// sums the student's Paid records across all months; DebtAmount is the
// current record's amount, or zero when there is none.
func (s *FeeService) DebtReport(ctx context.Context) ([]dto.DebtReportRow, error) {
	currentMonth := helpers.MonthName(s.now())

	standings, err := s.fees.DebtStandings(ctx, currentMonth)
	if err != nil {
		return nil, err
	}

	report := make([]dto.DebtReportRow, 0)
	for _, row := range standings {
		inDebt := row.CurrentStatus == nil || *row.CurrentStatus == models.FeeDebt
		if !inDebt {
			continue
		}

		var debt money.Amount
		if row.CurrentAmount != nil {
			debt = *row.CurrentAmount
		}
		report = append(report, dto.DebtReportRow{
			StudentID:   row.StudentID,
			StudentName: row.StudentName,
			ClassName:   row.ClassName,
			TotalPaid:   row.TotalPaid,
			DebtAmount:  debt,
		})
	}

	return report, nil
}

func validateFeePayment(payment *models.FeePayment) error {
	if payment.Amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if !helpers.ValidMonthName(payment.Month) {
		return apperrors.ErrInvalidMonth
	}
	if !models.ValidPaymentMethod(payment.PaymentMethod) {
		return apperrors.ErrInvalidMethod
	}
	if !models.ValidFeeStatus(payment.Status) {
		return apperrors.ErrInvalidStatus
	}
	return nil
}
