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

// SalaryStore persists salary payments
type SalaryStore interface {
	Insert(ctx context.Context, payment *models.SalaryPayment) error
	GetByID(ctx context.Context, id int64) (*models.SalaryPayment, error)
	Update(ctx context.Context, payment *models.SalaryPayment) error
	Delete(ctx context.Context, id int64) error
	ListByTeacher(ctx context.Context, teacherID int64) ([]*models.SalaryPayment, error)
	ListByTeachers(ctx context.Context, teacherIDs []int64) ([]*models.SalaryPayment, error)
	SumTotal(ctx context.Context) (money.Amount, error)
	SumByMonth(ctx context.Context, month string) (money.Amount, error)
	MonthlyTotals(ctx context.Context, from time.Time) ([]repositories.MonthTotal, error)
}

// SalaryService handles the salary payment ledger
type SalaryService struct {
	salaries    SalaryStore
	teachers    TeacherStore
	activity    *ActivityService
	filterScope string
	now         func() time.Time
}

// NewSalaryService creates a new salary service. filterScope decides whether
// report analytics cover the current page or the whole ledger.
func NewSalaryService(salaries SalaryStore, teachers TeacherStore, activity *ActivityService, filterScope string, now func() time.Time) *SalaryService {
	if now == nil {
		now = time.Now
	}
	return &SalaryService{
		salaries:    salaries,
		teachers:    teachers,
		activity:    activity,
		filterScope: filterScope,
		now:         now,
	}
}

// RecordPayment records one month's salary payment for a teacher. At most one
// payment per teacher per month; recording a second one fails.
func (s *SalaryService) RecordPayment(ctx context.Context, adminID int64, req *dto.RecordSalaryPaymentRequest) (*models.SalaryPayment, error) {
	teacher, err := s.teachers.GetByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}

	status := models.SalaryStatus(req.Status)
	if req.Status == "" {
		status = models.SalaryPaid
	}

	payment := &models.SalaryPayment{
		TeacherID:     teacher.ID,
		Month:         req.Month,
		Amount:        req.Amount,
		PaymentDate:   s.now(),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		PaidBy:        adminID,
		Notes:         req.Notes,
		Status:        status,
	}
	if err := validateSalaryPayment(payment); err != nil {
		return nil, err
	}

	if err := s.salaries.Insert(ctx, payment); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "salary", fmt.Sprintf("Salary payment recorded for %s (%s)", teacher.Name, payment.Month))
	return payment, nil
}

// UpdatePayment merges the given fields into an existing payment owned by
// the teacher. Absent fields keep their previous value.
func (s *SalaryService) UpdatePayment(ctx context.Context, teacherID, paymentID int64, req *dto.UpdateSalaryPaymentRequest) (*models.SalaryPayment, error) {
	payment, err := s.salaries.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.TeacherID != teacherID {
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
		payment.Status = models.SalaryStatus(*req.Status)
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}
	if err := validateSalaryPayment(payment); err != nil {
		return nil, err
	}

	if err := s.salaries.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment removes a payment owned by the teacher. Deleting an absent
// payment succeeds.
func (s *SalaryService) DeletePayment(ctx context.Context, teacherID, paymentID int64) error {
	payment, err := s.salaries.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotFound) {
			return nil
		}
		return err
	}
	if payment.TeacherID != teacherID {
		return nil
	}

	if err := s.salaries.Delete(ctx, paymentID); err != nil {
		return err
	}

	s.activity.Record(ctx, "salary", fmt.Sprintf("Salary payment %d deleted", paymentID))
	return nil
}

// ListPayments builds the salary payment report: a page of teachers matching
// the filter, their payments flattened into rows, plus summary analytics.
// Pagination counts teachers, not rows.
func (s *SalaryService) ListPayments(ctx context.Context, params LedgerListParams) (*dto.SalaryListResponse, error) {
	filter := repositories.TeacherFilter{Search: params.Search}
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
	teachers, total, err := s.teachers.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Teacher, len(teachers))
	ids := make([]int64, 0, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	payments, err := s.salaries.ListByTeachers(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.SalaryPaymentRow, 0, len(payments))
	for _, p := range payments {
		if params.Month != "" && p.Month != params.Month {
			continue
		}
		if params.Method != "" && string(p.PaymentMethod) != params.Method {
			continue
		}
		t := byID[p.TeacherID]
		rows = append(rows, dto.SalaryPaymentRow{
			ID:            p.ID,
			TeacherID:     p.TeacherID,
			TeacherName:   t.Name,
			Subject:       t.Subject,
			BaseSalary:    t.BaseSalary,
			Month:         p.Month,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
			Notes:         p.Notes,
			Status:        p.Status,
		})
	}
	sortSalaryRows(rows, params.SortField, params.SortOrder)

	analytics, err := s.analytics(ctx, rows)
	if err != nil {
		return nil, err
	}

	return &dto.SalaryListResponse{
		Payments:   rows,
		Analytics:  analytics,
		Pagination: helpers.NewPaginationInfo(total, params.Page, limit),
	}, nil
}

func sortSalaryRows(rows []dto.SalaryPaymentRow, field, order string) {
	desc := order == "desc"
	switch field {
	case "name":
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return rows[i].TeacherName > rows[j].TeacherName
			}
			return rows[i].TeacherName < rows[j].TeacherName
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
func (s *SalaryService) analytics(ctx context.Context, rows []dto.SalaryPaymentRow) (dto.SalaryAnalytics, error) {
	now := s.now()
	currentMonth := helpers.MonthName(now)

	if s.filterScope == config.FilterScopeAll {
		total, err := s.salaries.SumTotal(ctx)
		if err != nil {
			return dto.SalaryAnalytics{}, err
		}
		monthTotal, err := s.salaries.SumByMonth(ctx, currentMonth)
		if err != nil {
			return dto.SalaryAnalytics{}, err
		}
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		buckets, err := s.salaries.MonthlyTotals(ctx, yearStart)
		if err != nil {
			return dto.SalaryAnalytics{}, err
		}
		var yearTotal money.Amount
		for _, b := range buckets {
			yearTotal += b.Total
		}
		return dto.SalaryAnalytics{
			TotalSalariesPaid:    total,
			CurrentMonthSalaries: monthTotal,
			CurrentYearSalaries:  yearTotal,
		}, nil
	}

	var analytics dto.SalaryAnalytics
	for _, row := range rows {
		analytics.TotalSalariesPaid += row.Amount
		if row.Month == currentMonth {
			analytics.CurrentMonthSalaries += row.Amount
		}
		if row.PaymentDate.Year() == now.Year() {
			analytics.CurrentYearSalaries += row.Amount
		}
	}
	return analytics, nil
}

// TeacherHistory returns one teacher's payments, newest first
func (s *SalaryService) TeacherHistory(ctx context.Context, teacherID int64) (*dto.TeacherSalaryHistoryResponse, error) {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	payments, err := s.salaries.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherSalaryHistoryResponse{
		Teacher: dto.TeacherSummary{
			Name:       teacher.Name,
			Subject:    teacher.Subject,
			BaseSalary: teacher.BaseSalary,
		},
		Payments: payments,
	}, nil
}

func validateSalaryPayment(payment *models.SalaryPayment) error {
	if payment.Amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if !helpers.ValidMonthName(payment.Month) {
		return apperrors.ErrInvalidMonth
	}
	if !models.ValidPaymentMethod(payment.PaymentMethod) {
		return apperrors.ErrInvalidMethod
	}
	if !models.ValidSalaryStatus(payment.Status) {
		return apperrors.ErrInvalidStatus
	}
	return nil
}
