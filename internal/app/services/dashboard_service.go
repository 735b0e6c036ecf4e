package services

import (
	"context"
	"time"

	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/app/repositories"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

// trailingChartMonths is how many month buckets the dashboard charts span
const trailingChartMonths = 12

// recentActivityCount is how many entries the dashboard activity list shows
const recentActivityCount = 10

// LedgerStats buckets a payment ledger by calendar month of payment date
type LedgerStats interface {
	MonthlyTotals(ctx context.Context, from time.Time) ([]repositories.MonthTotal, error)
}

// DashboardService aggregates the dashboard payload. All figures are
// recomputed from the ledgers on every call, so reading the dashboard never
// changes what it reports.
type DashboardService struct {
	students StudentStore
	teachers TeacherStore
	classes  ClassStore
	fees     LedgerStats
	salaries LedgerStats
	activity *ActivityService
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(students StudentStore, teachers TeacherStore, classes ClassStore, fees, salaries LedgerStats, activity *ActivityService, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		students: students,
		teachers: teachers,
		classes:  classes,
		fees:     fees,
		salaries: salaries,
		activity: activity,
		now:      now,
	}
}

// Stats builds the dashboard: entity totals, chart series over the trailing
// twelve months, and the latest activity entries. Chart buckets follow the
// payment date, not the month label on the payment.
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	studentCount, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}
	teacherCount, err := s.teachers.Count(ctx)
	if err != nil {
		return nil, err
	}
	classCount, err := s.classes.Count(ctx)
	if err != nil {
		return nil, err
	}

	keys := helpers.TrailingMonths(s.now(), trailingChartMonths)
	from := time.Date(keys[0].Year, keys[0].Month, 1, 0, 0, 0, 0, time.UTC)

	feeBuckets, err := s.fees.MonthlyTotals(ctx, from)
	if err != nil {
		return nil, err
	}
	salaryBuckets, err := s.salaries.MonthlyTotals(ctx, from)
	if err != nil {
		return nil, err
	}

	feeByKey := bucketMap(feeBuckets)
	salaryByKey := bucketMap(salaryBuckets)

	feeSeries := make([]dto.MonthAmount, 0, len(keys))
	incomeSeries := make([]dto.MonthIncomeExpense, 0, len(keys))
	for _, key := range keys {
		feeSeries = append(feeSeries, dto.MonthAmount{
			Month:  key.Label(),
			Amount: feeByKey[key],
		})
		incomeSeries = append(incomeSeries, dto.MonthIncomeExpense{
			Month:   key.Label(),
			Income:  feeByKey[key],
			Expense: salaryByKey[key],
		})
	}

	classes, err := s.classes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byClass := make([]dto.ClassCount, 0, len(classes))
	for _, class := range classes {
		byClass = append(byClass, dto.ClassCount{
			ClassName: class.Name,
			Count:     class.StudentCount,
		})
	}

	recent, err := s.activity.Latest(ctx, recentActivityCount)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		Totals: dto.DashboardTotals{
			Students: studentCount,
			Teachers: teacherCount,
			Classes:  classCount,
		},
		Charts: dto.DashboardCharts{
			FeePaymentsByMonth: feeSeries,
			StudentsByClass:    byClass,
			IncomeVsExpense:    incomeSeries,
		},
		RecentActivities: recent,
	}, nil
}

func bucketMap(totals []repositories.MonthTotal) map[helpers.MonthKey]money.Amount {
	m := make(map[helpers.MonthKey]money.Amount, len(totals))
	for _, t := range totals {
		m[helpers.MonthKey{Year: t.Year, Month: t.Month}] = t.Total
	}
	return m
}
