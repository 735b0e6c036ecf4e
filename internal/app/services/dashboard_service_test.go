package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

func newDashboardFixture() (*DashboardService, *memFeeStore, *memSalaryStore, *memActivityStore) {
	one, two := int64(1), int64(2)
	students := newMemStudentStore(
		&models.Student{ID: 1, Name: "Amina Yusuf", StudentNo: "STU-001", ClassID: &one},
		&models.Student{ID: 2, Name: "Brian Ouma", StudentNo: "STU-002", ClassID: &one},
		&models.Student{ID: 3, Name: "Chloe Apio", StudentNo: "STU-003", ClassID: &two},
	)
	teachers := newMemTeacherStore(
		&models.Teacher{ID: 1, Name: "Daniel Okello", Email: "d.okello@school.example"},
	)
	classes := newMemClassStore(
		&models.Class{ID: 1, Name: "Grade 5", StudentCount: 2},
		&models.Class{ID: 2, Name: "Grade 6", StudentCount: 1},
	)
	fees := newMemFeeStore()
	salaries := newMemSalaryStore()
	activityStore := &memActivityStore{}
	activity := NewActivityService(activityStore, nil, fixedNow)

	svc := NewDashboardService(students, teachers, classes, fees, salaries, activity, fixedNow)
	return svc, fees, salaries, activityStore
}

func TestDashboardStats(t *testing.T) {
	svc, fees, salaries, activityStore := newDashboardFixture()
	ctx := context.Background()

	// Chart buckets follow the payment date, not the month label. This
	// December-labelled payment was made in January and lands in the
	// January bucket.
	require.NoError(t, fees.Insert(ctx, &models.FeePayment{
		StudentID: 1, Month: "December", Amount: money.FromMajor(1200),
		PaymentDate: time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC),
		ReceiptNo:   "RCPT-A", PaymentMethod: models.MethodCash, Status: models.FeePaid,
	}))
	require.NoError(t, fees.Insert(ctx, &models.FeePayment{
		StudentID: 2, Month: "January", Amount: money.FromMajor(1500),
		PaymentDate: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		ReceiptNo:   "RCPT-B", PaymentMethod: models.MethodCash, Status: models.FeePaid,
	}))
	require.NoError(t, fees.Insert(ctx, &models.FeePayment{
		StudentID: 1, Month: "November", Amount: money.FromMajor(1000),
		PaymentDate: time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC),
		ReceiptNo:   "RCPT-C", PaymentMethod: models.MethodCash, Status: models.FeePaid,
	}))
	require.NoError(t, salaries.Insert(ctx, &models.SalaryPayment{
		TeacherID: 1, Month: "January", Amount: money.FromMajor(8500),
		PaymentDate:   time.Date(2025, time.January, 28, 0, 0, 0, 0, time.UTC),
		PaymentMethod: models.MethodBankTransfer, Status: models.SalaryPaid,
	}))

	require.NoError(t, activityStore.Append(ctx, &models.ActivityEntry{Kind: "fee", Message: "first", CreatedAt: testNow}))
	require.NoError(t, activityStore.Append(ctx, &models.ActivityEntry{Kind: "salary", Message: "second", CreatedAt: testNow}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Totals.Students)
	assert.Equal(t, int64(1), stats.Totals.Teachers)
	assert.Equal(t, int64(2), stats.Totals.Classes)

	// Twelve buckets, oldest first, ending at the fixture's current month.
	require.Len(t, stats.Charts.FeePaymentsByMonth, 12)
	assert.Equal(t, "Feb 2024", stats.Charts.FeePaymentsByMonth[0].Month)
	assert.Equal(t, "Jan 2025", stats.Charts.FeePaymentsByMonth[11].Month)

	byMonth := make(map[string]money.Amount)
	for _, b := range stats.Charts.FeePaymentsByMonth {
		byMonth[b.Month] = b.Amount
	}
	assert.Equal(t, money.FromMajor(2700), byMonth["Jan 2025"])
	assert.Equal(t, money.FromMajor(1000), byMonth["Nov 2024"])
	// Months without payments are present with zero amounts.
	assert.Equal(t, money.Amount(0), byMonth["Jun 2024"])

	require.Len(t, stats.Charts.IncomeVsExpense, 12)
	last := stats.Charts.IncomeVsExpense[11]
	assert.Equal(t, "Jan 2025", last.Month)
	assert.Equal(t, money.FromMajor(2700), last.Income)
	assert.Equal(t, money.FromMajor(8500), last.Expense)

	require.Len(t, stats.Charts.StudentsByClass, 2)
	assert.Equal(t, "Grade 5", stats.Charts.StudentsByClass[0].ClassName)
	assert.Equal(t, 2, stats.Charts.StudentsByClass[0].Count)

	// Newest first.
	require.Len(t, stats.RecentActivities, 2)
	assert.Equal(t, "second", stats.RecentActivities[0].Message)
}

func TestDashboardStatsRepeatable(t *testing.T) {
	svc, fees, _, _ := newDashboardFixture()
	ctx := context.Background()

	require.NoError(t, fees.Insert(ctx, &models.FeePayment{
		StudentID: 1, Month: "January", Amount: money.FromMajor(1500),
		PaymentDate: testNow, ReceiptNo: "RCPT-A",
		PaymentMethod: models.MethodCash, Status: models.FeePaid,
	}))

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	second, err := svc.Stats(ctx)
	require.NoError(t, err)

	// Reading the dashboard never changes what it reports.
	assert.Equal(t, first, second)
}

func TestDashboardStatsEmpty(t *testing.T) {
	svc, _, _, _ := newDashboardFixture()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.Charts.FeePaymentsByMonth, 12)
	for _, b := range stats.Charts.FeePaymentsByMonth {
		assert.Equal(t, money.Amount(0), b.Amount)
	}
	assert.Empty(t, stats.RecentActivities)
}
