package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/config"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

type salaryFixture struct {
	service  *SalaryService
	salaries *memSalaryStore
	teachers *memTeacherStore
	activity *memActivityStore
}

func newSalaryFixture(scope string) *salaryFixture {
	teachers := newMemTeacherStore(
		&models.Teacher{ID: 1, Name: "Daniel Okello", Subject: "Mathematics", Email: "d.okello@school.example", BaseSalary: money.FromMajor(8500)},
		&models.Teacher{ID: 2, Name: "Esther Nansubuga", Subject: "English", Email: "e.nansubuga@school.example", BaseSalary: money.FromMajor(8000)},
	)
	salaries := newMemSalaryStore()
	activityStore := &memActivityStore{}
	activity := NewActivityService(activityStore, nil, fixedNow)

	return &salaryFixture{
		service:  NewSalaryService(salaries, teachers, activity, scope, fixedNow),
		salaries: salaries,
		teachers: teachers,
		activity: activityStore,
	}
}

func (f *salaryFixture) record(t *testing.T, teacherID int64, month string, amount money.Amount) *models.SalaryPayment {
	t.Helper()
	payment, err := f.service.RecordPayment(context.Background(), 1, &dto.RecordSalaryPaymentRequest{
		TeacherID:     teacherID,
		Month:         month,
		Amount:        amount,
		PaymentMethod: "Bank Transfer",
	})
	require.NoError(t, err)
	return payment
}

func TestRecordSalaryPayment(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)

	payment, err := f.service.RecordPayment(context.Background(), 5, &dto.RecordSalaryPaymentRequest{
		TeacherID:     1,
		Month:         "January",
		Amount:        money.FromMajor(8500),
		PaymentMethod: "Bank Transfer",
		Notes:         "January salary",
	})
	require.NoError(t, err)

	assert.NotZero(t, payment.ID)
	assert.Equal(t, int64(5), payment.PaidBy)
	assert.Equal(t, "January salary", payment.Notes)
	assert.Equal(t, models.SalaryPaid, payment.Status)
	assert.Equal(t, testNow, payment.PaymentDate)

	require.Len(t, f.activity.entries, 1)
	assert.Equal(t, "salary", f.activity.entries[0].Kind)
	assert.Contains(t, f.activity.entries[0].Message, "Daniel Okello")
}

func TestRecordSalaryPaymentDuplicateMonth(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	f.record(t, 1, "January", money.FromMajor(8500))

	_, err := f.service.RecordPayment(context.Background(), 1, &dto.RecordSalaryPaymentRequest{
		TeacherID:     1,
		Month:         "January",
		Amount:        money.FromMajor(8500),
		PaymentMethod: "Bank Transfer",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateMonth)

	// Fee and salary ledgers are independent: the same month for a
	// different teacher still records.
	f.record(t, 2, "January", money.FromMajor(8000))
}

func TestRecordSalaryPaymentUnknownTeacher(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)

	_, err := f.service.RecordPayment(context.Background(), 1, &dto.RecordSalaryPaymentRequest{
		TeacherID:     99,
		Month:         "January",
		Amount:        money.FromMajor(8500),
		PaymentMethod: "Bank Transfer",
	})
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
}

func TestRecordSalaryPaymentValidation(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)

	_, err := f.service.RecordPayment(context.Background(), 1, &dto.RecordSalaryPaymentRequest{
		TeacherID: 1, Month: "January", Amount: 0, PaymentMethod: "Bank Transfer",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = f.service.RecordPayment(context.Background(), 1, &dto.RecordSalaryPaymentRequest{
		TeacherID: 1, Month: "January", Amount: 100, PaymentMethod: "Bank Transfer", Status: "Overdue",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestUpdateSalaryPayment(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	payment := f.record(t, 1, "January", money.FromMajor(8500))

	notes := "adjusted for advance"
	status := "Partial"
	updated, err := f.service.UpdatePayment(context.Background(), 1, payment.ID, &dto.UpdateSalaryPaymentRequest{
		Notes:  &notes,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, models.SalaryPartial, updated.Status)
	assert.Equal(t, "January", updated.Month)
	assert.Equal(t, money.FromMajor(8500), updated.Amount)
}

func TestUpdateSalaryPaymentWrongOwner(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	payment := f.record(t, 1, "January", money.FromMajor(8500))

	notes := "misdirected"
	_, err := f.service.UpdatePayment(context.Background(), 2, payment.ID, &dto.UpdateSalaryPaymentRequest{Notes: &notes})
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}

func TestDeleteSalaryPayment(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	payment := f.record(t, 1, "January", money.FromMajor(8500))

	require.NoError(t, f.service.DeletePayment(context.Background(), 1, payment.ID))
	_, err := f.salaries.GetByID(context.Background(), payment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)

	// Absent and wrongly scoped deletes both succeed quietly.
	assert.NoError(t, f.service.DeletePayment(context.Background(), 1, payment.ID))

	other := f.record(t, 2, "January", money.FromMajor(8000))
	require.NoError(t, f.service.DeletePayment(context.Background(), 1, other.ID))
	_, err = f.salaries.GetByID(context.Background(), other.ID)
	assert.NoError(t, err)
}

func TestListSalaryPayments(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	f.record(t, 1, "December", money.FromMajor(8500))
	f.record(t, 1, "January", money.FromMajor(8500))
	f.record(t, 2, "January", money.FromMajor(8000))

	resp, err := f.service.ListPayments(context.Background(), LedgerListParams{Page: 1, Size: 10})
	require.NoError(t, err)

	require.Len(t, resp.Payments, 3)
	assert.Equal(t, "Daniel Okello", resp.Payments[0].TeacherName)
	assert.Equal(t, "Mathematics", resp.Payments[0].Subject)
	assert.Equal(t, money.FromMajor(8500), resp.Payments[0].BaseSalary)

	assert.Equal(t, int64(2), resp.Pagination.Total)

	// January is the fixture's current month and all payment dates fall in
	// the current year.
	assert.Equal(t, money.FromMajor(25000), resp.Analytics.TotalSalariesPaid)
	assert.Equal(t, money.FromMajor(16500), resp.Analytics.CurrentMonthSalaries)
	assert.Equal(t, money.FromMajor(25000), resp.Analytics.CurrentYearSalaries)
}

func TestListSalaryPaymentsSortByName(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	f.record(t, 2, "January", money.FromMajor(8000))
	f.record(t, 1, "January", money.FromMajor(8500))

	resp, err := f.service.ListPayments(context.Background(), LedgerListParams{
		SortField: "name", SortOrder: "desc", Page: 1, Size: 10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "Esther Nansubuga", resp.Payments[0].TeacherName)
	assert.Equal(t, "Daniel Okello", resp.Payments[1].TeacherName)
}

func TestListSalaryPaymentsMonthFilter(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	f.record(t, 1, "December", money.FromMajor(8500))
	f.record(t, 1, "January", money.FromMajor(8500))
	f.record(t, 2, "January", money.FromMajor(8000))

	resp, err := f.service.ListPayments(context.Background(), LedgerListParams{Month: "January", Page: 1, Size: 10})
	require.NoError(t, err)

	require.Len(t, resp.Payments, 2)
	for _, row := range resp.Payments {
		assert.Equal(t, "January", row.Month)
	}
	assert.Equal(t, money.FromMajor(16500), resp.Analytics.TotalSalariesPaid)
}

func TestListSalaryPaymentsAllScope(t *testing.T) {
	f := newSalaryFixture(config.FilterScopeAll)
	f.record(t, 1, "January", money.FromMajor(8500))
	f.record(t, 2, "January", money.FromMajor(8000))

	// Backdate one payment to last year so the year total excludes it.
	stale := &models.SalaryPayment{
		TeacherID: 2, Month: "December", Amount: money.FromMajor(8000),
		PaymentDate:   time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC),
		PaymentMethod: models.MethodBankTransfer, Status: models.SalaryPaid,
	}
	require.NoError(t, f.salaries.Insert(context.Background(), stale))

	resp, err := f.service.ListPayments(context.Background(), LedgerListParams{Search: "daniel", Page: 1, Size: 10})
	require.NoError(t, err)

	require.Len(t, resp.Payments, 1)
	assert.Equal(t, money.FromMajor(24500), resp.Analytics.TotalSalariesPaid)
	assert.Equal(t, money.FromMajor(16500), resp.Analytics.CurrentMonthSalaries)
	assert.Equal(t, money.FromMajor(16500), resp.Analytics.CurrentYearSalaries)
}

func TestTeacherSalaryHistory(t *testing.T) {
	f := newSalaryFixture(config.FilterScopePage)
	f.record(t, 1, "December", money.FromMajor(8500))
	f.record(t, 1, "January", money.FromMajor(8500))
	f.record(t, 2, "January", money.FromMajor(8000))

	resp, err := f.service.TeacherHistory(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Daniel Okello", resp.Teacher.Name)
	assert.Equal(t, "Mathematics", resp.Teacher.Subject)
	assert.Equal(t, money.FromMajor(8500), resp.Teacher.BaseSalary)
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "January", resp.Payments[0].Month)

	_, err = f.service.TeacherHistory(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
}
