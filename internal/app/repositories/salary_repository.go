package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/dberrors"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

// SalaryRepository handles database operations for salary payments
type SalaryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSalaryRepository creates a new salary payment repository
func NewSalaryRepository(db *pgxpool.Pool) *SalaryRepository {
	return &SalaryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert records a salary payment. A concurrent insert for the same teacher
// and month surfaces as a typed error.
func (r *SalaryRepository) Insert(ctx context.Context, payment *models.SalaryPayment) error {
	query := `
		INSERT INTO salary_payments (teacher_id, month, amount_cents, payment_date, payment_method, paid_by, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		payment.TeacherID,
		payment.Month,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.PaidBy,
		payment.Notes,
		payment.Status,
	).Scan(&payment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "salary_payments_teacher_month_key") {
			return apperrors.ErrDuplicateMonth
		}
		return fmt.Errorf("error recording salary payment: %w", err)
	}

	return nil
}

// GetByID retrieves a salary payment by ID
func (r *SalaryRepository) GetByID(ctx context.Context, id int64) (*models.SalaryPayment, error) {
	query := `
		SELECT id, teacher_id, month, amount_cents, payment_date, payment_method, paid_by, notes, status
		FROM salary_payments
		WHERE id = $1
	`

	var payment models.SalaryPayment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.TeacherID,
		&payment.Month,
		&payment.Amount,
		&payment.PaymentDate,
		&payment.PaymentMethod,
		&payment.PaidBy,
		&payment.Notes,
		&payment.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving salary payment: %w", err)
	}

	return &payment, nil
}

// Update rewrites a salary payment row. The caller merges partial input
// beforehand. Moving the payment onto an occupied month is a typed error.
func (r *SalaryRepository) Update(ctx context.Context, payment *models.SalaryPayment) error {
	query := `
		UPDATE salary_payments
		SET month = $1, amount_cents = $2, payment_method = $3, notes = $4, status = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(ctx, query,
		payment.Month,
		payment.Amount,
		payment.PaymentMethod,
		payment.Notes,
		payment.Status,
		payment.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "salary_payments_teacher_month_key") {
			return apperrors.ErrDuplicateMonth
		}
		return fmt.Errorf("error updating salary payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}

// Delete removes a salary payment. Deleting an absent payment is not an error.
func (r *SalaryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM salary_payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting salary payment: %w", err)
	}
	return nil
}

// ListByTeacher retrieves one teacher's payments, newest first
func (r *SalaryRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.SalaryPayment, error) {
	return r.list(ctx, squirrel.Eq{"teacher_id": teacherID})
}

// ListByTeachers retrieves the payments of a set of teachers, newest first
func (r *SalaryRepository) ListByTeachers(ctx context.Context, teacherIDs []int64) ([]*models.SalaryPayment, error) {
	if len(teacherIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, squirrel.Eq{"teacher_id": teacherIDs})
}

func (r *SalaryRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.SalaryPayment, error) {
	sql, args, err := r.sb.Select(
		"id", "teacher_id", "month", "amount_cents", "payment_date", "payment_method", "paid_by", "notes", "status",
	).
		From("salary_payments").
		Where(where).
		OrderBy("payment_date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building salary payment query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing salary payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.SalaryPayment
	for rows.Next() {
		var payment models.SalaryPayment
		if err := rows.Scan(
			&payment.ID,
			&payment.TeacherID,
			&payment.Month,
			&payment.Amount,
			&payment.PaymentDate,
			&payment.PaymentMethod,
			&payment.PaidBy,
			&payment.Notes,
			&payment.Status,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

// SumTotal returns the sum of all salary payment amounts
func (r *SalaryRepository) SumTotal(ctx context.Context) (money.Amount, error) {
	var total money.Amount
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM salary_payments`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing salary payments: %w", err)
	}
	return total, nil
}

// SumByMonth returns the sum of salary payment amounts labelled with the given month
func (r *SalaryRepository) SumByMonth(ctx context.Context, month string) (money.Amount, error) {
	var total money.Amount
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM salary_payments WHERE month = $1`, month).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing salary payments by month: %w", err)
	}
	return total, nil
}

// MonthlyTotals sums salary payments per calendar month of their payment
// date, starting at from. Months without payments are absent from the result.
func (r *SalaryRepository) MonthlyTotals(ctx context.Context, from time.Time) ([]MonthTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM payment_date)::INT, EXTRACT(MONTH FROM payment_date)::INT, SUM(amount_cents)
		FROM salary_payments
		WHERE payment_date >= $1
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	rows, err := r.db.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("error bucketing salary payments: %w", err)
	}
	defer rows.Close()

	var totals []MonthTotal
	for rows.Next() {
		var year, month int
		var total money.Amount
		if err := rows.Scan(&year, &month, &total); err != nil {
			return nil, err
		}
		totals = append(totals, MonthTotal{Year: year, Month: time.Month(month), Total: total})
	}

	return totals, rows.Err()
}
