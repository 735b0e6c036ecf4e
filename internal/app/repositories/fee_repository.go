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

// MonthTotal is one month's summed payment amount, bucketed by payment date
type MonthTotal struct {
	Year  int
	Month time.Month
	Total money.Amount
}

// DebtRow is one student's standing against the current month's fee record
type DebtRow struct {
	StudentID     int64
	StudentName   string
	ClassName     string
	TotalPaid     money.Amount
	CurrentAmount *money.Amount
	CurrentStatus *models.FeeStatus
}

// FeeRepository handles database operations for fee payments
type FeeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeeRepository creates a new fee payment repository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert records a fee payment. The unique indexes turn concurrent
// same-month or same-receipt inserts into typed errors.
func (r *FeeRepository) Insert(ctx context.Context, payment *models.FeePayment) error {
	query := `
		INSERT INTO fee_payments (student_id, month, amount_cents, payment_date, payment_method, paid_by, receipt_no, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		payment.StudentID,
		payment.Month,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.PaidBy,
		payment.ReceiptNo,
		payment.Status,
	).Scan(&payment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "fee_payments_student_month_key") {
			return apperrors.ErrDuplicateMonth
		}
		if dberrors.IsDuplicateConstraintError(err, "fee_payments_receipt_no_key") {
			return apperrors.ErrDuplicateReceipt
		}
		return fmt.Errorf("error recording fee payment: %w", err)
	}

	return nil
}

// GetByID retrieves a fee payment by ID
func (r *FeeRepository) GetByID(ctx context.Context, id int64) (*models.FeePayment, error) {
	query := `
		SELECT id, student_id, month, amount_cents, payment_date, payment_method, paid_by, receipt_no, status
		FROM fee_payments
		WHERE id = $1
	`

	var payment models.FeePayment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.StudentID,
		&payment.Month,
		&payment.Amount,
		&payment.PaymentDate,
		&payment.PaymentMethod,
		&payment.PaidBy,
		&payment.ReceiptNo,
		&payment.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving fee payment: %w", err)
	}

	return &payment, nil
}

// Update rewrites a fee payment row. The caller merges partial input
// beforehand. Moving the payment onto an occupied month is a typed error.
func (r *FeeRepository) Update(ctx context.Context, payment *models.FeePayment) error {
	query := `
		UPDATE fee_payments
		SET month = $1, amount_cents = $2, payment_method = $3, status = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query,
		payment.Month,
		payment.Amount,
		payment.PaymentMethod,
		payment.Status,
		payment.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "fee_payments_student_month_key") {
			return apperrors.ErrDuplicateMonth
		}
		return fmt.Errorf("error updating fee payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}

// Delete removes a fee payment. Deleting an absent payment is not an error.
func (r *FeeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM fee_payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting fee payment: %w", err)
	}
	return nil
}

// ListByStudent retrieves one student's payments, newest first
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID})
}

// ListByStudents retrieves the payments of a set of students, newest first
func (r *FeeRepository) ListByStudents(ctx context.Context, studentIDs []int64) ([]*models.FeePayment, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, squirrel.Eq{"student_id": studentIDs})
}

func (r *FeeRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.FeePayment, error) {
	sql, args, err := r.sb.Select(
		"id", "student_id", "month", "amount_cents", "payment_date", "payment_method", "paid_by", "receipt_no", "status",
	).
		From("fee_payments").
		Where(where).
		OrderBy("payment_date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building fee payment query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing fee payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.FeePayment
	for rows.Next() {
		var payment models.FeePayment
		if err := rows.Scan(
			&payment.ID,
			&payment.StudentID,
			&payment.Month,
			&payment.Amount,
			&payment.PaymentDate,
			&payment.PaymentMethod,
			&payment.PaidBy,
			&payment.ReceiptNo,
			&payment.Status,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

// SumTotal returns the sum of all fee payment amounts
func (r *FeeRepository) SumTotal(ctx context.Context) (money.Amount, error) {
	var total money.Amount
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM fee_payments`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing fee payments: %w", err)
	}
	return total, nil
}

// SumByMonth returns the sum of fee payment amounts labelled with the given month
func (r *FeeRepository) SumByMonth(ctx context.Context, month string) (money.Amount, error) {
	var total money.Amount
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM fee_payments WHERE month = $1`, month).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing fee payments by month: %w", err)
	}
	return total, nil
}

// RevenueByClass returns total fee revenue grouped by class name.
// Students without a class are grouped under "N/A".
func (r *FeeRepository) RevenueByClass(ctx context.Context) (map[string]money.Amount, error) {
	query := `
		SELECT COALESCE(c.name, 'N/A'), SUM(fp.amount_cents)
		FROM fee_payments fp
		JOIN students s ON fp.student_id = s.id
		LEFT JOIN classes c ON s.class_id = c.id
		GROUP BY COALESCE(c.name, 'N/A')
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error grouping fee revenue: %w", err)
	}
	defer rows.Close()

	revenue := make(map[string]money.Amount)
	for rows.Next() {
		var className string
		var total money.Amount
		if err := rows.Scan(&className, &total); err != nil {
			return nil, err
		}
		revenue[className] = total
	}

	return revenue, rows.Err()
}

// MonthlyTotals sums fee payments per calendar month of their payment date,
// starting at from. Months without payments are absent from the result.
func (r *FeeRepository) MonthlyTotals(ctx context.Context, from time.Time) ([]MonthTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM payment_date)::INT, EXTRACT(MONTH FROM payment_date)::INT, SUM(amount_cents)
		FROM fee_payments
		WHERE payment_date >= $1
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	rows, err := r.db.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("error bucketing fee payments: %w", err)
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

// DebtStandings returns, for every student, the lifetime sum of Paid fee
// amounts plus the amount and status of the record labelled with the given
// month, when one exists.
func (r *FeeRepository) DebtStandings(ctx context.Context, currentMonth string) ([]DebtRow, error) {
	query := `
		SELECT s.id, s.name, COALESCE(c.name, 'N/A'),
		       COALESCE(SUM(fp.amount_cents) FILTER (WHERE fp.status = 'Paid'), 0),
		       cur.amount_cents, cur.status
		FROM students s
		LEFT JOIN classes c ON s.class_id = c.id
		LEFT JOIN fee_payments fp ON fp.student_id = s.id
		LEFT JOIN fee_payments cur ON cur.student_id = s.id AND cur.month = $1
		GROUP BY s.id, s.name, c.name, cur.amount_cents, cur.status
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, currentMonth)
	if err != nil {
		return nil, fmt.Errorf("error computing debt standings: %w", err)
	}
	defer rows.Close()

	var standings []DebtRow
	for rows.Next() {
		var row DebtRow
		if err := rows.Scan(
			&row.StudentID,
			&row.StudentName,
			&row.ClassName,
			&row.TotalPaid,
			&row.CurrentAmount,
			&row.CurrentStatus,
		); err != nil {
			return nil, err
		}
		standings = append(standings, row)
	}

	return standings, rows.Err()
}
