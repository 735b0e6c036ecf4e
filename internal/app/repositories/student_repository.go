package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/dberrors"
)

// StudentFilter narrows student listings
type StudentFilter struct {
	Search   string // matches name or student number
	ClassID  *int64
	SortBy   string // "name" or empty
	SortDesc bool

	// PaymentMonth and PaymentMethod keep only students owning at least one
	// fee payment matching them. Used when report filters apply before
	// pagination.
	PaymentMonth  string
	PaymentMethod string
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create enrolls a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, class_id, student_no, gender, date_of_birth, parent_contact)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.Name,
		student.ClassID,
		student.StudentNo,
		student.Gender,
		student.DateOfBirth,
		student.ParentContact,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_no_key") {
			return apperrors.ErrStudentNoExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID with the class relation populated
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.name, s.class_id, s.student_no, s.gender, s.date_of_birth, s.parent_contact,
		       c.id, c.name
		FROM students s
		LEFT JOIN classes c ON s.class_id = c.id
		WHERE s.id = $1
	`

	var student models.Student
	var classID *int64
	var className *string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.ClassID,
		&student.StudentNo,
		&student.Gender,
		&student.DateOfBirth,
		&student.ParentContact,
		&classID,
		&className,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if classID != nil {
		student.Class = &models.Class{ID: *classID, Name: *className}
	}

	return &student, nil
}

// List retrieves students matching the filter, with pagination.
// Returns the page of students and the total matching count.
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter, offset, limit int) ([]*models.Student, int64, error) {
	where := squirrel.And{}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.name": "%" + s + "%"},
			squirrel.ILike{"s.student_no": "%" + s + "%"},
		})
	}
	if filter.ClassID != nil {
		where = append(where, squirrel.Eq{"s.class_id": *filter.ClassID})
	}
	if filter.PaymentMonth != "" {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM fee_payments fp WHERE fp.student_id = s.id AND fp.month = ?)",
			filter.PaymentMonth))
	}
	if filter.PaymentMethod != "" {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM fee_payments fp WHERE fp.student_id = s.id AND fp.payment_method = ?)",
			filter.PaymentMethod))
	}

	countBuilder := r.sb.Select("COUNT(*)").From("students s")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	selectBuilder := r.sb.Select(
		"s.id", "s.name", "s.class_id", "s.student_no", "s.gender", "s.date_of_birth", "s.parent_contact",
		"c.id", "c.name",
	).
		From("students s").
		LeftJoin("classes c ON s.class_id = c.id")
	if len(where) > 0 {
		selectBuilder = selectBuilder.Where(where)
	}

	orderBy := "s.id"
	if filter.SortBy == "name" {
		orderBy = "s.name"
	}
	if filter.SortDesc {
		orderBy += " DESC"
	}
	selectBuilder = selectBuilder.OrderBy(orderBy).Offset(uint64(offset)).Limit(uint64(limit))

	sql, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var classID *int64
		var className *string
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.ClassID,
			&student.StudentNo,
			&student.Gender,
			&student.DateOfBirth,
			&student.ParentContact,
			&classID,
			&className,
		); err != nil {
			return nil, 0, err
		}
		if classID != nil {
			student.Class = &models.Class{ID: *classID, Name: *className}
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update rewrites a student row. The caller merges partial input beforehand.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, class_id = $2, student_no = $3, gender = $4, date_of_birth = $5, parent_contact = $6
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query,
		student.Name,
		student.ClassID,
		student.StudentNo,
		student.Gender,
		student.DateOfBirth,
		student.ParentContact,
		student.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_no_key") {
			return apperrors.ErrStudentNoExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Fee payments cascade with the row.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Count returns the total number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}
