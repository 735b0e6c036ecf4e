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
	"github.com/kerem/schoolhub/internal/db"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/dberrors"
)

// TeacherFilter narrows teacher listings
type TeacherFilter struct {
	Search   string // matches name or subject
	SortBy   string // "name" or empty
	SortDesc bool

	// PaymentMonth and PaymentMethod keep only teachers owning at least one
	// salary payment matching them. Used when report filters apply before
	// pagination.
	PaymentMonth  string
	PaymentMethod string
}

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create registers a new teacher
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (name, subject, contact, email, gender, hire_date, degree, experience_years, address, base_salary_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		teacher.Name,
		teacher.Subject,
		teacher.Contact,
		teacher.Email,
		teacher.Gender,
		teacher.HireDate,
		teacher.Degree,
		teacher.ExperienceYears,
		teacher.Address,
		teacher.BaseSalary,
	).Scan(&teacher.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrTeacherEmailExists
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetByID retrieves a teacher by ID with assigned classes populated
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `
		SELECT id, name, subject, contact, email, gender, hire_date, degree, experience_years, address, base_salary_cents
		FROM teachers
		WHERE id = $1
	`

	var teacher models.Teacher
	err := r.db.QueryRow(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Subject,
		&teacher.Contact,
		&teacher.Email,
		&teacher.Gender,
		&teacher.HireDate,
		&teacher.Degree,
		&teacher.ExperienceYears,
		&teacher.Address,
		&teacher.BaseSalary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	classes, err := r.getClasses(ctx, id)
	if err != nil {
		return nil, err
	}
	teacher.Classes = classes
	for _, c := range classes {
		teacher.ClassIDs = append(teacher.ClassIDs, c.ID)
	}

	return &teacher, nil
}

func (r *TeacherRepository) getClasses(ctx context.Context, teacherID int64) ([]*models.Class, error) {
	query := `
		SELECT c.id, c.name
		FROM teacher_classes tc
		JOIN classes c ON tc.class_id = c.id
		WHERE tc.teacher_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teacher classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Name); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	return classes, rows.Err()
}

// List retrieves teachers matching the filter, with pagination.
// Returns the page of teachers and the total matching count.
func (r *TeacherRepository) List(ctx context.Context, filter TeacherFilter, offset, limit int) ([]*models.Teacher, int64, error) {
	where := squirrel.And{}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": "%" + s + "%"},
			squirrel.ILike{"subject": "%" + s + "%"},
		})
	}
	if filter.PaymentMonth != "" {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM salary_payments sp WHERE sp.teacher_id = teachers.id AND sp.month = ?)",
			filter.PaymentMonth))
	}
	if filter.PaymentMethod != "" {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM salary_payments sp WHERE sp.teacher_id = teachers.id AND sp.payment_method = ?)",
			filter.PaymentMethod))
	}

	countBuilder := r.sb.Select("COUNT(*)").From("teachers")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teachers: %w", err)
	}

	selectBuilder := r.sb.Select(
		"id", "name", "subject", "contact", "email", "gender", "hire_date",
		"degree", "experience_years", "address", "base_salary_cents",
	).From("teachers")
	if len(where) > 0 {
		selectBuilder = selectBuilder.Where(where)
	}
	orderBy := "id"
	if filter.SortBy == "name" {
		orderBy = "name"
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
		return nil, 0, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var teacher models.Teacher
		if err := rows.Scan(
			&teacher.ID,
			&teacher.Name,
			&teacher.Subject,
			&teacher.Contact,
			&teacher.Email,
			&teacher.Gender,
			&teacher.HireDate,
			&teacher.Degree,
			&teacher.ExperienceYears,
			&teacher.Address,
			&teacher.BaseSalary,
		); err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, &teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachClasses(ctx, teachers); err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}

// attachClasses populates Classes and ClassIDs for a page of teachers in one query
func (r *TeacherRepository) attachClasses(ctx context.Context, teachers []*models.Teacher) error {
	if len(teachers) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Teacher, len(teachers))
	ids := make([]int64, 0, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	sql, args, err := r.sb.Select("tc.teacher_id", "c.id", "c.name").
		From("teacher_classes tc").
		Join("classes c ON tc.class_id = c.id").
		Where(squirrel.Eq{"tc.teacher_id": ids}).
		OrderBy("c.name").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building class assignment query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error retrieving class assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teacherID int64
		var class models.Class
		if err := rows.Scan(&teacherID, &class.ID, &class.Name); err != nil {
			return err
		}
		if t, ok := byID[teacherID]; ok {
			t.Classes = append(t.Classes, &class)
			t.ClassIDs = append(t.ClassIDs, class.ID)
		}
	}

	return rows.Err()
}

// Update rewrites a teacher row. The caller merges partial input beforehand.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET name = $1, subject = $2, contact = $3, email = $4, gender = $5, hire_date = $6,
		    degree = $7, experience_years = $8, address = $9, base_salary_cents = $10
		WHERE id = $11
	`

	result, err := r.db.Exec(ctx, query,
		teacher.Name,
		teacher.Subject,
		teacher.Contact,
		teacher.Email,
		teacher.Gender,
		teacher.HireDate,
		teacher.Degree,
		teacher.ExperienceYears,
		teacher.Address,
		teacher.BaseSalary,
		teacher.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrTeacherEmailExists
		}
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// AssignClasses replaces the teacher's class assignments with the given set
func (r *TeacherRepository) AssignClasses(ctx context.Context, teacherID int64, classIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM teacher_classes WHERE teacher_id = $1`, teacherID); err != nil {
			return fmt.Errorf("error clearing class assignments: %w", err)
		}

		for _, classID := range classIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO teacher_classes (teacher_id, class_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				teacherID, classID,
			); err != nil {
				return fmt.Errorf("error assigning class %d: %w", classID, err)
			}
		}

		return nil
	})
}

// Delete removes a teacher. Salary payments and class assignments cascade.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// Count returns the total number of teachers
func (r *TeacherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting teachers: %w", err)
	}
	return count, nil
}
