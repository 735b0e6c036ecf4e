package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/db"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/dberrors"
)

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

// Create creates a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (name)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, class.Name).Scan(&class.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_name_key") {
			return apperrors.ErrClassAlreadyExists
		}
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID, including its student count
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `
		SELECT c.id, c.name, COUNT(s.id)
		FROM classes c
		LEFT JOIN students s ON s.class_id = c.id
		WHERE c.id = $1
		GROUP BY c.id, c.name
	`

	var class models.Class
	err := r.db.QueryRow(ctx, query, id).Scan(&class.ID, &class.Name, &class.StudentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return &class, nil
}

// GetAll retrieves all classes with their student counts, ordered by name
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	query := `
		SELECT c.id, c.name, COUNT(s.id)
		FROM classes c
		LEFT JOIN students s ON s.class_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Name, &class.StudentCount); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// UpdateName renames a class
func (r *ClassRepository) UpdateName(ctx context.Context, id int64, name string) error {
	result, err := r.db.Exec(ctx, `UPDATE classes SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_name_key") {
			return apperrors.ErrClassAlreadyExists
		}
		return fmt.Errorf("error updating class: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// Delete removes a class and detaches its students. Students keep their
// records with class_id cleared rather than being deleted with the class.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE students SET class_id = NULL WHERE class_id = $1`, id); err != nil {
			return fmt.Errorf("error detaching students: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting class: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrClassNotFound
		}

		return nil
	})
}

// Count returns the total number of classes
func (r *ClassRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting classes: %w", err)
	}
	return count, nil
}
