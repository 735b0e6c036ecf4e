package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerem/schoolhub/internal/app/models"
)

// ActivityRepository handles the append-only activity log
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new activity log repository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
	}
}

// Append records one activity entry
func (r *ActivityRepository) Append(ctx context.Context, entry *models.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (kind, message, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, entry.Kind, entry.Message, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("error appending activity entry: %w", err)
	}

	return nil
}

// Latest retrieves the most recent n entries, newest first
func (r *ActivityRepository) Latest(ctx context.Context, n int) ([]*models.ActivityEntry, error) {
	query := `
		SELECT id, kind, message, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("error retrieving activity entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.Kind, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
