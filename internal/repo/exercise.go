package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/crucial707/fittrack/internal/models"
)

// ==========================
// ExerciseRepo
// ==========================
type ExerciseRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewExerciseRepo(db *sql.DB) *ExerciseRepo {
	return &ExerciseRepo{DB: db}
}

// LogFilter narrows a user's exercise log. Nil bounds impose no constraint;
// both bounds are inclusive. Limit <= 0 means no cap.
type LogFilter struct {
	From  *models.Date
	To    *models.Date
	Limit int
}

// ==========================
// Add Exercise
// ==========================
// Add inserts the exercise and appends its id to the owning user's log in one
// transaction, so callers never observe one write without the other. The user
// row is locked first; a missing user yields ErrUserNotFound.
func (r *ExerciseRepo) Add(ctx context.Context, userID, description string, duration int, date models.Date) (*models.Exercise, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exercise := &models.Exercise{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO exercises (id, user_id, description, duration, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, description, duration, date
	`, uuid.NewString(), userID, description, duration, date).
		Scan(&exercise.ID, &exercise.UserID, &exercise.Description, &exercise.Duration, &exercise.Date)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET log = array_append(log, $1), log_count = log_count + 1
		WHERE id = $2
	`, exercise.ID, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return exercise, nil
}

// ==========================
// List For User
// ==========================
// ListForUser returns the user's exercises in insertion order, narrowed by the
// filter. It does not check that the user exists; callers resolve the user
// first.
func (r *ExerciseRepo) ListForUser(ctx context.Context, userID string, f LogFilter) ([]models.Exercise, error) {
	query := `SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = $1`
	args := []any{userID}

	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query += " ORDER BY created_at, id"

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Duration, &e.Date); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}

	return exercises, rows.Err()
}

// ==========================
// Count Exercises
// ==========================
func (r *ExerciseRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n)
	return n, err
}
