package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/crucial707/fittrack/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username string) (*models.User, error) {
	query := `
		INSERT INTO users (id, username)
		VALUES ($1, $2)
		RETURNING id, username
	`

	user := &models.User{Log: []string{}}

	err := r.DB.QueryRowContext(ctx, query, uuid.NewString(), username).
		Scan(&user.ID, &user.Username)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, username, log, log_count
		FROM users
		WHERE id = $1
	`

	user := &models.User{}
	var log pq.StringArray

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &log, &user.Count)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Log = []string(log)
	if user.Log == nil {
		user.Log = []string{}
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, log, log_count
		FROM users
		WHERE username = $1
	`

	user := &models.User{}
	var log pq.StringArray

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &log, &user.Count)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Log = []string(log)
	if user.Log == nil {
		user.Log = []string{}
	}

	return user, nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, username, log, log_count FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var log pq.StringArray
		if err := rows.Scan(&u.ID, &u.Username, &log, &u.Count); err != nil {
			return nil, err
		}
		u.Log = []string(log)
		if u.Log == nil {
			u.Log = []string{}
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ==========================
// Count Users
// ==========================
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
