package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ramanhiring/hiring-agent/internal/types"
)

// ErrDuplicateEmail indicates the email address is already registered. It
// surfaces from the unique index, so it also catches registrations that race
// past the pre-insert existence check.
type ErrDuplicateEmail struct {
	Email string
}

func (e *ErrDuplicateEmail) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

const userColumns = `id, name, email, phone, password_hash, password_set, is_admin,
	skills, experience_years, current_position, education, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.PasswordSet,
		&u.IsAdmin, &u.Skills, &u.ExperienceYears, &u.CurrentPosition, &u.Education,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u, nil
}

// CreateUser inserts a new user and returns its ID.
func (db *DB) CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, skills)
		 VALUES ($1, $2, $3, '[]'::jsonb)
		 RETURNING id`,
		name, email, phone,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, &ErrDuplicateEmail{Email: email}
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns (nil, nil) when not found.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// CheckEmailExists reports whether a user with the given email exists.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword sets a user's password hash and marks the password as set.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, password_set = TRUE, updated_at = NOW()
		 WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// UpdateProfile applies a partial candidate profile update. Nil pointers leave
// the stored value untouched.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) error {
	// A nil skills slice must become SQL NULL, not jsonb 'null', or the
	// COALESCE would wipe the stored value.
	var skillsParam any
	if req.Skills != nil {
		b, err := json.Marshal(req.Skills)
		if err != nil {
			return fmt.Errorf("failed to marshal skills: %w", err)
		}
		skillsParam = b
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET
			name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			skills = COALESCE($3::jsonb, skills),
			experience_years = COALESCE($4, experience_years),
			current_position = COALESCE($5, current_position),
			education = COALESCE($6, education),
			updated_at = NOW()
		 WHERE id = $7`,
		req.Name, req.Phone, skillsParam, req.ExperienceYears,
		req.CurrentPosition, req.Education, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// ListUsers returns all users ordered by creation time, newest first.
func (db *DB) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetAdmin toggles the admin flag for a user.
func (db *DB) SetAdmin(ctx context.Context, userID uuid.UUID, isAdmin bool) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET is_admin = $1, updated_at = NOW() WHERE id = $2`,
		isAdmin, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// DeleteUser removes a user and cascades to their applications.
func (db *DB) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}
