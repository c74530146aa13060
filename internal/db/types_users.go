package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account: candidate by default, back-office staff when
// IsAdmin is set. The profile fields feed match scoring.
type User struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	PasswordHash    string    `json:"-"` // Never serialize to JSON
	PasswordSet     bool      `json:"password_set"`
	IsAdmin         bool      `json:"is_admin"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	CurrentPosition string    `json:"current_position,omitempty"`
	Education       string    `json:"education,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
