package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

// User is an account holder. Password carries the bcrypt hash and is
// never serialized.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Password    string    `json:"-"`
	Theme       string    `json:"theme"`
	ReadingGoal int       `json:"reading_goal"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfilePatch is a partial profile update; nil fields stay untouched.
type ProfilePatch struct {
	DisplayName *string
	Theme       *string
	ReadingGoal *int
}
