package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is an electrician's account. FullName and Email prefill the CV on import.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrInvalidInput rejects a registration with malformed data.
type ErrInvalidInput string

func (e ErrInvalidInput) Error() string { return string(e) }

// UserRepository stores accounts. Emails are kept lower-cased.
type UserRepository interface {
	// Create returns ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}

// TokenGenerator issues access tokens (JWT in production).
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
