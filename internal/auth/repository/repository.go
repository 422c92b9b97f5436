package repository

import (
	"context"
	"errors"

	authdomain "altweb/internal/auth/domain"
)

// ErrDuplicateEmail is returned when an insert collides with the unique
// email index. The index, not the pre-check in the use case, is the
// authority under concurrent registrations.
var ErrDuplicateEmail = errors.New("a user with this email already exists")

// UserRepository is the persistence boundary for user records.
type UserRepository interface {
	// Create inserts a new user, assigning its ID and timestamps.
	Create(ctx context.Context, user *authdomain.User) error
	// FindByEmail returns (nil, nil) when no user has the given email.
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	// FindByID returns (nil, nil) when no user has the given id.
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	// Save re-writes an existing user record in full.
	Save(ctx context.Context, user *authdomain.User) error
}
