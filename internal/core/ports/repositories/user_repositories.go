package repositories

import (
	"context"

	"github.com/884js/freee-line-notifier/internal/core/domain"
)

// UserRepository defines persistence operations for LINE users and their
// linked companies.
type UserRepository interface {
	// SaveUser upserts a user and its active company link.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByLineID returns the user for a LINE user ID, with the
	// active company populated when one is linked. Returns (nil, nil)
	// when no such user exists.
	FindUserByLineID(ctx context.Context, lineUserID string) (*domain.User, error)

	// ListUsers returns every registered user, for the scheduled broadcast.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// DeleteUserByLineID removes a user and its companies (account unlink).
	DeleteUserByLineID(ctx context.Context, lineUserID string) error
}
