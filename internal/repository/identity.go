package repository

import (
	"context"
	"errors"

	"disaster-watch/internal/domain"
)

var (
	// ErrIdentityExists indicates an insert collided with an existing
	// username or email.
	ErrIdentityExists = errors.New("identity already exists")
	// ErrIdentityNotFound indicates no identity matched the lookup key.
	ErrIdentityNotFound = errors.New("identity not found")
)

// IdentityRepository defines persistence operations for Identity entities.
type IdentityRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, identity *domain.Identity) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByID(ctx context.Context, id int64) (*domain.Identity, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
