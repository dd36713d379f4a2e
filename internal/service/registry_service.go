package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"disaster-watch/internal/domain"
	"disaster-watch/internal/hashing"
	"disaster-watch/internal/repository"
)

// Seed accounts created once at startup. The emails are the idempotency keys.
const (
	seedAdminEmail  = "admin@gmail.com"
	seedAdminSecret = "admin123"
	seedUserEmail   = "user@gmail.com"
	seedUserSecret  = "user123"
)

// CreateParams carries every Identity field except the generated id.
type CreateParams struct {
	Name     string
	Username string
	Phone    string
	Email    string
	Secret   string
	Gender   string
	Role     domain.Role
}

// Registry owns the durable set of identities: uniqueness-enforcing creation,
// lookup, and one-way secret verification.
type Registry interface {
	Create(ctx context.Context, params CreateParams) (*domain.Identity, error)
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
	VerifySecret(ctx context.Context, identity *domain.Identity, candidate string) (bool, error)
	Seed(ctx context.Context) error
}

type registry struct {
	identities repository.IdentityRepository
	hasher     hashing.Hasher
}

func NewRegistry(identities repository.IdentityRepository, hasher hashing.Hasher) Registry {
	return &registry{
		identities: identities,
		hasher:     hasher,
	}
}

// Create hashes the secret, assigns the next id, and persists the identity.
// A username or email collision yields ErrDuplicateIdentity and writes
// nothing. The plaintext secret is discarded after hashing.
func (r *registry) Create(ctx context.Context, params CreateParams) (*domain.Identity, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.TrimSpace(params.Email)

	if params.Username == "" || params.Email == "" {
		return nil, ErrInvalidRequest
	}
	if params.Role == "" {
		params.Role = domain.RoleUser
	}

	exists, err := r.identities.ExistsByUsernameOrEmail(ctx, params.Username, params.Email)
	if err != nil {
		return nil, storageErr(err)
	}
	if exists {
		return nil, ErrDuplicateIdentity
	}

	hash, err := r.hasher.Hash(ctx, params.Secret)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	identity := &domain.Identity{
		Name:       params.Name,
		Username:   params.Username,
		Phone:      params.Phone,
		Email:      params.Email,
		SecretHash: hash,
		Gender:     params.Gender,
		Role:       params.Role,
	}

	if _, err := r.identities.Create(ctx, identity); err != nil {
		// the unique constraints close the window between the existence
		// check and the insert
		if errors.Is(err, repository.ErrIdentityExists) {
			return nil, ErrDuplicateIdentity
		}
		return nil, storageErr(err)
	}

	return identity, nil
}

// FindByUsername is a pure lookup; it does not mutate state.
func (r *registry) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	identity, err := r.identities.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, err
		}
		return nil, storageErr(err)
	}
	return identity, nil
}

// VerifySecret recomputes the one-way comparison against the stored hash.
func (r *registry) VerifySecret(ctx context.Context, identity *domain.Identity, candidate string) (bool, error) {
	return r.hasher.Compare(ctx, identity.SecretHash, candidate)
}

// Seed creates the well-known admin and default accounts if they are absent.
// Running it again is a no-op; a storage failure aborts further seeding.
func (r *registry) Seed(ctx context.Context) error {
	seeds := []CreateParams{
		{
			Name:     "Admin User",
			Username: "admin",
			Phone:    "1234567890",
			Email:    seedAdminEmail,
			Secret:   seedAdminSecret,
			Gender:   "other",
			Role:     domain.RoleAdmin,
		},
		{
			Name:     "Default User",
			Username: "defaultuser",
			Phone:    "0987654321",
			Email:    seedUserEmail,
			Secret:   seedUserSecret,
			Gender:   "male",
			Role:     domain.RoleUser,
		},
	}

	for _, seed := range seeds {
		_, err := r.identities.GetByEmail(ctx, seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrIdentityNotFound) {
			return storageErr(err)
		}
		if _, err := r.Create(ctx, seed); err != nil {
			// a concurrent startup may have won the race; that still
			// satisfies the seed
			if errors.Is(err, ErrDuplicateIdentity) {
				continue
			}
			return fmt.Errorf("seed %s: %w", seed.Email, err)
		}
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
