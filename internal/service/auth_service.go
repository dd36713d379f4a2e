package service

import (
	"context"
	"errors"

	"disaster-watch/internal/domain"
	"disaster-watch/internal/repository"
)

// RegisterParams is a validated registration request.
type RegisterParams struct {
	Name     string
	Username string
	Phone    string
	Email    string
	Password string
	Gender   string
	Role     string
}

// LoginParams is a validated login request. Role is the role the caller
// claims to hold.
type LoginParams struct {
	Username string
	Password string
	Role     string
}

// LoginResult conveys identity and role only; no secret or hash ever
// leaves the service layer.
type LoginResult struct {
	ID       int64
	Username string
	Role     domain.Role
}

// AuthService brokers registration and login requests against the Registry.
// Both operations are stateless single-shot requests; no session tokens are
// issued.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) error
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

type authService struct {
	registry Registry
}

func NewAuthService(registry Registry) AuthService {
	return &authService{registry: registry}
}

// Register delegates to the registry and reports collisions as
// ErrDuplicateIdentity without revealing which field collided.
func (s *authService) Register(ctx context.Context, params RegisterParams) error {
	_, err := s.registry.Create(ctx, CreateParams{
		Name:     params.Name,
		Username: params.Username,
		Phone:    params.Phone,
		Email:    params.Email,
		Secret:   params.Password,
		Gender:   params.Gender,
		Role:     domain.Role(params.Role),
	})
	return err
}

// Login verifies the secret before comparing roles, so a role-mismatch
// response never confirms a valid username/secret pair by itself.
func (s *authService) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	identity, err := s.registry.FindByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.registry.VerifySecret(ctx, identity, params.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if identity.Role != domain.Role(params.Role) {
		return nil, ErrRoleMismatch
	}

	return &LoginResult{
		ID:       identity.ID,
		Username: identity.Username,
		Role:     identity.Role,
	}, nil
}
