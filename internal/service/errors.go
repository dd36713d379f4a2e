package service

import "errors"

var (
	// ErrInvalidRequest indicates a registration is missing a required
	// identity field (empty or whitespace-only username or email).
	ErrInvalidRequest = errors.New("username and email are required")
	// ErrDuplicateIdentity indicates a registration collided with an
	// existing username or email. The message deliberately does not say
	// which field collided.
	ErrDuplicateIdentity = errors.New("username or email already exists")
	// ErrInvalidCredentials indicates an unknown username or a wrong
	// secret. The two cases are intentionally indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRoleMismatch indicates the secret was correct but the claimed
	// role does not match the stored role.
	ErrRoleMismatch = errors.New("selected role does not match user role")
	// ErrStorageUnavailable indicates the registry could not reach its
	// persistence layer.
	ErrStorageUnavailable = errors.New("identity storage unavailable")
)
