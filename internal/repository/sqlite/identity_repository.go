package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"disaster-watch/internal/domain"
	"disaster-watch/internal/repository"
)

const createIdentitiesTable = `
CREATE TABLE IF NOT EXISTS identities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	username TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	secret_hash TEXT NOT NULL,
	gender TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type IdentityRepository struct {
	db *sql.DB
}

func NewIdentityRepository(db *sql.DB) repository.IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createIdentitiesTable); err != nil {
		return fmt.Errorf("create identities table: %w", err)
	}
	return nil
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) (int64, error) {
	now := time.Now().UTC()
	identity.CreatedAt = now
	identity.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO identities (name, username, phone, email, secret_hash, gender, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		identity.Name,
		identity.Username,
		identity.Phone,
		identity.Email,
		identity.SecretHash,
		identity.Gender,
		string(identity.Role),
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("insert identity: %w", repository.ErrIdentityExists)
		}
		return 0, fmt.Errorf("insert identity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("identity last insert id: %w", err)
	}
	identity.ID = id
	return id, nil
}

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, username, phone, email, secret_hash, gender, role, created_at, updated_at
FROM identities
WHERE username = ?`,
		username,
	)
	return scanIdentity(row)
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, username, phone, email, secret_hash, gender, role, created_at, updated_at
FROM identities
WHERE email = ?`,
		email,
	)
	return scanIdentity(row)
}

func (r *IdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, username, phone, email, secret_hash, gender, role, created_at, updated_at
FROM identities
WHERE id = ?`,
		id,
	)
	return scanIdentity(row)
}

func (r *IdentityRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS(SELECT 1 FROM identities WHERE username = ? OR email = ?)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check identity exists: %w", err)
	}
	return exists, nil
}

func scanIdentity(row interface {
	Scan(dest ...any) error
}) (*domain.Identity, error) {
	var identity domain.Identity
	var role string
	if err := row.Scan(
		&identity.ID,
		&identity.Name,
		&identity.Username,
		&identity.Phone,
		&identity.Email,
		&identity.SecretHash,
		&identity.Gender,
		&role,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("scan identity: %w", err)
	}
	identity.Role = domain.Role(role)
	return &identity, nil
}
