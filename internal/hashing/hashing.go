package hashing

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher derives and verifies salted one-way hashes of secrets.
type Hasher interface {
	Hash(ctx context.Context, secret string) (string, error)
	Compare(ctx context.Context, hash, candidate string) (bool, error)
}

// Pool is a bcrypt Hasher that bounds the number of concurrently running
// hash computations. Bcrypt is deliberately expensive; without a bound a
// burst of logins could monopolize every CPU and stall unrelated requests.
type Pool struct {
	cost int
	sem  chan struct{}
}

func NewPool(cost, maxConcurrent int) *Pool {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Pool{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

// Hash derives a salted bcrypt hash of secret. The salt is generated fresh
// by bcrypt on every call and is embedded in the returned hash.
func (p *Pool) Hash(ctx context.Context, secret string) (string, error) {
	if err := p.acquire(ctx); err != nil {
		return "", err
	}
	defer p.release()

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether candidate matches the stored hash. A mismatch is
// not an error; errors indicate a malformed hash or a cancelled context.
func (p *Pool) Compare(ctx context.Context, hash, candidate string) (bool, error) {
	if err := p.acquire(ctx); err != nil {
		return false, err
	}
	defer p.release()

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("compare secret: %w", err)
}

func (p *Pool) acquire(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.sem <- struct{}{}:
		return nil
	}
}

func (p *Pool) release() { <-p.sem }
