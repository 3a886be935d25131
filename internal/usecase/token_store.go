package usecase

import (
	"context"
	"time"

	"go-clinic-registry/pkg/jwt"

	"github.com/google/uuid"
)

// TokenStore is the allow-list of issued token ids. A token missing from the
// store is treated as revoked even if its signature still verifies.
type TokenStore interface {
	Save(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error
	Delete(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error
	Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error)
}
