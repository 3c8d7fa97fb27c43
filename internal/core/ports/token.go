package ports

import (
	"time"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

// TokenIssuer mints signed session tokens embedding identity claims.
type TokenIssuer interface {
	Issue(claims domain.Claims) (token string, expiresAt time.Time, err error)
}

// TokenVerifier validates a token's signature and expiry and extracts its
// claims. All failure modes collapse to domain.ErrInvalidToken so callers
// cannot tell which check rejected the token.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
