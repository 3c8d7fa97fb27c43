package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

const defaultTokenTTL = 72 * time.Hour

// tokenClaims is the wire shape of the session token payload.
type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   string `json:"userid,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens against a single
// process-wide secret handed in at construction. Rotating the secret
// invalidates every outstanding token; no revocation list exists.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a signed token carrying the given claims. The issued-at stamp
// makes tokens minted at different times distinct even for identical claims.
func (s *TokenService) Issue(claims domain.Claims) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)

	tc := tokenClaims{
		Username: claims.Username,
		Role:     claims.Role,
		UserID:   claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify returns the embedded claims iff the signature validates and the
// token has not expired. Malformed, tampered, and expired tokens all fail
// with ErrInvalidToken; the caller is not told which check rejected it.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Claims{
		Username: tc.Username,
		Role:     tc.Role,
		UserID:   tc.UserID,
	}, nil
}
