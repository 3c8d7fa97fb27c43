package ports

import (
	"context"
	"time"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

type AuthService interface {
	// Login runs the full authentication flow for an identifier/password pair
	// and returns a signed session token with its expiry on success.
	Login(ctx context.Context, identifier, password, remoteIP string) (string, *domain.User, time.Time, error)
	// Enroll creates a user with a freshly hashed password and a short id.
	Enroll(ctx context.Context, username, email, role, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
