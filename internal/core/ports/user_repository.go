package ports

import (
	"context"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

// UserRepository defines the credential store interface.
type UserRepository interface {
	// FindByIdentifier resolves a login identifier against username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// DeleteByID removes the user with the given short id, not the store's
	// primary key.
	DeleteByID(ctx context.Context, id string) error
}
