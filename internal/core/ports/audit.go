package ports

import (
	"context"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

// AuditService persists a single authentication event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts events for asynchronous recording. Submit must not block
// the authentication request path.
type AuditSink interface {
	Submit(event domain.AuthEvent)
}

// AuditRepository is the persistence boundary for authentication events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
}
