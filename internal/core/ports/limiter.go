package ports

import "context"

// LoginLimiter throttles repeated authentication attempts per identifier.
type LoginLimiter interface {
	// Allow records one attempt and reports whether it is within the window
	// budget.
	Allow(ctx context.Context, identifier string) (bool, error)
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, identifier string) error
}
