package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finvault/bank-gateway/internal/core/domain"
	"github.com/finvault/bank-gateway/internal/core/ports"
)

const shortIDLen = 7

// AdminBypass is an out-of-band administrative identity that authenticates
// without a credential store entry. Zero value means disabled.
type AdminBypass struct {
	Username string
	Password string
	Role     string
}

func (b AdminBypass) enabled() bool { return b.Username != "" }

// AuthService implements the authentication flow and administrative user
// management on top of the credential store.
type AuthService struct {
	repo    ports.UserRepository
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	audit   ports.AuditSink
	bypass  AdminBypass
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, limiter ports.LoginLimiter, audit ports.AuditSink, bypass AdminBypass) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, audit: audit, bypass: bypass}
}

// Login authenticates an identifier/password pair and mints a session token.
// The admin bypass branch is evaluated before any store lookup; a miss there
// falls through to the normal flow so a stored user may share the bypass name.
func (s *AuthService) Login(ctx context.Context, identifier, password, remoteIP string) (string, *domain.User, time.Time, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", nil, time.Time{}, domain.ErrUserNotFound
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, identifier)
		// Limiter outages must not lock everyone out; fail open.
		if err == nil && !allowed {
			s.record(identifier, remoteIP, domain.ErrTooManyAttempts)
			return "", nil, time.Time{}, domain.ErrTooManyAttempts
		}
	}

	if s.bypass.enabled() && identifier == s.bypass.Username &&
		subtle.ConstantTimeCompare([]byte(password), []byte(s.bypass.Password)) == 1 {
		user := &domain.User{Username: s.bypass.Username, Role: s.bypass.Role}
		token, expiresAt, err := s.issue(ctx, user, identifier, remoteIP, true)
		return token, user, expiresAt, err
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(identifier, remoteIP, domain.ErrUserNotFound)
		}
		return "", nil, time.Time{}, err
	}

	if err := verifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrIncorrectPassword) {
			s.record(identifier, remoteIP, domain.ErrIncorrectPassword)
		}
		return "", nil, time.Time{}, err
	}

	token, expiresAt, err := s.issue(ctx, user, identifier, remoteIP, false)
	return token, user, expiresAt, err
}

func (s *AuthService) issue(ctx context.Context, user *domain.User, identifier, remoteIP string, bypass bool) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.Issue(domain.Claims{
		Username: user.Username,
		Role:     user.Role,
		UserID:   user.ID,
	})
	if err != nil {
		return "", time.Time{}, err
	}

	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, identifier)
	}
	if s.audit != nil {
		s.audit.Submit(domain.AuthEvent{
			Username:  user.Username,
			Outcome:   domain.AuthOutcomeSuccess,
			RemoteIP:  remoteIP,
			Bypass:    bypass,
			Timestamp: time.Now().UTC(),
		})
	}
	return token, expiresAt, nil
}

func (s *AuthService) record(identifier, remoteIP string, cause error) {
	if s.audit == nil {
		return
	}
	s.audit.Submit(domain.AuthEvent{
		Username:  identifier,
		Outcome:   domain.AuthOutcomeFailure,
		Reason:    cause.Error(),
		RemoteIP:  remoteIP,
		Timestamp: time.Now().UTC(),
	})
}

// verifyPassword runs the bcrypt comparison to completion. A hash that bcrypt
// cannot parse signals store corruption, not a wrong password.
func verifyPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrIncorrectPassword
	default:
		return domain.ErrCorruptCredential
	}
}

// Enroll hashes the supplied secret and persists a new user with a short
// unique id. The plaintext never reaches the repository.
func (s *AuthService) Enroll(ctx context.Context, username, email, role, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidEnrollment
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           newShortID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// newShortID derives a 7-character id from a v4 UUID.
func newShortID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:shortIDLen]
}
