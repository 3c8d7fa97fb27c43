package service

import (
	"context"
	"fmt"

	"github.com/finvault/bank-gateway/internal/core/domain"
	"github.com/finvault/bank-gateway/internal/core/ports"
)

// AuditService persists authentication events handed off by the dispatcher.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if event.Username == "" {
		return fmt.Errorf("audit event missing username")
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}
	return nil
}
