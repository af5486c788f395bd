package services

import (
	"context"
	"strings"
	"time"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/logger"
	"payment-preconfirm/internal/metrics"
	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/storage"
)

// ApprovalServiceImpl реализует интерфейс ApprovalService.
// Решение о том, когда платеж полностью согласован, здесь не принимается.
type ApprovalServiceImpl struct {
	repo    storage.PreconfirmRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewApprovalService(repo storage.PreconfirmRepository, m *metrics.Metrics) ApprovalService {
	return &ApprovalServiceImpl{
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
}

func (s *ApprovalServiceImpl) CreateApprovalRequirement(ctx context.Context, paymentID string, role models.ApprovalRole) (*models.ApprovalRecord, error) {
	if !role.Valid() {
		return nil, apperrors.Validation("role must be one of maker, checker")
	}
	if err := s.ensureCheck(ctx, paymentID); err != nil {
		return nil, err
	}

	approval := &models.ApprovalRecord{
		PaymentID: paymentID,
		Role:      role,
		Status:    models.ApprovalPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateApproval(ctx, approval); err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventApprovalCreated, serviceName, "sqlite", map[string]interface{}{
		"approval_id": approval.ID,
		"payment_id":  paymentID,
		"role":        string(role),
	})
	return approval, nil
}

func (s *ApprovalServiceImpl) ResolveApproval(
	ctx context.Context,
	paymentID string,
	approvalID int64,
	outcome models.ApprovalStatus,
	userID string,
	notes string,
) (*models.ApprovalRecord, error) {
	if outcome != models.ApprovalApproved && outcome != models.ApprovalRejected {
		return nil, apperrors.Validation("outcome must be one of approved, rejected")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.Validation("userId is required")
	}

	existing, err := s.repo.GetApproval(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.PaymentID != paymentID {
		return nil, apperrors.NotFound("approval %d not found for payment %s", approvalID, paymentID)
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	resolved, err := s.repo.ResolveApproval(ctx, approvalID, outcome, userID, notesPtr, s.now())
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementApprovalResolved(string(resolved.Role), string(resolved.Status))
	logger.LogEvent(logger.EventApprovalResolved, serviceName, "sqlite", map[string]interface{}{
		"approval_id": resolved.ID,
		"payment_id":  resolved.PaymentID,
		"role":        string(resolved.Role),
		"status":      string(resolved.Status),
		"user_id":     userID,
	})
	return resolved, nil
}

func (s *ApprovalServiceImpl) ListApprovals(ctx context.Context, paymentID string) ([]*models.ApprovalRecord, error) {
	if err := s.ensureCheck(ctx, paymentID); err != nil {
		return nil, err
	}
	return s.repo.ListApprovals(ctx, paymentID)
}

// ensureCheck возвращает NotFound, если по платежу нет записи решения
func (s *ApprovalServiceImpl) ensureCheck(ctx context.Context, paymentID string) error {
	return ensureCheck(ctx, s.repo, paymentID)
}

func ensureCheck(ctx context.Context, repo storage.CheckRepository, paymentID string) error {
	check, err := repo.GetCheckByPaymentID(ctx, paymentID)
	if err != nil {
		return err
	}
	if check == nil {
		return apperrors.NotFound("no decision recorded for payment %s", paymentID)
	}
	return nil
}
