package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payment-preconfirm/internal/models"
)

// MockPreconfirmService является моком для services.PreconfirmService интерфейса
type MockPreconfirmService struct {
	mock.Mock
}

// Decide мок для Decide
func (m *MockPreconfirmService) Decide(ctx context.Context, req *models.DecisionRequest, audit models.AuditInfo) (*models.DecisionOutcome, error) {
	args := m.Called(ctx, req, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DecisionOutcome), args.Error(1)
}

// GetCheck мок для GetCheck
func (m *MockPreconfirmService) GetCheck(ctx context.Context, paymentID string) (*models.CheckDetails, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckDetails), args.Error(1)
}

// ListChecks мок для ListChecks
func (m *MockPreconfirmService) ListChecks(ctx context.Context, limit int) ([]*models.CheckRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CheckRecord), args.Error(1)
}

// GetCachedDecision мок для GetCachedDecision
func (m *MockPreconfirmService) GetCachedDecision(ctx context.Context, paymentID string) (*models.DecisionOutcome, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DecisionOutcome), args.Error(1)
}

// ClearAll мок для ClearAll
func (m *MockPreconfirmService) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockApprovalService является моком для services.ApprovalService интерфейса
type MockApprovalService struct {
	mock.Mock
}

// CreateApprovalRequirement мок для CreateApprovalRequirement
func (m *MockApprovalService) CreateApprovalRequirement(ctx context.Context, paymentID string, role models.ApprovalRole) (*models.ApprovalRecord, error) {
	args := m.Called(ctx, paymentID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApprovalRecord), args.Error(1)
}

// ResolveApproval мок для ResolveApproval
func (m *MockApprovalService) ResolveApproval(ctx context.Context, paymentID string, approvalID int64, outcome models.ApprovalStatus, userID, notes string) (*models.ApprovalRecord, error) {
	args := m.Called(ctx, paymentID, approvalID, outcome, userID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApprovalRecord), args.Error(1)
}

// ListApprovals мок для ListApprovals
func (m *MockApprovalService) ListApprovals(ctx context.Context, paymentID string) ([]*models.ApprovalRecord, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ApprovalRecord), args.Error(1)
}

// MockDocumentService является моком для services.DocumentService интерфейса
type MockDocumentService struct {
	mock.Mock
}

// StoreDocument мок для StoreDocument
func (m *MockDocumentService) StoreDocument(ctx context.Context, paymentID string, docType models.DocumentType, data []byte, originalName string) (*models.DocumentRecord, error) {
	args := m.Called(ctx, paymentID, docType, data, originalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentRecord), args.Error(1)
}

// ListDocuments мок для ListDocuments
func (m *MockDocumentService) ListDocuments(ctx context.Context, paymentID string) ([]*models.DocumentRecord, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DocumentRecord), args.Error(1)
}

// MockNotificationService является моком для services.NotificationService интерфейса
type MockNotificationService struct {
	mock.Mock
}

// HandlePreconfirmEvent мок для HandlePreconfirmEvent
func (m *MockNotificationService) HandlePreconfirmEvent(ctx context.Context, event *models.KafkaPreconfirmEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// GetStats мок для GetStats
func (m *MockNotificationService) GetStats(ctx context.Context) (*models.DecisionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DecisionStats), args.Error(1)
}

// IsUserEscalated мок для IsUserEscalated
func (m *MockNotificationService) IsUserEscalated(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
