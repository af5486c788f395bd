package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/storage"
)

// MockPreconfirmRepository является моком для storage.PreconfirmRepository интерфейса.
// WithinTransaction вызывает fn с Writer, если он задан.
type MockPreconfirmRepository struct {
	mock.Mock
	Writer storage.CheckWriter
}

// WithinTransaction мок для WithinTransaction
func (m *MockPreconfirmRepository) WithinTransaction(ctx context.Context, fn func(w storage.CheckWriter) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	if m.Writer != nil {
		return fn(m.Writer)
	}
	return nil
}

// GetCheckByPaymentID мок для GetCheckByPaymentID
func (m *MockPreconfirmRepository) GetCheckByPaymentID(ctx context.Context, paymentID string) (*models.CheckRecord, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckRecord), args.Error(1)
}

// ListChecks мок для ListChecks
func (m *MockPreconfirmRepository) ListChecks(ctx context.Context, limit int) ([]*models.CheckRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CheckRecord), args.Error(1)
}

// ClearAll мок для ClearAll
func (m *MockPreconfirmRepository) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CreateApproval мок для CreateApproval
func (m *MockPreconfirmRepository) CreateApproval(ctx context.Context, approval *models.ApprovalRecord) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

// GetApproval мок для GetApproval
func (m *MockPreconfirmRepository) GetApproval(ctx context.Context, id int64) (*models.ApprovalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApprovalRecord), args.Error(1)
}

// ListApprovals мок для ListApprovals
func (m *MockPreconfirmRepository) ListApprovals(ctx context.Context, paymentID string) ([]*models.ApprovalRecord, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ApprovalRecord), args.Error(1)
}

// ResolveApproval мок для ResolveApproval
func (m *MockPreconfirmRepository) ResolveApproval(ctx context.Context, id int64, status models.ApprovalStatus, userID string, notes *string, at time.Time) (*models.ApprovalRecord, error) {
	args := m.Called(ctx, id, status, userID, notes, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApprovalRecord), args.Error(1)
}

// SaveDocument мок для SaveDocument
func (m *MockPreconfirmRepository) SaveDocument(ctx context.Context, doc *models.DocumentRecord) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// ListDocuments мок для ListDocuments
func (m *MockPreconfirmRepository) ListDocuments(ctx context.Context, paymentID string) ([]*models.DocumentRecord, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DocumentRecord), args.Error(1)
}

// MockCheckWriter является моком для storage.CheckWriter интерфейса
type MockCheckWriter struct {
	mock.Mock
}

// InsertCheck мок для InsertCheck
func (m *MockCheckWriter) InsertCheck(ctx context.Context, check *models.CheckRecord) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

// InsertApproval мок для InsertApproval
func (m *MockCheckWriter) InsertApproval(ctx context.Context, approval *models.ApprovalRecord) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}
