package mocks

import (
	"context"

	"payment-preconfirm/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// SaveDecision мок для SaveDecision
func (m *MockClientInterface) SaveDecision(ctx context.Context, paymentID string, outcome *models.DecisionOutcome) error {
	args := m.Called(ctx, paymentID, outcome)
	return args.Error(0)
}

// GetDecision мок для GetDecision
func (m *MockClientInterface) GetDecision(ctx context.Context, paymentID string) (*models.DecisionOutcome, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DecisionOutcome), args.Error(1)
}

// IncrementDecisionStats мок для IncrementDecisionStats
func (m *MockClientInterface) IncrementDecisionStats(ctx context.Context, decision models.Decision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

// IncrementTriggerStats мок для IncrementTriggerStats
func (m *MockClientInterface) IncrementTriggerStats(ctx context.Context, triggers []string) error {
	args := m.Called(ctx, triggers)
	return args.Error(0)
}

// IncrementUserDailyCount мок для IncrementUserDailyCount
func (m *MockClientInterface) IncrementUserDailyCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MarkEscalated мок для MarkEscalated
func (m *MockClientInterface) MarkEscalated(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// IsEscalated мок для IsEscalated
func (m *MockClientInterface) IsEscalated(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// GetDecisionStats мок для GetDecisionStats
func (m *MockClientInterface) GetDecisionStats(ctx context.Context) (*models.DecisionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DecisionStats), args.Error(1)
}

// ClearPreconfirmData мок для ClearPreconfirmData
func (m *MockClientInterface) ClearPreconfirmData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
