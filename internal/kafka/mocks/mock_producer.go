package mocks

import (
	"payment-preconfirm/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProducer является моком для kafka.Producer интерфейса
type MockProducer struct {
	mock.Mock
}

// SendPreconfirmEvent мок для SendPreconfirmEvent
func (m *MockProducer) SendPreconfirmEvent(event *models.KafkaPreconfirmEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// Close мок для Close
func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
