package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBlobStore является моком для blobstore.BlobStore интерфейса
type MockBlobStore struct {
	mock.Mock
}

// Put мок для Put
func (m *MockBlobStore) Put(ctx context.Context, paymentID, originalName string, data []byte) (string, error) {
	args := m.Called(ctx, paymentID, originalName, data)
	return args.String(0), args.Error(1)
}

// Delete мок для Delete
func (m *MockBlobStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
