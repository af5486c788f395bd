package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/models"
	storagemocks "payment-preconfirm/internal/storage/mocks"
)

func newApprovalService(repo *storagemocks.MockPreconfirmRepository, now time.Time) *ApprovalServiceImpl {
	service := NewApprovalService(repo, nil).(*ApprovalServiceImpl)
	service.now = func() time.Time { return now }
	return service
}

func TestApprovalService_CreateApprovalRequirement(t *testing.T) {
	repo := new(storagemocks.MockPreconfirmRepository)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	service := newApprovalService(repo, now)
	ctx := context.Background()

	repo.On("GetCheckByPaymentID", ctx, "pay-1").Return(&models.CheckRecord{PaymentID: "pay-1"}, nil)
	repo.On("CreateApproval", ctx, mock.AnythingOfType("*models.ApprovalRecord")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.ApprovalRecord).ID = 5
		}).
		Return(nil)

	approval, err := service.CreateApprovalRequirement(ctx, "pay-1", models.RoleMaker)

	require.NoError(t, err)
	assert.Equal(t, int64(5), approval.ID)
	assert.Equal(t, models.RoleMaker, approval.Role)
	assert.Equal(t, models.ApprovalPending, approval.Status)
	assert.Equal(t, now, approval.CreatedAt)
	repo.AssertExpectations(t)
}

func TestApprovalService_CreateApprovalRequirement_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid role", func(t *testing.T) {
		repo := new(storagemocks.MockPreconfirmRepository)
		service := newApprovalService(repo, time.Now())

		_, err := service.CreateApprovalRequirement(ctx, "pay-1", models.ApprovalRole("auditor"))

		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		repo.AssertNotCalled(t, "CreateApproval", mock.Anything, mock.Anything)
	})

	t.Run("Unknown payment", func(t *testing.T) {
		repo := new(storagemocks.MockPreconfirmRepository)
		service := newApprovalService(repo, time.Now())
		repo.On("GetCheckByPaymentID", ctx, "missing").Return(nil, nil)

		_, err := service.CreateApprovalRequirement(ctx, "missing", models.RoleChecker)

		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		repo.AssertNotCalled(t, "CreateApproval", mock.Anything, mock.Anything)
	})
}

func TestApprovalService_ResolveApproval(t *testing.T) {
	repo := new(storagemocks.MockPreconfirmRepository)
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	service := newApprovalService(repo, now)
	ctx := context.Background()

	pending := &models.ApprovalRecord{ID: 3, PaymentID: "pay-1", Role: models.RoleChecker, Status: models.ApprovalPending}
	notes := "looks fine"
	resolved := &models.ApprovalRecord{ID: 3, PaymentID: "pay-1", Role: models.RoleChecker, Status: models.ApprovalApproved, UserID: "checker-1", Notes: &notes}

	repo.On("GetApproval", ctx, int64(3)).Return(pending, nil)
	repo.On("ResolveApproval", ctx, int64(3), models.ApprovalApproved, "checker-1", &notes, now).Return(resolved, nil)

	got, err := service.ResolveApproval(ctx, "pay-1", 3, models.ApprovalApproved, "checker-1", "looks fine")

	require.NoError(t, err)
	assert.Equal(t, resolved, got)
	repo.AssertExpectations(t)
}

func TestApprovalService_ResolveApproval_EmptyNotesStoredAsNull(t *testing.T) {
	repo := new(storagemocks.MockPreconfirmRepository)
	now := time.Now()
	service := newApprovalService(repo, now)
	ctx := context.Background()

	repo.On("GetApproval", ctx, int64(3)).Return(&models.ApprovalRecord{ID: 3, PaymentID: "pay-1"}, nil)
	repo.On("ResolveApproval", ctx, int64(3), models.ApprovalRejected, "checker-1", (*string)(nil), now).
		Return(&models.ApprovalRecord{ID: 3, PaymentID: "pay-1", Status: models.ApprovalRejected}, nil)

	_, err := service.ResolveApproval(ctx, "pay-1", 3, models.ApprovalRejected, "checker-1", "")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestApprovalService_ResolveApproval_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		paymentID  string
		outcome    models.ApprovalStatus
		userID     string
		stored     *models.ApprovalRecord
		resolveErr error
		expected   error
	}{
		{
			name:     "Outcome pending is invalid",
			outcome:  models.ApprovalPending,
			userID:   "u",
			expected: apperrors.ErrValidation,
		},
		{
			name:     "Missing user",
			outcome:  models.ApprovalApproved,
			userID:   " ",
			expected: apperrors.ErrValidation,
		},
		{
			name:      "Unknown approval",
			paymentID: "pay-1",
			outcome:   models.ApprovalApproved,
			userID:    "u",
			expected:  apperrors.ErrNotFound,
		},
		{
			name:      "Approval of another payment",
			paymentID: "pay-1",
			outcome:   models.ApprovalApproved,
			userID:    "u",
			stored:    &models.ApprovalRecord{ID: 9, PaymentID: "pay-2"},
			expected:  apperrors.ErrNotFound,
		},
		{
			name:       "Already resolved",
			paymentID:  "pay-1",
			outcome:    models.ApprovalRejected,
			userID:     "u",
			stored:     &models.ApprovalRecord{ID: 9, PaymentID: "pay-1", Status: models.ApprovalApproved},
			resolveErr: apperrors.Conflict("approval already resolved", nil),
			expected:   apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(storagemocks.MockPreconfirmRepository)
			service := newApprovalService(repo, time.Now())

			repo.On("GetApproval", ctx, int64(9)).Return(tt.stored, nil).Maybe()
			repo.On("ResolveApproval", ctx, int64(9), mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.resolveErr).Maybe()

			got, err := service.ResolveApproval(ctx, tt.paymentID, 9, tt.outcome, tt.userID, "")

			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), err.Error())
		})
	}
}

func TestApprovalService_ListApprovals(t *testing.T) {
	repo := new(storagemocks.MockPreconfirmRepository)
	service := newApprovalService(repo, time.Now())
	ctx := context.Background()
	approvals := []*models.ApprovalRecord{{ID: 1}, {ID: 2}}

	repo.On("GetCheckByPaymentID", ctx, "pay-1").Return(&models.CheckRecord{}, nil)
	repo.On("ListApprovals", ctx, "pay-1").Return(approvals, nil)

	got, err := service.ListApprovals(ctx, "pay-1")

	require.NoError(t, err)
	assert.Equal(t, approvals, got)
}
