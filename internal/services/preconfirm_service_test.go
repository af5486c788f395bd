package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payment-preconfirm/internal/apperrors"
	kafkamocks "payment-preconfirm/internal/kafka/mocks"
	"payment-preconfirm/internal/models"
	redismocks "payment-preconfirm/internal/redis/mocks"
	storagemocks "payment-preconfirm/internal/storage/mocks"
)

func newDecisionRequest(paymentID string, value int64) *models.DecisionRequest {
	amount := decimal.NewFromInt(value)
	return &models.DecisionRequest{
		PaymentID:   paymentID,
		UserID:      "user-1",
		Amount:      models.Amount{Currency: "GBP", Value: &amount},
		Destination: models.Destination{Country: "GB"},
		Payee:       models.Payee{ID: "payee-1"},
	}
}

type serviceFixture struct {
	repo     *storagemocks.MockPreconfirmRepository
	writer   *storagemocks.MockCheckWriter
	producer *kafkamocks.MockProducer
	cache    *redismocks.MockClientInterface
	service  PreconfirmService
}

func newServiceFixture() *serviceFixture {
	writer := new(storagemocks.MockCheckWriter)
	repo := &storagemocks.MockPreconfirmRepository{Writer: writer}
	producer := new(kafkamocks.MockProducer)
	cache := new(redismocks.MockClientInterface)

	return &serviceFixture{
		repo:     repo,
		writer:   writer,
		producer: producer,
		cache:    cache,
		service: NewPreconfirmService(PreconfirmDeps{
			Repo:     repo,
			Producer: producer,
			Cache:    cache,
		}),
	}
}

func TestPreconfirmService_Decide_Allow(t *testing.T) {
	f := newServiceFixture()
	req := newDecisionRequest("pay-allow", 50)
	audit := models.AuditInfo{IP: "10.0.0.1", UserAgent: "curl/8"}

	f.repo.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil)
	f.writer.On("InsertCheck", mock.Anything, mock.AnythingOfType("*models.CheckRecord")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.CheckRecord).ID = 11
		}).
		Return(nil)
	f.producer.On("SendPreconfirmEvent", mock.AnythingOfType("*models.KafkaPreconfirmEvent")).Return(nil)
	f.cache.On("SaveDecision", mock.Anything, "pay-allow", mock.AnythingOfType("*models.DecisionOutcome")).Return(nil)

	outcome, err := f.service.Decide(context.Background(), req, audit)

	require.NoError(t, err)
	assert.Equal(t, models.DecisionAllow, outcome.Decision)
	assert.Empty(t, outcome.RequiredForms)
	assert.Empty(t, outcome.RequiredActions)
	assert.Empty(t, outcome.Messages)
	assert.Empty(t, outcome.Approvals)

	check := f.writer.Calls[0].Arguments.Get(1).(*models.CheckRecord)
	assert.Equal(t, "pay-allow", check.PaymentID)
	assert.Equal(t, []string{}, check.RiskTriggers)
	assert.Equal(t, "10.0.0.1", check.Audit.IP)
	assert.False(t, check.Audit.Timestamp.IsZero())

	event := f.producer.Calls[0].Arguments.Get(0).(*models.KafkaPreconfirmEvent)
	assert.Equal(t, models.EventTypePreconfirmCompleted, event.EventType)
	assert.Equal(t, int64(11), event.Data.CheckID)
	assert.Equal(t, "50", event.Data.Amount)

	f.writer.AssertNotCalled(t, "InsertApproval", mock.Anything, mock.Anything)
	f.repo.AssertExpectations(t)
	f.producer.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestPreconfirmService_Decide_MakerCheckerCreatesPendingApproval(t *testing.T) {
	f := newServiceFixture()
	req := newDecisionRequest("pay-mc", 50000)

	f.repo.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil)
	f.writer.On("InsertCheck", mock.Anything, mock.Anything).Return(nil)
	f.writer.On("InsertApproval", mock.Anything, mock.AnythingOfType("*models.ApprovalRecord")).Return(nil)
	f.producer.On("SendPreconfirmEvent", mock.Anything).Return(nil)
	f.cache.On("SaveDecision", mock.Anything, "pay-mc", mock.Anything).Return(nil)

	outcome, err := f.service.Decide(context.Background(), req, models.AuditInfo{})

	require.NoError(t, err)
	assert.Equal(t, models.DecisionRequireMakerChecker, outcome.Decision)
	assert.Equal(t, []models.ApprovalRequirement{{Role: models.RoleChecker, Required: true}}, outcome.Approvals)

	f.writer.AssertNumberOfCalls(t, "InsertApproval", 1)
	approval := f.writer.Calls[1].Arguments.Get(1).(*models.ApprovalRecord)
	assert.Equal(t, "pay-mc", approval.PaymentID)
	assert.Equal(t, models.RoleChecker, approval.Role)
	assert.Equal(t, models.ApprovalPending, approval.Status)
	assert.Empty(t, approval.UserID)
}

func TestPreconfirmService_Decide_ValidationError(t *testing.T) {
	f := newServiceFixture()
	req := newDecisionRequest("", 50)

	outcome, err := f.service.Decide(context.Background(), req, models.AuditInfo{})

	assert.Nil(t, outcome)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	f.repo.AssertNotCalled(t, "WithinTransaction", mock.Anything, mock.Anything)
}

func TestPreconfirmService_Decide_ConflictSkipsSideEffects(t *testing.T) {
	f := newServiceFixture()
	req := newDecisionRequest("pay-dup", 50)

	f.repo.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil)
	f.writer.On("InsertCheck", mock.Anything, mock.Anything).
		Return(apperrors.Conflict("decision already recorded for payment", errors.New("UNIQUE constraint failed")))

	outcome, err := f.service.Decide(context.Background(), req, models.AuditInfo{})

	assert.Nil(t, outcome)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	f.producer.AssertNotCalled(t, "SendPreconfirmEvent", mock.Anything)
	f.cache.AssertNotCalled(t, "SaveDecision", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreconfirmService_Decide_TransactionErrorIsRetryable(t *testing.T) {
	f := newServiceFixture()
	req := newDecisionRequest("pay-tx", 50)

	f.repo.On("WithinTransaction", mock.Anything, mock.Anything).Return(errors.New("disk I/O error"))

	outcome, err := f.service.Decide(context.Background(), req, models.AuditInfo{})

	assert.Nil(t, outcome)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTransaction))
	assert.True(t, apperrors.IsRetryable(err))
	f.producer.AssertNotCalled(t, "SendPreconfirmEvent", mock.Anything)
}

func TestPreconfirmService_Decide_SideEffectFailuresAreNotReturned(t *testing.T) {
	f := newServiceFixture()
	req := newDecisionRequest("pay-side", 50)
	req.Answers = models.Answers{"pressure_or_secrecy": true}

	f.repo.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil)
	f.writer.On("InsertCheck", mock.Anything, mock.Anything).Return(nil)
	f.producer.On("SendPreconfirmEvent", mock.Anything).Return(errors.New("kafka down"))
	f.cache.On("SaveDecision", mock.Anything, "pay-side", mock.Anything).Return(errors.New("redis down"))

	outcome, err := f.service.Decide(context.Background(), req, models.AuditInfo{})

	require.NoError(t, err)
	assert.Equal(t, models.DecisionBlock, outcome.Decision)
	assert.Len(t, outcome.Messages, 1)
}

func TestPreconfirmService_Decide_WithoutOptionalCollaborators(t *testing.T) {
	writer := new(storagemocks.MockCheckWriter)
	repo := &storagemocks.MockPreconfirmRepository{Writer: writer}
	service := NewPreconfirmService(PreconfirmDeps{Repo: repo})

	repo.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil)
	writer.On("InsertCheck", mock.Anything, mock.Anything).Return(nil)

	outcome, err := service.Decide(context.Background(), newDecisionRequest("pay-min", 50), models.AuditInfo{})

	require.NoError(t, err)
	assert.Equal(t, models.DecisionAllow, outcome.Decision)
}

func TestPreconfirmService_GetCheck(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	check := &models.CheckRecord{PaymentID: "pay-1", Decision: models.DecisionStepUp}
	approvals := []*models.ApprovalRecord{{ID: 1, PaymentID: "pay-1", Role: models.RoleChecker}}
	documents := []*models.DocumentRecord{}

	f.repo.On("GetCheckByPaymentID", ctx, "pay-1").Return(check, nil)
	f.repo.On("ListApprovals", ctx, "pay-1").Return(approvals, nil)
	f.repo.On("ListDocuments", ctx, "pay-1").Return(documents, nil)

	details, err := f.service.GetCheck(ctx, "pay-1")

	require.NoError(t, err)
	assert.Equal(t, check, details.Check)
	assert.Equal(t, approvals, details.Approvals)
	assert.Equal(t, documents, details.Documents)
}

func TestPreconfirmService_GetCheck_NotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	f.repo.On("GetCheckByPaymentID", ctx, "missing").Return(nil, nil)

	details, err := f.service.GetCheck(ctx, "missing")

	assert.Nil(t, details)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestPreconfirmService_ListChecks_ClampsLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"Default", 0, 100},
		{"Negative", -5, 100},
		{"Within range", 20, 20},
		{"Above max", 10000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			ctx := context.Background()
			f.repo.On("ListChecks", ctx, tt.expected).Return(nil, nil)

			checks, err := f.service.ListChecks(ctx, tt.limit)

			require.NoError(t, err)
			assert.NotNil(t, checks)
			f.repo.AssertExpectations(t)
		})
	}
}

func TestPreconfirmService_GetCachedDecision_Hit(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	cached := &models.DecisionOutcome{Decision: models.DecisionBlock}
	f.cache.On("GetDecision", ctx, "pay-1").Return(cached, nil)

	outcome, err := f.service.GetCachedDecision(ctx, "pay-1")

	require.NoError(t, err)
	assert.Equal(t, cached, outcome)
	f.repo.AssertNotCalled(t, "GetCheckByPaymentID", mock.Anything, mock.Anything)
}

func TestPreconfirmService_GetCachedDecision_MissFallsBackToStore(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	check := &models.CheckRecord{
		PaymentID:       "pay-1",
		Decision:        models.DecisionRequireMakerChecker,
		RequiredForms:   []string{},
		RequiredActions: []string{"request_supporting_docs"},
		Messages:        []string{"m1", "m2"},
	}

	f.cache.On("GetDecision", ctx, "pay-1").Return(nil, errors.New("redis down"))
	f.repo.On("GetCheckByPaymentID", ctx, "pay-1").Return(check, nil)
	f.cache.On("SaveDecision", ctx, "pay-1", mock.Anything).Return(nil)

	outcome, err := f.service.GetCachedDecision(ctx, "pay-1")

	require.NoError(t, err)
	assert.Equal(t, models.DecisionRequireMakerChecker, outcome.Decision)
	assert.Equal(t, []string{"request_supporting_docs"}, outcome.RequiredActions)
	assert.Equal(t, []models.ApprovalRequirement{{Role: models.RoleChecker, Required: true}}, outcome.Approvals)
	f.cache.AssertExpectations(t)
}

func TestPreconfirmService_GetCachedDecision_MissIgnoresLaterApprovals(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	check := &models.CheckRecord{
		PaymentID: "pay-block",
		Decision:  models.DecisionBlock,
		Messages:  []string{"blocked"},
	}

	f.cache.On("GetDecision", ctx, "pay-block").Return(nil, nil)
	f.repo.On("GetCheckByPaymentID", ctx, "pay-block").Return(check, nil)
	f.cache.On("SaveDecision", ctx, "pay-block", mock.MatchedBy(func(outcome *models.DecisionOutcome) bool {
		return outcome.Decision == models.DecisionBlock && len(outcome.Approvals) == 0
	})).Return(nil)

	outcome, err := f.service.GetCachedDecision(ctx, "pay-block")

	require.NoError(t, err)
	assert.Equal(t, models.DecisionBlock, outcome.Decision)
	assert.Empty(t, outcome.Approvals)
	assert.Empty(t, outcome.RequiredForms)
	assert.Empty(t, outcome.RequiredActions)
	f.repo.AssertNotCalled(t, "ListApprovals", mock.Anything, mock.Anything)
	f.cache.AssertExpectations(t)
}

func TestPreconfirmService_GetCachedDecision_MissNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	f.cache.On("GetDecision", ctx, "pay-x").Return(nil, nil)
	f.repo.On("GetCheckByPaymentID", ctx, "pay-x").Return(nil, nil)

	_, err := f.service.GetCachedDecision(ctx, "pay-x")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	f.cache.AssertNotCalled(t, "SaveDecision", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreconfirmService_ClearAll(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	f.repo.On("ClearAll", ctx).Return(nil)
	f.cache.On("ClearPreconfirmData", ctx).Return(errors.New("redis down"))

	assert.NoError(t, f.service.ClearAll(ctx))
	f.repo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}
