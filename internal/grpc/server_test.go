package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/forms"
	"payment-preconfirm/internal/models"
	servicemocks "payment-preconfirm/internal/services/mocks"
)

type grpcFixture struct {
	preconfirm *servicemocks.MockPreconfirmService
	approvals  *servicemocks.MockApprovalService
	conn       *grpc.ClientConn
	client     *PreconfirmClient
}

func setupGRPC(t *testing.T) *grpcFixture {
	t.Helper()

	f := &grpcFixture{
		preconfirm: new(servicemocks.MockPreconfirmService),
		approvals:  new(servicemocks.MockApprovalService),
	}

	lis := bufconn.Listen(1 << 20)
	server := NewServer(NewPreconfirmGRPCServer(f.preconfirm, f.approvals, forms.NewCatalog()))
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f.conn = conn
	f.client = NewPreconfirmClient(conn)
	return f
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func sampleRequest() *models.DecisionRequest {
	value := decimal.NewFromInt(250)
	return &models.DecisionRequest{
		PaymentID:   "pay_grpc_1",
		UserID:      "user_1",
		Amount:      models.Amount{Currency: "GBP", Value: &value},
		Destination: models.Destination{Country: "GB"},
		Payee:       models.Payee{ID: "payee_1"},
	}
}

func TestGRPC_Decide(t *testing.T) {
	f := setupGRPC(t)

	outcome := &models.DecisionOutcome{
		Decision:        models.DecisionStepUp,
		RequiredForms:   []string{"intl_extension_v1"},
		RequiredActions: []string{},
		Messages:        []string{"International payment requires additional information."},
		Approvals:       []models.ApprovalRequirement{},
	}
	f.preconfirm.On("Decide", mock.Anything,
		mock.MatchedBy(func(req *models.DecisionRequest) bool {
			return req.PaymentID == "pay_grpc_1" && req.Amount.Value.Equal(decimal.NewFromInt(250))
		}),
		mock.MatchedBy(func(audit models.AuditInfo) bool {
			return audit.UserAgent != ""
		}),
	).Return(outcome, nil)

	resp, err := f.client.Decide(testContext(t), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, models.DecisionStepUp, resp.Decision)
	assert.Equal(t, []string{"intl_extension_v1"}, resp.RequiredForms)
	f.preconfirm.AssertExpectations(t)
}

func TestGRPC_Decide_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"validation", apperrors.Validation("paymentId is required"), codes.InvalidArgument},
		{"duplicate", apperrors.Conflict("decision already recorded for payment", nil), codes.AlreadyExists},
		{"transaction", apperrors.Transaction("failed to store decision", errors.New("locked")), codes.Unavailable},
		{"unexpected", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupGRPC(t)
			f.preconfirm.On("Decide", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := f.client.Decide(testContext(t), sampleRequest())

			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestGRPC_GetForm(t *testing.T) {
	f := setupGRPC(t)

	form, err := f.client.GetForm(testContext(t), &GetFormRequest{FormID: "investment_block_v1"})

	require.NoError(t, err)
	assert.Equal(t, "investment_block_v1", form.ID)
	assert.NotEmpty(t, form.Fields)
}

func TestGRPC_GetForm_NotFound(t *testing.T) {
	f := setupGRPC(t)

	_, err := f.client.GetForm(testContext(t), &GetFormRequest{FormID: "nope"})

	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGRPC_ResolveApproval(t *testing.T) {
	f := setupGRPC(t)

	f.approvals.On("ResolveApproval", mock.Anything, "pay_1", int64(3), models.ApprovalApproved, "checker_1", "").
		Return(&models.ApprovalRecord{ID: 3, PaymentID: "pay_1", UserID: "checker_1", Status: models.ApprovalApproved}, nil).Once()
	f.approvals.On("ResolveApproval", mock.Anything, "pay_1", int64(3), models.ApprovalRejected, "checker_2", "").
		Return(nil, apperrors.Conflict("approval already resolved", nil)).Once()

	approval, err := f.client.ResolveApproval(testContext(t), &ResolveApprovalRequest{
		PaymentID: "pay_1", ApprovalID: 3, Outcome: models.ApprovalApproved, UserID: "checker_1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, approval.Status)

	_, err = f.client.ResolveApproval(testContext(t), &ResolveApprovalRequest{
		PaymentID: "pay_1", ApprovalID: 3, Outcome: models.ApprovalRejected, UserID: "checker_2",
	})
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Equal(t, "approval already resolved", status.Convert(err).Message())

	f.approvals.AssertExpectations(t)
}

func TestGRPC_Health(t *testing.T) {
	f := setupGRPC(t)

	resp, err := healthpb.NewHealthClient(f.conn).Check(testContext(t), &healthpb.HealthCheckRequest{Service: ServiceName})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestJSONCodec(t *testing.T) {
	codec := jsonCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&GetFormRequest{FormID: "repeat_check_v1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"formId":"repeat_check_v1"}`, string(data))

	var decoded GetFormRequest
	require.NoError(t, codec.Unmarshal(data, &decoded))
	assert.Equal(t, "repeat_check_v1", decoded.FormID)
}
