package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"payment-preconfirm/config"
	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/forms"
	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/services"
)

type PreconfirmGRPCServer struct {
	preconfirm services.PreconfirmService
	approvals  services.ApprovalService
	catalog    *forms.Catalog
}

func NewPreconfirmGRPCServer(
	preconfirm services.PreconfirmService,
	approvals services.ApprovalService,
	catalog *forms.Catalog,
) *PreconfirmGRPCServer {
	if catalog == nil {
		catalog = forms.NewCatalog()
	}
	return &PreconfirmGRPCServer{
		preconfirm: preconfirm,
		approvals:  approvals,
		catalog:    catalog,
	}
}

// Decide выполняет предварительную проверку; аудит берется из адреса клиента и user-agent
func (s *PreconfirmGRPCServer) Decide(ctx context.Context, req *models.DecisionRequest) (*models.DecisionOutcome, error) {
	outcome, err := s.preconfirm.Decide(ctx, req, auditFromContext(ctx))
	if err != nil {
		return nil, toStatus(err, codes.AlreadyExists)
	}
	return outcome, nil
}

// GetForm возвращает форму из каталога
func (s *PreconfirmGRPCServer) GetForm(ctx context.Context, req *GetFormRequest) (*forms.Form, error) {
	form, err := s.catalog.GetForm(req.FormID)
	if err != nil {
		return nil, toStatus(err, codes.AlreadyExists)
	}
	return form, nil
}

// ResolveApproval фиксирует решение проверяющего; повторное решение дает FailedPrecondition
func (s *PreconfirmGRPCServer) ResolveApproval(ctx context.Context, req *ResolveApprovalRequest) (*models.ApprovalRecord, error) {
	approval, err := s.approvals.ResolveApproval(ctx, req.PaymentID, req.ApprovalID, req.Outcome, req.UserID, req.Notes)
	if err != nil {
		return nil, toStatus(err, codes.FailedPrecondition)
	}
	return approval, nil
}

// toStatus переводит категорию ошибки в gRPC код; conflictCode зависит от метода
func toStatus(err error, conflictCode codes.Code) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return status.Error(codes.InvalidArgument, apperrors.Message(err))
	case errors.Is(err, apperrors.ErrNotFound):
		return status.Error(codes.NotFound, apperrors.Message(err))
	case errors.Is(err, apperrors.ErrConflict):
		return status.Error(conflictCode, apperrors.Message(err))
	case apperrors.IsRetryable(err):
		return status.Error(codes.Unavailable, apperrors.Message(err))
	default:
		log.Printf("gRPC internal error: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func auditFromContext(ctx context.Context) models.AuditInfo {
	var audit models.AuditInfo

	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		addr := p.Addr.String()
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
		audit.IP = addr
	}

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ua := md.Get("user-agent"); len(ua) > 0 {
			audit.UserAgent = ua[0]
		}
	}

	return audit
}

// NewServer создает gRPC сервер с сервисом проверки, health и reflection
func NewServer(server *PreconfirmGRPCServer, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	RegisterPreconfirmServer(s, server)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	// Включаем reflection API для grpcurl и других инструментов
	reflection.Register(s)

	return s
}

// StartGRPCServer запускает gRPC сервер
func StartGRPCServer(cfg *config.Config, s *grpc.Server) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	log.Printf("gRPC server listening on port %d", cfg.Server.GRPCPort)
	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %v", err)
	}

	return nil
}
