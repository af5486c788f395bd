package grpc

import (
	"context"

	"google.golang.org/grpc"

	"payment-preconfirm/internal/forms"
	"payment-preconfirm/internal/models"
)

const ServiceName = "preconfirm.v1.PreconfirmService"

const (
	methodDecide          = "/" + ServiceName + "/Decide"
	methodGetForm         = "/" + ServiceName + "/GetForm"
	methodResolveApproval = "/" + ServiceName + "/ResolveApproval"
)

// GetFormRequest запрос формы по идентификатору
type GetFormRequest struct {
	FormID string `json:"formId"`
}

// ResolveApprovalRequest запрос на решение по согласованию
type ResolveApprovalRequest struct {
	PaymentID  string                `json:"paymentId"`
	ApprovalID int64                 `json:"approvalId"`
	Outcome    models.ApprovalStatus `json:"outcome"`
	UserID     string                `json:"userId"`
	Notes      string                `json:"notes,omitempty"`
}

// PreconfirmServer серверная часть сервиса preconfirm.v1.PreconfirmService
type PreconfirmServer interface {
	Decide(ctx context.Context, req *models.DecisionRequest) (*models.DecisionOutcome, error)
	GetForm(ctx context.Context, req *GetFormRequest) (*forms.Form, error)
	ResolveApproval(ctx context.Context, req *ResolveApprovalRequest) (*models.ApprovalRecord, error)
}

// ServiceDesc описание сервиса для grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PreconfirmServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Decide", Handler: decideHandler},
		{MethodName: "GetForm", Handler: getFormHandler},
		{MethodName: "ResolveApproval", Handler: resolveApprovalHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "preconfirm/v1/preconfirm.json",
}

// RegisterPreconfirmServer регистрирует реализацию на сервере
func RegisterPreconfirmServer(s grpc.ServiceRegistrar, srv PreconfirmServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func decideHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(models.DecisionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PreconfirmServer).Decide(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodDecide}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PreconfirmServer).Decide(ctx, req.(*models.DecisionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getFormHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetFormRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PreconfirmServer).GetForm(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetForm}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PreconfirmServer).GetForm(ctx, req.(*GetFormRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func resolveApprovalHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResolveApprovalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PreconfirmServer).ResolveApproval(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodResolveApproval}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PreconfirmServer).ResolveApproval(ctx, req.(*ResolveApprovalRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// PreconfirmClient клиент сервиса; все вызовы идут с content-subtype json
type PreconfirmClient struct {
	cc grpc.ClientConnInterface
}

func NewPreconfirmClient(cc grpc.ClientConnInterface) *PreconfirmClient {
	return &PreconfirmClient{cc: cc}
}

func (c *PreconfirmClient) Decide(ctx context.Context, in *models.DecisionRequest, opts ...grpc.CallOption) (*models.DecisionOutcome, error) {
	out := new(models.DecisionOutcome)
	if err := c.cc.Invoke(ctx, methodDecide, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PreconfirmClient) GetForm(ctx context.Context, in *GetFormRequest, opts ...grpc.CallOption) (*forms.Form, error) {
	out := new(forms.Form)
	if err := c.cc.Invoke(ctx, methodGetForm, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PreconfirmClient) ResolveApproval(ctx context.Context, in *ResolveApprovalRequest, opts ...grpc.CallOption) (*models.ApprovalRecord, error) {
	out := new(models.ApprovalRecord)
	if err := c.cc.Invoke(ctx, methodResolveApproval, in, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withJSON(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}
