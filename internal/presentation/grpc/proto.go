package grpc

// proto.go defines the gRPC server interface derived from moneta/ledger/v1/ledger.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/moneta-app/moneta/api/gen/go/moneta/ledger/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LedgerServiceServer is the server API for LedgerService.
type LedgerServiceServer interface {
	OpenAccount(context.Context, *OpenAccountRequest) (*OpenAccountResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	CloseAccount(context.Context, *CloseAccountRequest) (*CloseAccountResponse, error)
	RecordTransaction(context.Context, *RecordTransactionRequest) (*RecordTransactionResponse, error)
	UpdateTransaction(context.Context, *UpdateTransactionRequest) (*UpdateTransactionResponse, error)
	DeleteTransaction(context.Context, *DeleteTransactionRequest) (*DeleteTransactionResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	CreateInvestment(context.Context, *CreateInvestmentRequest) (*CreateInvestmentResponse, error)
	ListInvestments(context.Context, *ListInvestmentsRequest) (*ListInvestmentsResponse, error)
	RecordTrade(context.Context, *RecordTradeRequest) (*RecordTradeResponse, error)
	DeleteTrade(context.Context, *DeleteTradeRequest) (*DeleteTradeResponse, error)
	RecordContribution(context.Context, *RecordContributionRequest) (*RecordContributionResponse, error)
	DeleteContribution(context.Context, *DeleteContributionRequest) (*DeleteContributionResponse, error)
	RecordValuation(context.Context, *RecordValuationRequest) (*RecordValuationResponse, error)
	GetPosition(context.Context, *GetPositionRequest) (*GetPositionResponse, error)
	mustEmbedUnimplementedLedgerServiceServer()
}

// UnimplementedLedgerServiceServer provides forward-compatible default implementations.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) OpenAccount(context.Context, *OpenAccountRequest) (*OpenAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OpenAccount not implemented")
}
func (UnimplementedLedgerServiceServer) GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAccount not implemented")
}
func (UnimplementedLedgerServiceServer) ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAccounts not implemented")
}
func (UnimplementedLedgerServiceServer) CloseAccount(context.Context, *CloseAccountRequest) (*CloseAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CloseAccount not implemented")
}
func (UnimplementedLedgerServiceServer) RecordTransaction(context.Context, *RecordTransactionRequest) (*RecordTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordTransaction not implemented")
}
func (UnimplementedLedgerServiceServer) UpdateTransaction(context.Context, *UpdateTransactionRequest) (*UpdateTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateTransaction not implemented")
}
func (UnimplementedLedgerServiceServer) DeleteTransaction(context.Context, *DeleteTransactionRequest) (*DeleteTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteTransaction not implemented")
}
func (UnimplementedLedgerServiceServer) ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListTransactions not implemented")
}
func (UnimplementedLedgerServiceServer) CreateInvestment(context.Context, *CreateInvestmentRequest) (*CreateInvestmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateInvestment not implemented")
}
func (UnimplementedLedgerServiceServer) ListInvestments(context.Context, *ListInvestmentsRequest) (*ListInvestmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListInvestments not implemented")
}
func (UnimplementedLedgerServiceServer) RecordTrade(context.Context, *RecordTradeRequest) (*RecordTradeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordTrade not implemented")
}
func (UnimplementedLedgerServiceServer) DeleteTrade(context.Context, *DeleteTradeRequest) (*DeleteTradeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteTrade not implemented")
}
func (UnimplementedLedgerServiceServer) RecordContribution(context.Context, *RecordContributionRequest) (*RecordContributionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordContribution not implemented")
}
func (UnimplementedLedgerServiceServer) DeleteContribution(context.Context, *DeleteContributionRequest) (*DeleteContributionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteContribution not implemented")
}
func (UnimplementedLedgerServiceServer) RecordValuation(context.Context, *RecordValuationRequest) (*RecordValuationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordValuation not implemented")
}
func (UnimplementedLedgerServiceServer) GetPosition(context.Context, *GetPositionRequest) (*GetPositionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPosition not implemented")
}
func (UnimplementedLedgerServiceServer) mustEmbedUnimplementedLedgerServiceServer() {}

// RegisterLedgerServiceServer registers the LedgerServiceServer with the gRPC server.
func RegisterLedgerServiceServer(s *grpclib.Server, srv LedgerServiceServer) {
	s.RegisterService(&_LedgerService_serviceDesc, srv)
}

var _LedgerService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "moneta.ledger.v1.LedgerService",
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "OpenAccount", Handler: _LedgerService_OpenAccount_Handler},
		{MethodName: "GetAccount", Handler: _LedgerService_GetAccount_Handler},
		{MethodName: "ListAccounts", Handler: _LedgerService_ListAccounts_Handler},
		{MethodName: "CloseAccount", Handler: _LedgerService_CloseAccount_Handler},
		{MethodName: "RecordTransaction", Handler: _LedgerService_RecordTransaction_Handler},
		{MethodName: "UpdateTransaction", Handler: _LedgerService_UpdateTransaction_Handler},
		{MethodName: "DeleteTransaction", Handler: _LedgerService_DeleteTransaction_Handler},
		{MethodName: "ListTransactions", Handler: _LedgerService_ListTransactions_Handler},
		{MethodName: "CreateInvestment", Handler: _LedgerService_CreateInvestment_Handler},
		{MethodName: "ListInvestments", Handler: _LedgerService_ListInvestments_Handler},
		{MethodName: "RecordTrade", Handler: _LedgerService_RecordTrade_Handler},
		{MethodName: "DeleteTrade", Handler: _LedgerService_DeleteTrade_Handler},
		{MethodName: "RecordContribution", Handler: _LedgerService_RecordContribution_Handler},
		{MethodName: "DeleteContribution", Handler: _LedgerService_DeleteContribution_Handler},
		{MethodName: "RecordValuation", Handler: _LedgerService_RecordValuation_Handler},
		{MethodName: "GetPosition", Handler: _LedgerService_GetPosition_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _LedgerService_OpenAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(OpenAccountRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).OpenAccount(ctx, req)
}

func _LedgerService_GetAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAccountRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).GetAccount(ctx, req)
}

func _LedgerService_ListAccounts_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListAccountsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).ListAccounts(ctx, req)
}

func _LedgerService_CloseAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CloseAccountRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).CloseAccount(ctx, req)
}

func _LedgerService_RecordTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RecordTransactionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).RecordTransaction(ctx, req)
}

func _LedgerService_UpdateTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(UpdateTransactionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).UpdateTransaction(ctx, req)
}

func _LedgerService_DeleteTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(DeleteTransactionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).DeleteTransaction(ctx, req)
}

func _LedgerService_ListTransactions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListTransactionsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).ListTransactions(ctx, req)
}

func _LedgerService_CreateInvestment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CreateInvestmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).CreateInvestment(ctx, req)
}

func _LedgerService_ListInvestments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListInvestmentsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).ListInvestments(ctx, req)
}

func _LedgerService_RecordTrade_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RecordTradeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).RecordTrade(ctx, req)
}

func _LedgerService_DeleteTrade_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(DeleteTradeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).DeleteTrade(ctx, req)
}

func _LedgerService_RecordContribution_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RecordContributionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).RecordContribution(ctx, req)
}

func _LedgerService_DeleteContribution_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(DeleteContributionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).DeleteContribution(ctx, req)
}

func _LedgerService_RecordValuation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RecordValuationRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).RecordValuation(ctx, req)
}

func _LedgerService_GetPosition_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetPositionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LedgerServiceServer).GetPosition(ctx, req)
}
