package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/application/usecase"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/valueobject"
	"github.com/moneta-app/moneta/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// ownerIDFromContext extracts the authenticated owner ID from JWT claims.
func ownerIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.UserID, nil
}

// statusFromError maps domain error classes to gRPC status codes. Anything
// unrecognised is reported as Internal without leaking detail.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrInvariant):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrConversion):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func parseUUID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return id, nil
}

func parseOptionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return &id, nil
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return d, nil
}

func parseOptionalDecimal(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return &d, nil
}

func parseTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s: must be RFC 3339", field)
	}
	return t, nil
}

func validateCurrency(field, value string) error {
	if value == "" {
		return status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	if !valueobject.IsCurrencyCode(value) {
		return status.Errorf(codes.InvalidArgument, "%s must be a 3-letter uppercase ISO code", field)
	}
	return nil
}

func optDecStr(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func optUUIDStr(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func optStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Usecases bundles the application layer behind the gRPC surface.
type Usecases struct {
	OpenAccount        *usecase.OpenAccount
	GetAccount         *usecase.GetAccount
	ListAccounts       *usecase.ListAccounts
	CloseAccount       *usecase.CloseAccount
	RecordTransaction  *usecase.RecordTransaction
	UpdateTransaction  *usecase.UpdateTransaction
	DeleteTransaction  *usecase.DeleteTransaction
	ListTransactions   *usecase.ListTransactions
	CreateInvestment   *usecase.CreateInvestment
	ListInvestments    *usecase.ListInvestments
	RecordTrade        *usecase.RecordTrade
	DeleteTrade        *usecase.DeleteTrade
	RecordContribution *usecase.RecordContribution
	DeleteContribution *usecase.DeleteContribution
	RecordValuation    *usecase.RecordValuation
	GetPosition        *usecase.GetPosition
}

// Compile-time assertion that Handler implements LedgerServiceServer.
var _ LedgerServiceServer = (*Handler)(nil)

// Handler implements the LedgerServiceServer gRPC interface.
type Handler struct {
	UnimplementedLedgerServiceServer
	uc     Usecases
	logger *slog.Logger
}

// NewHandler creates a new gRPC Handler.
func NewHandler(uc Usecases, logger *slog.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}

// Proto-aligned request/response message types.

// AccountMsg represents the proto Account message.
type AccountMsg struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Kind        string `json:"kind"`
	Balance     string `json:"balance"`
	CreditLimit string `json:"credit_limit"`
	Version     int32  `json:"version"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func accountMsg(a dto.AccountResponse) *AccountMsg {
	return &AccountMsg{
		ID:          a.ID.String(),
		OwnerID:     a.OwnerID.String(),
		Name:        a.Name,
		Currency:    a.Currency,
		Kind:        a.Kind,
		Balance:     a.Balance.String(),
		CreditLimit: a.CreditLimit.String(),
		Version:     int32(a.Version),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

// OpenAccountRequest represents the proto OpenAccountRequest message.
type OpenAccountRequest struct {
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Kind        string `json:"kind"`
	CreditLimit string `json:"credit_limit"`
}

// OpenAccountResponse represents the proto OpenAccountResponse message.
type OpenAccountResponse struct {
	Account *AccountMsg `json:"account"`
}

// OpenAccount creates a new account for the authenticated owner.
func (h *Handler) OpenAccount(ctx context.Context, req *OpenAccountRequest) (*OpenAccountResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}
	if err := validateCurrency("currency", req.Currency); err != nil {
		return nil, err
	}

	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	creditLimit := decimal.Zero
	if req.CreditLimit != "" {
		if creditLimit, err = parseDecimal("credit_limit", req.CreditLimit); err != nil {
			return nil, err
		}
	}

	resp, err := h.uc.OpenAccount.Execute(ctx, dto.OpenAccountRequest{
		OwnerID:     ownerID,
		Name:        req.Name,
		Currency:    req.Currency,
		Kind:        req.Kind,
		CreditLimit: creditLimit,
	})
	if err != nil {
		h.logger.Error("OpenAccount failed", "error", err, "owner_id", ownerID)
		return nil, statusFromError(err)
	}

	h.logger.Info("OpenAccount succeeded", "account_id", resp.ID, "kind", resp.Kind)
	return &OpenAccountResponse{Account: accountMsg(resp)}, nil
}

// GetAccountRequest represents the proto GetAccountRequest message.
type GetAccountRequest struct {
	AccountID string `json:"account_id"`
}

// GetAccountResponse represents the proto GetAccountResponse message.
type GetAccountResponse struct {
	Account *AccountMsg `json:"account"`
}

// GetAccount returns a single account owned by the caller.
func (h *Handler) GetAccount(ctx context.Context, req *GetAccountRequest) (*GetAccountResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner, auth.RoleReadOnly); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	accountID, err := parseUUID("account_id", req.AccountID)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetAccount.Execute(ctx, dto.GetAccountRequest{OwnerID: ownerID, AccountID: accountID})
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetAccountResponse{Account: accountMsg(resp)}, nil
}

// ListAccountsRequest represents the proto ListAccountsRequest message.
type ListAccountsRequest struct{}

// ListAccountsResponse represents the proto ListAccountsResponse message.
type ListAccountsResponse struct {
	Accounts []*AccountMsg `json:"accounts"`
}

// ListAccounts returns all open accounts owned by the caller.
func (h *Handler) ListAccounts(ctx context.Context, req *ListAccountsRequest) (*ListAccountsResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner, auth.RoleReadOnly); err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListAccounts.Execute(ctx, dto.ListAccountsRequest{OwnerID: ownerID})
	if err != nil {
		h.logger.Error("ListAccounts failed", "error", err, "owner_id", ownerID)
		return nil, statusFromError(err)
	}

	accounts := make([]*AccountMsg, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		accounts = append(accounts, accountMsg(a))
	}
	return &ListAccountsResponse{Accounts: accounts}, nil
}

// CloseAccountRequest represents the proto CloseAccountRequest message.
type CloseAccountRequest struct {
	AccountID string `json:"account_id"`
}

// CloseAccountResponse represents the proto CloseAccountResponse message.
type CloseAccountResponse struct {
	Account *AccountMsg `json:"account"`
}

// CloseAccount soft-deletes an account with a zero balance.
func (h *Handler) CloseAccount(ctx context.Context, req *CloseAccountRequest) (*CloseAccountResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	accountID, err := parseUUID("account_id", req.AccountID)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CloseAccount.Execute(ctx, dto.CloseAccountRequest{OwnerID: ownerID, AccountID: accountID})
	if err != nil {
		h.logger.Error("CloseAccount failed", "error", err, "account_id", accountID)
		return nil, statusFromError(err)
	}

	h.logger.Info("CloseAccount succeeded", "account_id", accountID)
	return &CloseAccountResponse{Account: accountMsg(resp)}, nil
}

// TransactionMsg represents the proto Transaction message.
type TransactionMsg struct {
	ID                string `json:"id"`
	OwnerID           string `json:"owner_id"`
	Kind              string `json:"kind"`
	AccountID         string `json:"account_id"`
	CounterAccountID  string `json:"counter_account_id,omitempty"`
	Amount            string `json:"amount"`
	Fee               string `json:"fee"`
	Currency          string `json:"currency"`
	DestinationAmount string `json:"destination_amount,omitempty"`
	Date              string `json:"date"`
	Note              string `json:"note,omitempty"`
	Version           int32  `json:"version"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func transactionMsg(t dto.TransactionResponse) *TransactionMsg {
	return &TransactionMsg{
		ID:                t.ID.String(),
		OwnerID:           t.OwnerID.String(),
		Kind:              t.Kind,
		AccountID:         t.AccountID.String(),
		CounterAccountID:  optUUIDStr(t.CounterAccountID),
		Amount:            t.Amount.String(),
		Fee:               t.Fee.String(),
		Currency:          t.Currency,
		DestinationAmount: optDecStr(t.DestinationAmount),
		Date:              t.Date.Format(time.RFC3339),
		Note:              t.Note,
		Version:           int32(t.Version),
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         t.UpdatedAt.Format(time.RFC3339),
	}
}

// transactionFields is the shared shape of record and update transaction
// requests after parsing.
type transactionFields struct {
	kind              string
	accountID         uuid.UUID
	counterAccountID  *uuid.UUID
	amount            decimal.Decimal
	fee               decimal.Decimal
	currency          string
	destinationAmount *decimal.Decimal
	date              time.Time
	note              string
}

func parseTransactionFields(kind, accountID, counterAccountID, amount, fee, currency, destinationAmount, date, note string) (transactionFields, error) {
	var f transactionFields
	var err error

	if kind == "" {
		return f, status.Error(codes.InvalidArgument, "kind is required")
	}
	f.kind = kind
	if f.accountID, err = parseUUID("account_id", accountID); err != nil {
		return f, err
	}
	if f.counterAccountID, err = parseOptionalUUID("counter_account_id", counterAccountID); err != nil {
		return f, err
	}
	if f.amount, err = parseDecimal("amount", amount); err != nil {
		return f, err
	}
	f.fee = decimal.Zero
	if fee != "" {
		if f.fee, err = parseDecimal("fee", fee); err != nil {
			return f, err
		}
	}
	if err = validateCurrency("currency", currency); err != nil {
		return f, err
	}
	f.currency = currency
	if f.destinationAmount, err = parseOptionalDecimal("destination_amount", destinationAmount); err != nil {
		return f, err
	}
	if f.date, err = parseTime("date", date); err != nil {
		return f, err
	}
	f.note = note
	return f, nil
}

// RecordTransactionRequest represents the proto RecordTransactionRequest message.
type RecordTransactionRequest struct {
	Kind              string `json:"kind"`
	AccountID         string `json:"account_id"`
	CounterAccountID  string `json:"counter_account_id"`
	Amount            string `json:"amount"`
	Fee               string `json:"fee"`
	Currency          string `json:"currency"`
	DestinationAmount string `json:"destination_amount"`
	Date              string `json:"date"`
	Note              string `json:"note"`
}

// RecordTransactionResponse represents the proto RecordTransactionResponse message.
type RecordTransactionResponse struct {
	Transaction *TransactionMsg `json:"transaction"`
}

// RecordTransaction records a ledger event and applies its cash effect.
func (h *Handler) RecordTransaction(ctx context.Context, req *RecordTransactionRequest) (*RecordTransactionResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	f, err := parseTransactionFields(req.Kind, req.AccountID, req.CounterAccountID, req.Amount, req.Fee, req.Currency, req.DestinationAmount, req.Date, req.Note)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.RecordTransaction.Execute(ctx, dto.RecordTransactionRequest{
		OwnerID:           ownerID,
		Kind:              f.kind,
		AccountID:         f.accountID,
		CounterAccountID:  f.counterAccountID,
		Amount:            f.amount,
		Fee:               f.fee,
		Currency:          f.currency,
		DestinationAmount: f.destinationAmount,
		Date:              f.date,
		Note:              f.note,
	})
	if err != nil {
		h.logger.Error("RecordTransaction failed", "error", err, "account_id", f.accountID, "kind", f.kind)
		return nil, statusFromError(err)
	}

	h.logger.Info("RecordTransaction succeeded", "transaction_id", resp.ID, "kind", resp.Kind)
	return &RecordTransactionResponse{Transaction: transactionMsg(resp)}, nil
}

// UpdateTransactionRequest represents the proto UpdateTransactionRequest message.
type UpdateTransactionRequest struct {
	TransactionID     string `json:"transaction_id"`
	Kind              string `json:"kind"`
	AccountID         string `json:"account_id"`
	CounterAccountID  string `json:"counter_account_id"`
	Amount            string `json:"amount"`
	Fee               string `json:"fee"`
	Currency          string `json:"currency"`
	DestinationAmount string `json:"destination_amount"`
	Date              string `json:"date"`
	Note              string `json:"note"`
}

// UpdateTransactionResponse represents the proto UpdateTransactionResponse message.
type UpdateTransactionResponse struct {
	Transaction *TransactionMsg `json:"transaction"`
}

// UpdateTransaction replaces a transaction, reverting the old cash effect and
// applying the new one atomically.
func (h *Handler) UpdateTransaction(ctx context.Context, req *UpdateTransactionRequest) (*UpdateTransactionResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	transactionID, err := parseUUID("transaction_id", req.TransactionID)
	if err != nil {
		return nil, err
	}
	f, err := parseTransactionFields(req.Kind, req.AccountID, req.CounterAccountID, req.Amount, req.Fee, req.Currency, req.DestinationAmount, req.Date, req.Note)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UpdateTransaction.Execute(ctx, dto.UpdateTransactionRequest{
		OwnerID:           ownerID,
		TransactionID:     transactionID,
		Kind:              f.kind,
		AccountID:         f.accountID,
		CounterAccountID:  f.counterAccountID,
		Amount:            f.amount,
		Fee:               f.fee,
		Currency:          f.currency,
		DestinationAmount: f.destinationAmount,
		Date:              f.date,
		Note:              f.note,
	})
	if err != nil {
		h.logger.Error("UpdateTransaction failed", "error", err, "transaction_id", transactionID)
		return nil, statusFromError(err)
	}

	h.logger.Info("UpdateTransaction succeeded", "transaction_id", transactionID, "version", resp.Version)
	return &UpdateTransactionResponse{Transaction: transactionMsg(resp)}, nil
}

// DeleteTransactionRequest represents the proto DeleteTransactionRequest message.
type DeleteTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
}

// DeleteTransactionResponse represents the proto DeleteTransactionResponse message.
type DeleteTransactionResponse struct{}

// DeleteTransaction removes a transaction and reverts its cash effect.
func (h *Handler) DeleteTransaction(ctx context.Context, req *DeleteTransactionRequest) (*DeleteTransactionResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	transactionID, err := parseUUID("transaction_id", req.TransactionID)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteTransaction.Execute(ctx, dto.DeleteTransactionRequest{OwnerID: ownerID, TransactionID: transactionID}); err != nil {
		h.logger.Error("DeleteTransaction failed", "error", err, "transaction_id", transactionID)
		return nil, statusFromError(err)
	}

	h.logger.Info("DeleteTransaction succeeded", "transaction_id", transactionID)
	return &DeleteTransactionResponse{}, nil
}

// ListTransactionsRequest represents the proto ListTransactionsRequest message.
type ListTransactionsRequest struct {
	AccountID string `json:"account_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	PageSize  int32  `json:"page_size"`
	Offset    int32  `json:"offset"`
}

// ListTransactionsResponse represents the proto ListTransactionsResponse message.
type ListTransactionsResponse struct {
	Transactions []*TransactionMsg `json:"transactions"`
}

// ListTransactions returns an account's transactions, newest first.
func (h *Handler) ListTransactions(ctx context.Context, req *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner, auth.RoleReadOnly); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	accountID, err := parseUUID("account_id", req.AccountID)
	if err != nil {
		return nil, err
	}
	if req.PageSize < 0 || req.PageSize > 500 {
		return nil, status.Error(codes.InvalidArgument, "page_size must be between 0 and 500")
	}
	if req.Offset < 0 {
		return nil, status.Error(codes.InvalidArgument, "offset must not be negative")
	}

	var from, to time.Time
	if req.From != "" {
		if from, err = parseTime("from", req.From); err != nil {
			return nil, err
		}
	}
	if req.To != "" {
		if to, err = parseTime("to", req.To); err != nil {
			return nil, err
		}
	}

	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListTransactions.Execute(ctx, dto.ListTransactionsRequest{
		OwnerID:   ownerID,
		AccountID: accountID,
		From:      from,
		To:        to,
		PageSize:  int(req.PageSize),
		Offset:    int(req.Offset),
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	transactions := make([]*TransactionMsg, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		transactions = append(transactions, transactionMsg(t))
	}
	return &ListTransactionsResponse{Transactions: transactions}, nil
}

// InvestmentMsg represents the proto Investment message.
type InvestmentMsg struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Name         string `json:"name"`
	Mode         string `json:"mode"`
	Currency     string `json:"currency"`
	BaseCurrency string `json:"base_currency,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func investmentMsg(i dto.InvestmentResponse) *InvestmentMsg {
	return &InvestmentMsg{
		ID:           i.ID.String(),
		OwnerID:      i.OwnerID.String(),
		Name:         i.Name,
		Mode:         i.Mode,
		Currency:     i.Currency,
		BaseCurrency: optStr(i.BaseCurrency),
		CreatedAt:    i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    i.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateInvestmentRequest represents the proto CreateInvestmentRequest message.
type CreateInvestmentRequest struct {
	Name         string `json:"name"`
	Mode         string `json:"mode"`
	Currency     string `json:"currency"`
	BaseCurrency string `json:"base_currency"`
}

// CreateInvestmentResponse represents the proto CreateInvestmentResponse message.
type CreateInvestmentResponse struct {
	Investment *InvestmentMsg `json:"investment"`
}

// CreateInvestment creates a priced or manual investment.
func (h *Handler) CreateInvestment(ctx context.Context, req *CreateInvestmentRequest) (*CreateInvestmentResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}
	if err := validateCurrency("currency", req.Currency); err != nil {
		return nil, err
	}
	var baseCurrency *string
	if req.BaseCurrency != "" {
		if err := validateCurrency("base_currency", req.BaseCurrency); err != nil {
			return nil, err
		}
		baseCurrency = &req.BaseCurrency
	}

	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateInvestment.Execute(ctx, dto.CreateInvestmentRequest{
		OwnerID:      ownerID,
		Name:         req.Name,
		Mode:         req.Mode,
		Currency:     req.Currency,
		BaseCurrency: baseCurrency,
	})
	if err != nil {
		h.logger.Error("CreateInvestment failed", "error", err, "owner_id", ownerID)
		return nil, statusFromError(err)
	}

	h.logger.Info("CreateInvestment succeeded", "investment_id", resp.ID, "mode", resp.Mode)
	return &CreateInvestmentResponse{Investment: investmentMsg(resp)}, nil
}

// ListInvestmentsRequest represents the proto ListInvestmentsRequest message.
type ListInvestmentsRequest struct{}

// ListInvestmentsResponse represents the proto ListInvestmentsResponse message.
type ListInvestmentsResponse struct {
	Investments []*InvestmentMsg `json:"investments"`
}

// ListInvestments returns all investments owned by the caller.
func (h *Handler) ListInvestments(ctx context.Context, req *ListInvestmentsRequest) (*ListInvestmentsResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner, auth.RoleReadOnly); err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListInvestments.Execute(ctx, dto.ListInvestmentsRequest{OwnerID: ownerID})
	if err != nil {
		h.logger.Error("ListInvestments failed", "error", err, "owner_id", ownerID)
		return nil, statusFromError(err)
	}

	investments := make([]*InvestmentMsg, 0, len(resp.Investments))
	for _, i := range resp.Investments {
		investments = append(investments, investmentMsg(i))
	}
	return &ListInvestmentsResponse{Investments: investments}, nil
}

// TradeMsg represents the proto Trade message.
type TradeMsg struct {
	ID           string `json:"id"`
	InvestmentID string `json:"investment_id"`
	AccountID    string `json:"account_id"`
	Side         string `json:"side"`
	Quantity     string `json:"quantity"`
	Price        string `json:"price"`
	Amount       string `json:"amount"`
	Fee          string `json:"fee"`
	Currency     string `json:"currency"`
	BaseAmount   string `json:"base_amount,omitempty"`
	ExecutedAt   string `json:"executed_at"`
	CreatedAt    string `json:"created_at"`
}

func tradeMsg(t dto.TradeResponse) *TradeMsg {
	return &TradeMsg{
		ID:           t.ID.String(),
		InvestmentID: t.InvestmentID.String(),
		AccountID:    t.AccountID.String(),
		Side:         t.Side,
		Quantity:     t.Quantity.String(),
		Price:        t.Price.String(),
		Amount:       t.Amount.String(),
		Fee:          t.Fee.String(),
		Currency:     t.Currency,
		BaseAmount:   optDecStr(t.BaseAmount),
		ExecutedAt:   t.ExecutedAt.Format(time.RFC3339),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

// RecordTradeRequest represents the proto RecordTradeRequest message.
type RecordTradeRequest struct {
	InvestmentID string `json:"investment_id"`
	AccountID    string `json:"account_id"`
	Side         string `json:"side"`
	Quantity     string `json:"quantity"`
	Price        string `json:"price"`
	Amount       string `json:"amount"`
	Fee          string `json:"fee"`
	Currency     string `json:"currency"`
	BaseAmount   string `json:"base_amount"`
	ExecutedAt   string `json:"executed_at"`
}

// RecordTradeResponse represents the proto RecordTradeResponse message.
type RecordTradeResponse struct {
	Trade *TradeMsg `json:"trade"`
}

// RecordTrade records a buy or sell against a priced investment.
func (h *Handler) RecordTrade(ctx context.Context, req *RecordTradeRequest) (*RecordTradeResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	investmentID, err := parseUUID("investment_id", req.InvestmentID)
	if err != nil {
		return nil, err
	}
	accountID, err := parseUUID("account_id", req.AccountID)
	if err != nil {
		return nil, err
	}
	if req.Side == "" {
		return nil, status.Error(codes.InvalidArgument, "side is required")
	}
	quantity, err := parseDecimal("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := parseDecimal("price", req.Price)
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	fee := decimal.Zero
	if req.Fee != "" {
		if fee, err = parseDecimal("fee", req.Fee); err != nil {
			return nil, err
		}
	}
	if err := validateCurrency("currency", req.Currency); err != nil {
		return nil, err
	}
	baseAmount, err := parseOptionalDecimal("base_amount", req.BaseAmount)
	if err != nil {
		return nil, err
	}
	executedAt, err := parseTime("executed_at", req.ExecutedAt)
	if err != nil {
		return nil, err
	}

	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.RecordTrade.Execute(ctx, dto.RecordTradeRequest{
		OwnerID:      ownerID,
		InvestmentID: investmentID,
		AccountID:    accountID,
		Side:         req.Side,
		Quantity:     quantity,
		Price:        price,
		Amount:       amount,
		Fee:          fee,
		Currency:     req.Currency,
		BaseAmount:   baseAmount,
		ExecutedAt:   executedAt,
	})
	if err != nil {
		h.logger.Error("RecordTrade failed", "error", err, "investment_id", investmentID, "side", req.Side)
		return nil, statusFromError(err)
	}

	h.logger.Info("RecordTrade succeeded", "trade_id", resp.ID, "side", resp.Side)
	return &RecordTradeResponse{Trade: tradeMsg(resp)}, nil
}

// DeleteTradeRequest represents the proto DeleteTradeRequest message.
type DeleteTradeRequest struct {
	TradeID string `json:"trade_id"`
}

// DeleteTradeResponse represents the proto DeleteTradeResponse message.
type DeleteTradeResponse struct{}

// DeleteTrade removes a trade and reverts its cash effect.
func (h *Handler) DeleteTrade(ctx context.Context, req *DeleteTradeRequest) (*DeleteTradeResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	tradeID, err := parseUUID("trade_id", req.TradeID)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteTrade.Execute(ctx, dto.DeleteTradeRequest{OwnerID: ownerID, TradeID: tradeID}); err != nil {
		h.logger.Error("DeleteTrade failed", "error", err, "trade_id", tradeID)
		return nil, statusFromError(err)
	}

	h.logger.Info("DeleteTrade succeeded", "trade_id", tradeID)
	return &DeleteTradeResponse{}, nil
}

// ContributionMsg represents the proto Contribution message.
type ContributionMsg struct {
	ID           string `json:"id"`
	InvestmentID string `json:"investment_id"`
	AccountID    string `json:"account_id,omitempty"`
	Kind         string `json:"kind"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	BaseAmount   string `json:"base_amount,omitempty"`
	OccurredAt   string `json:"occurred_at"`
	CreatedAt    string `json:"created_at"`
}

func contributionMsg(c dto.ContributionResponse) *ContributionMsg {
	return &ContributionMsg{
		ID:           c.ID.String(),
		InvestmentID: c.InvestmentID.String(),
		AccountID:    optUUIDStr(c.AccountID),
		Kind:         c.Kind,
		Amount:       c.Amount.String(),
		Currency:     c.Currency,
		BaseAmount:   optDecStr(c.BaseAmount),
		OccurredAt:   c.OccurredAt.Format(time.RFC3339),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

// RecordContributionRequest represents the proto RecordContributionRequest message.
type RecordContributionRequest struct {
	InvestmentID string `json:"investment_id"`
	AccountID    string `json:"account_id"`
	Kind         string `json:"kind"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	BaseAmount   string `json:"base_amount"`
	OccurredAt   string `json:"occurred_at"`
}

// RecordContributionResponse represents the proto RecordContributionResponse message.
type RecordContributionResponse struct {
	Contribution *ContributionMsg `json:"contribution"`
}

// RecordContribution records a deposit or withdrawal against a manual investment.
func (h *Handler) RecordContribution(ctx context.Context, req *RecordContributionRequest) (*RecordContributionResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	investmentID, err := parseUUID("investment_id", req.InvestmentID)
	if err != nil {
		return nil, err
	}
	accountID, err := parseOptionalUUID("account_id", req.AccountID)
	if err != nil {
		return nil, err
	}
	if req.Kind == "" {
		return nil, status.Error(codes.InvalidArgument, "kind is required")
	}
	amount, err := parseDecimal("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	if err := validateCurrency("currency", req.Currency); err != nil {
		return nil, err
	}
	baseAmount, err := parseOptionalDecimal("base_amount", req.BaseAmount)
	if err != nil {
		return nil, err
	}
	occurredAt, err := parseTime("occurred_at", req.OccurredAt)
	if err != nil {
		return nil, err
	}

	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.RecordContribution.Execute(ctx, dto.RecordContributionRequest{
		OwnerID:      ownerID,
		InvestmentID: investmentID,
		AccountID:    accountID,
		Kind:         req.Kind,
		Amount:       amount,
		Currency:     req.Currency,
		BaseAmount:   baseAmount,
		OccurredAt:   occurredAt,
	})
	if err != nil {
		h.logger.Error("RecordContribution failed", "error", err, "investment_id", investmentID, "kind", req.Kind)
		return nil, statusFromError(err)
	}

	h.logger.Info("RecordContribution succeeded", "contribution_id", resp.ID, "kind", resp.Kind)
	return &RecordContributionResponse{Contribution: contributionMsg(resp)}, nil
}

// DeleteContributionRequest represents the proto DeleteContributionRequest message.
type DeleteContributionRequest struct {
	ContributionID string `json:"contribution_id"`
}

// DeleteContributionResponse represents the proto DeleteContributionResponse message.
type DeleteContributionResponse struct{}

// DeleteContribution removes a contribution and reverts its cash effect.
func (h *Handler) DeleteContribution(ctx context.Context, req *DeleteContributionRequest) (*DeleteContributionResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	contributionID, err := parseUUID("contribution_id", req.ContributionID)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteContribution.Execute(ctx, dto.DeleteContributionRequest{OwnerID: ownerID, ContributionID: contributionID}); err != nil {
		h.logger.Error("DeleteContribution failed", "error", err, "contribution_id", contributionID)
		return nil, statusFromError(err)
	}

	h.logger.Info("DeleteContribution succeeded", "contribution_id", contributionID)
	return &DeleteContributionResponse{}, nil
}

// ValuationMsg represents the proto Valuation message.
type ValuationMsg struct {
	ID           string `json:"id"`
	InvestmentID string `json:"investment_id"`
	Price        string `json:"price,omitempty"`
	Value        string `json:"value,omitempty"`
	Currency     string `json:"currency"`
	BasePrice    string `json:"base_price,omitempty"`
	Rate         string `json:"rate,omitempty"`
	ObservedAt   string `json:"observed_at"`
	CreatedAt    string `json:"created_at"`
}

func valuationMsg(v dto.ValuationResponse) *ValuationMsg {
	return &ValuationMsg{
		ID:           v.ID.String(),
		InvestmentID: v.InvestmentID.String(),
		Price:        optDecStr(v.Price),
		Value:        optDecStr(v.Value),
		Currency:     v.Currency,
		BasePrice:    optDecStr(v.BasePrice),
		Rate:         optDecStr(v.Rate),
		ObservedAt:   v.ObservedAt.Format(time.RFC3339),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
}

// RecordValuationRequest represents the proto RecordValuationRequest message.
type RecordValuationRequest struct {
	InvestmentID string `json:"investment_id"`
	Price        string `json:"price"`
	Value        string `json:"value"`
	Currency     string `json:"currency"`
	BasePrice    string `json:"base_price"`
	Rate         string `json:"rate"`
	ObservedAt   string `json:"observed_at"`
}

// RecordValuationResponse represents the proto RecordValuationResponse message.
type RecordValuationResponse struct {
	Valuation *ValuationMsg `json:"valuation"`
}

// RecordValuation records an observed price or total value for an investment.
func (h *Handler) RecordValuation(ctx context.Context, req *RecordValuationRequest) (*RecordValuationResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	investmentID, err := parseUUID("investment_id", req.InvestmentID)
	if err != nil {
		return nil, err
	}
	price, err := parseOptionalDecimal("price", req.Price)
	if err != nil {
		return nil, err
	}
	value, err := parseOptionalDecimal("value", req.Value)
	if err != nil {
		return nil, err
	}
	if err := validateCurrency("currency", req.Currency); err != nil {
		return nil, err
	}
	basePrice, err := parseOptionalDecimal("base_price", req.BasePrice)
	if err != nil {
		return nil, err
	}
	rate, err := parseOptionalDecimal("rate", req.Rate)
	if err != nil {
		return nil, err
	}
	observedAt, err := parseTime("observed_at", req.ObservedAt)
	if err != nil {
		return nil, err
	}

	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.RecordValuation.Execute(ctx, dto.RecordValuationRequest{
		OwnerID:      ownerID,
		InvestmentID: investmentID,
		Price:        price,
		Value:        value,
		Currency:     req.Currency,
		BasePrice:    basePrice,
		Rate:         rate,
		ObservedAt:   observedAt,
	})
	if err != nil {
		h.logger.Error("RecordValuation failed", "error", err, "investment_id", investmentID)
		return nil, statusFromError(err)
	}

	h.logger.Info("RecordValuation succeeded", "valuation_id", resp.ID)
	return &RecordValuationResponse{Valuation: valuationMsg(resp)}, nil
}

// PositionMsg represents the proto Position message. Empty strings mean
// "not applicable" or "no data yet".
type PositionMsg struct {
	InvestmentID         string `json:"investment_id"`
	Quantity             string `json:"quantity,omitempty"`
	AvgCost              string `json:"avg_cost,omitempty"`
	CostBasis            string `json:"cost_basis"`
	RealizedPnl          string `json:"realized_pnl"`
	UnrealizedPnl        string `json:"unrealized_pnl"`
	NetContributions     string `json:"net_contributions"`
	LastPrice            string `json:"last_price,omitempty"`
	LastValue            string `json:"last_value,omitempty"`
	CostBasisBase        string `json:"cost_basis_base,omitempty"`
	RealizedPnlBase      string `json:"realized_pnl_base,omitempty"`
	UnrealizedPnlBase    string `json:"unrealized_pnl_base,omitempty"`
	LastValueBase        string `json:"last_value_base,omitempty"`
	ExchangeRateGainLoss string `json:"exchange_rate_gain_loss,omitempty"`
}

func positionMsg(p dto.PositionResponse) *PositionMsg {
	return &PositionMsg{
		InvestmentID:         p.InvestmentID.String(),
		Quantity:             optDecStr(p.Quantity),
		AvgCost:              optDecStr(p.AvgCost),
		CostBasis:            p.CostBasis.String(),
		RealizedPnl:          p.RealizedPnl.String(),
		UnrealizedPnl:        p.UnrealizedPnl.String(),
		NetContributions:     p.NetContributions.String(),
		LastPrice:            optDecStr(p.LastPrice),
		LastValue:            optDecStr(p.LastValue),
		CostBasisBase:        optDecStr(p.CostBasisBase),
		RealizedPnlBase:      optDecStr(p.RealizedPnlBase),
		UnrealizedPnlBase:    optDecStr(p.UnrealizedPnlBase),
		LastValueBase:        optDecStr(p.LastValueBase),
		ExchangeRateGainLoss: optDecStr(p.ExchangeRateGainLoss),
	}
}

// GetPositionRequest represents the proto GetPositionRequest message.
type GetPositionRequest struct {
	InvestmentID string `json:"investment_id"`
}

// GetPositionResponse represents the proto GetPositionResponse message.
type GetPositionResponse struct {
	Position *PositionMsg `json:"position"`
}

// GetPosition computes the current position of an investment from its full
// event history and latest valuation.
func (h *Handler) GetPosition(ctx context.Context, req *GetPositionRequest) (*GetPositionResponse, error) {
	if err := requireRole(ctx, auth.RoleOwner, auth.RoleReadOnly); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	investmentID, err := parseUUID("investment_id", req.InvestmentID)
	if err != nil {
		return nil, err
	}
	ownerID, err := ownerIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.GetPosition.Execute(ctx, dto.GetPositionRequest{OwnerID: ownerID, InvestmentID: investmentID})
	if err != nil {
		h.logger.Error("GetPosition failed", "error", err, "investment_id", investmentID)
		return nil, statusFromError(err)
	}

	return &GetPositionResponse{Position: positionMsg(resp)}, nil
}
