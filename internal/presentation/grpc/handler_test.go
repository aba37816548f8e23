package grpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/moneta-app/moneta/internal/application/usecase"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/pkg/auth"
)

// --- Mock implementations ---

type mockAccountRepo struct {
	accounts map[uuid.UUID]model.Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[uuid.UUID]model.Account)}
}

func (m *mockAccountRepo) GetAccount(_ context.Context, id uuid.UUID) (model.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return model.Account{}, fmt.Errorf("%w: account %s", domain.ErrNotFound, id)
	}
	return a, nil
}

func (m *mockAccountRepo) UpdateBalance(_ context.Context, _ uuid.UUID, _ decimal.Decimal) error {
	return nil
}

func (m *mockAccountRepo) Save(_ context.Context, a model.Account) error {
	m.accounts[a.ID()] = a
	return nil
}

func (m *mockAccountRepo) Update(_ context.Context, a model.Account) error {
	m.accounts[a.ID()] = a
	return nil
}

func (m *mockAccountRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Account, error) {
	var out []model.Account
	for _, a := range m.accounts {
		if a.OwnerID() == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

// --- Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ctxWithClaims(ownerID uuid.UUID, roles ...string) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{
		UserID: ownerID,
		Roles:  roles,
	})
}

func seedAccount(repo *mockAccountRepo, ownerID uuid.UUID, balance string) uuid.UUID {
	id := uuid.New()
	now := time.Now().UTC()
	repo.accounts[id] = model.ReconstructAccount(
		id, ownerID, "Checking", "USD",
		decimal.RequireFromString(balance),
		model.AccountKindDepository, decimal.Zero,
		nil, 1, now, now,
	)
	return id
}

func accountHandler(repo *mockAccountRepo) *Handler {
	return NewHandler(Usecases{
		GetAccount:   usecase.NewGetAccount(repo),
		ListAccounts: usecase.NewListAccounts(repo),
	}, testLogger())
}

// --- Tests ---

func TestGetAccount_Success(t *testing.T) {
	repo := newMockAccountRepo()
	ownerID := uuid.New()
	accountID := seedAccount(repo, ownerID, "1250.75")

	h := accountHandler(repo)
	resp, err := h.GetAccount(ctxWithClaims(ownerID, auth.RoleOwner), &GetAccountRequest{AccountID: accountID.String()})
	require.NoError(t, err)
	require.NotNil(t, resp.Account)
	assert.Equal(t, accountID.String(), resp.Account.ID)
	assert.Equal(t, "1250.75", resp.Account.Balance)
	assert.Equal(t, "USD", resp.Account.Currency)
}

func TestGetAccount_RequiresAuthentication(t *testing.T) {
	h := accountHandler(newMockAccountRepo())

	_, err := h.GetAccount(context.Background(), &GetAccountRequest{AccountID: uuid.NewString()})
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGetAccount_ReadOnlyRoleAllowed(t *testing.T) {
	repo := newMockAccountRepo()
	ownerID := uuid.New()
	accountID := seedAccount(repo, ownerID, "10")

	h := accountHandler(repo)
	_, err := h.GetAccount(ctxWithClaims(ownerID, auth.RoleReadOnly), &GetAccountRequest{AccountID: accountID.String()})
	assert.NoError(t, err)
}

func TestGetAccount_UnknownIDMapsToNotFound(t *testing.T) {
	h := accountHandler(newMockAccountRepo())

	_, err := h.GetAccount(ctxWithClaims(uuid.New(), auth.RoleOwner), &GetAccountRequest{AccountID: uuid.NewString()})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGetAccount_ForeignAccountMapsToNotFound(t *testing.T) {
	repo := newMockAccountRepo()
	accountID := seedAccount(repo, uuid.New(), "100")

	h := accountHandler(repo)
	_, err := h.GetAccount(ctxWithClaims(uuid.New(), auth.RoleOwner), &GetAccountRequest{AccountID: accountID.String()})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGetAccount_InvalidID(t *testing.T) {
	h := accountHandler(newMockAccountRepo())

	_, err := h.GetAccount(ctxWithClaims(uuid.New(), auth.RoleOwner), &GetAccountRequest{AccountID: "not-a-uuid"})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListAccounts_ScopedToOwner(t *testing.T) {
	repo := newMockAccountRepo()
	ownerID := uuid.New()
	seedAccount(repo, ownerID, "100")
	seedAccount(repo, ownerID, "200")
	seedAccount(repo, uuid.New(), "999")

	h := accountHandler(repo)
	resp, err := h.ListAccounts(ctxWithClaims(ownerID, auth.RoleOwner), &ListAccountsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Accounts, 2)
}

func TestOpenAccount_RejectsReadOnlyRole(t *testing.T) {
	h := accountHandler(newMockAccountRepo())

	_, err := h.OpenAccount(ctxWithClaims(uuid.New(), auth.RoleReadOnly), &OpenAccountRequest{
		Name:     "Savings",
		Currency: "USD",
		Kind:     "depository",
	})
	require.Error(t, err)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestOpenAccount_ValidatesCurrency(t *testing.T) {
	h := accountHandler(newMockAccountRepo())

	_, err := h.OpenAccount(ctxWithClaims(uuid.New(), auth.RoleOwner), &OpenAccountRequest{
		Name:     "Savings",
		Currency: "usd",
		Kind:     "depository",
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRecordTransaction_ValidatesBeforeDispatch(t *testing.T) {
	// The handler rejects malformed requests before touching any use case,
	// so a zero-value Usecases bundle is safe here.
	h := NewHandler(Usecases{}, testLogger())
	ctx := ctxWithClaims(uuid.New(), auth.RoleOwner)

	cases := []struct {
		name string
		req  *RecordTransactionRequest
	}{
		{"missing kind", &RecordTransactionRequest{AccountID: uuid.NewString(), Amount: "10", Currency: "USD", Date: "2026-01-05T00:00:00Z"}},
		{"missing account", &RecordTransactionRequest{Kind: "expense", Amount: "10", Currency: "USD", Date: "2026-01-05T00:00:00Z"}},
		{"bad amount", &RecordTransactionRequest{Kind: "expense", AccountID: uuid.NewString(), Amount: "ten", Currency: "USD", Date: "2026-01-05T00:00:00Z"}},
		{"bad currency", &RecordTransactionRequest{Kind: "expense", AccountID: uuid.NewString(), Amount: "10", Currency: "dollars", Date: "2026-01-05T00:00:00Z"}},
		{"bad date", &RecordTransactionRequest{Kind: "expense", AccountID: uuid.NewString(), Amount: "10", Currency: "USD", Date: "05/01/2026"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.RecordTransaction(ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestStatusFromError_MapsDomainClasses(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: no such row", domain.ErrNotFound), codes.NotFound},
		{fmt.Errorf("%w: bad input", domain.ErrValidation), codes.InvalidArgument},
		{fmt.Errorf("%w: oversell", domain.ErrInvariant), codes.FailedPrecondition},
		{fmt.Errorf("%w: no rate", domain.ErrConversion), codes.FailedPrecondition},
		{fmt.Errorf("connection reset"), codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, status.Code(statusFromError(tc.err)), tc.err.Error())
	}
}
