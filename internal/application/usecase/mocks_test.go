package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/pkg/events"
)

// --- Mock implementations ---

// mockAccountRepo implements port.AccountRepository over in-memory maps.
type mockAccountRepo struct {
	accounts map[uuid.UUID]model.Account
	balances map[uuid.UUID]decimal.Decimal
}

func newMockAccountRepo(accounts ...model.Account) *mockAccountRepo {
	r := &mockAccountRepo{
		accounts: make(map[uuid.UUID]model.Account),
		balances: make(map[uuid.UUID]decimal.Decimal),
	}
	for _, a := range accounts {
		r.accounts[a.ID()] = a
		r.balances[a.ID()] = a.Balance()
	}
	return r
}

func (r *mockAccountRepo) GetAccount(_ context.Context, id uuid.UUID) (model.Account, error) {
	a, ok := r.accounts[id]
	if !ok || a.IsDeleted() {
		return model.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func (r *mockAccountRepo) UpdateBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	if _, ok := r.accounts[id]; !ok {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	r.balances[id] = r.balances[id].Add(delta)
	return nil
}

func (r *mockAccountRepo) Save(_ context.Context, account model.Account) error {
	r.accounts[account.ID()] = account
	r.balances[account.ID()] = account.Balance()
	return nil
}

func (r *mockAccountRepo) Update(_ context.Context, account model.Account) error {
	if _, ok := r.accounts[account.ID()]; !ok {
		return fmt.Errorf("account %s: %w", account.ID(), domain.ErrNotFound)
	}
	r.accounts[account.ID()] = account
	return nil
}

func (r *mockAccountRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Account, error) {
	var out []model.Account
	for _, a := range r.accounts {
		if a.IsOwnedBy(ownerID) && !a.IsDeleted() {
			out = append(out, a)
		}
	}
	return out, nil
}

// mockTransactionRepo implements port.TransactionRepository.
type mockTransactionRepo struct {
	transactions map[uuid.UUID]model.Transaction
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{transactions: make(map[uuid.UUID]model.Transaction)}
}

func (r *mockTransactionRepo) Save(_ context.Context, tx model.Transaction) error {
	r.transactions[tx.ID()] = tx
	return nil
}

func (r *mockTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (model.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	return tx, nil
}

func (r *mockTransactionRepo) Update(_ context.Context, tx model.Transaction) error {
	if _, ok := r.transactions[tx.ID()]; !ok {
		return fmt.Errorf("transaction %s: %w", tx.ID(), domain.ErrNotFound)
	}
	r.transactions[tx.ID()] = tx
	return nil
}

func (r *mockTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.transactions[id]; !ok {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	delete(r.transactions, id)
	return nil
}

func (r *mockTransactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID, _, _ time.Time, limit, offset int) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, tx := range r.transactions {
		if tx.AccountID() == accountID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date().Before(out[j].Date()) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// mockInvestmentRepo implements port.InvestmentRepository.
type mockInvestmentRepo struct {
	investments map[uuid.UUID]model.Investment
}

func newMockInvestmentRepo(investments ...model.Investment) *mockInvestmentRepo {
	r := &mockInvestmentRepo{investments: make(map[uuid.UUID]model.Investment)}
	for _, inv := range investments {
		r.investments[inv.ID()] = inv
	}
	return r
}

func (r *mockInvestmentRepo) Save(_ context.Context, inv model.Investment) error {
	r.investments[inv.ID()] = inv
	return nil
}

func (r *mockInvestmentRepo) FindByID(_ context.Context, id uuid.UUID) (model.Investment, error) {
	inv, ok := r.investments[id]
	if !ok {
		return model.Investment{}, fmt.Errorf("investment %s: %w", id, domain.ErrNotFound)
	}
	return inv, nil
}

func (r *mockInvestmentRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Investment, error) {
	var out []model.Investment
	for _, inv := range r.investments {
		if inv.IsOwnedBy(ownerID) && !inv.IsDeleted() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *mockInvestmentRepo) Update(_ context.Context, inv model.Investment) error {
	r.investments[inv.ID()] = inv
	return nil
}

// mockTradeRepo implements port.TradeRepository.
type mockTradeRepo struct {
	trades []model.Trade
}

func (r *mockTradeRepo) Save(_ context.Context, trade model.Trade) error {
	r.trades = append(r.trades, trade)
	return nil
}

func (r *mockTradeRepo) FindByID(_ context.Context, id uuid.UUID) (model.Trade, error) {
	for _, t := range r.trades {
		if t.ID() == id {
			return t, nil
		}
	}
	return model.Trade{}, fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
}

func (r *mockTradeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range r.trades {
		if t.ID() == id {
			r.trades = append(r.trades[:i], r.trades[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("trade %s: %w", id, domain.ErrNotFound)
}

func (r *mockTradeRepo) ListByInvestment(_ context.Context, investmentID uuid.UUID) ([]model.Trade, error) {
	var out []model.Trade
	for _, t := range r.trades {
		if t.InvestmentID() == investmentID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExecutedAt().Before(out[j].ExecutedAt()) })
	return out, nil
}

// mockContributionRepo implements port.ContributionRepository.
type mockContributionRepo struct {
	contributions []model.Contribution
}

func (r *mockContributionRepo) Save(_ context.Context, c model.Contribution) error {
	r.contributions = append(r.contributions, c)
	return nil
}

func (r *mockContributionRepo) FindByID(_ context.Context, id uuid.UUID) (model.Contribution, error) {
	for _, c := range r.contributions {
		if c.ID() == id {
			return c, nil
		}
	}
	return model.Contribution{}, fmt.Errorf("contribution %s: %w", id, domain.ErrNotFound)
}

func (r *mockContributionRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range r.contributions {
		if c.ID() == id {
			r.contributions = append(r.contributions[:i], r.contributions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contribution %s: %w", id, domain.ErrNotFound)
}

func (r *mockContributionRepo) ListByInvestment(_ context.Context, investmentID uuid.UUID) ([]model.Contribution, error) {
	var out []model.Contribution
	for _, c := range r.contributions {
		if c.InvestmentID() == investmentID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt().Before(out[j].OccurredAt()) })
	return out, nil
}

// mockValuationRepo implements port.ValuationRepository.
type mockValuationRepo struct {
	valuations []model.Valuation
}

func (r *mockValuationRepo) Save(_ context.Context, v model.Valuation) error {
	r.valuations = append(r.valuations, v)
	return nil
}

func (r *mockValuationRepo) FindLatest(_ context.Context, investmentID uuid.UUID) (model.Valuation, error) {
	var (
		latest model.Valuation
		found  bool
	)
	for _, v := range r.valuations {
		if v.InvestmentID() != investmentID {
			continue
		}
		if !found || v.ObservedAt().After(latest.ObservedAt()) {
			latest = v
			found = true
		}
	}
	if !found {
		return model.Valuation{}, fmt.Errorf("valuation for %s: %w", investmentID, domain.ErrNotFound)
	}
	return latest, nil
}

// mockEventPublisher implements port.EventPublisher.
type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, topic string, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// mockRates implements port.RateProvider over a fixed pair table.
type mockRates struct {
	pairs map[string]decimal.Decimal
}

func (p *mockRates) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	if rate, ok := p.pairs[from+"/"+to]; ok {
		return rate, nil
	}
	return decimal.Decimal{}, fmt.Errorf("no rate for %s/%s", from, to)
}

// fakeUnitOfWork runs the function directly against the backing stores.
// Rollback is not simulated; tests that exercise failure paths assert that
// the use case validates before it writes.
type fakeUnitOfWork struct {
	stores port.Stores
}

func (u *fakeUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, s port.Stores) error) error {
	return fn(ctx, u.stores)
}

// testEnv bundles the full mock wiring of a use-case test.
type testEnv struct {
	accounts      *mockAccountRepo
	transactions  *mockTransactionRepo
	investments   *mockInvestmentRepo
	trades        *mockTradeRepo
	contributions *mockContributionRepo
	valuations    *mockValuationRepo
	publisher     *mockEventPublisher
	rates         *mockRates
	uow           *fakeUnitOfWork
}

func newTestEnv(accounts ...model.Account) *testEnv {
	env := &testEnv{
		accounts:      newMockAccountRepo(accounts...),
		transactions:  newMockTransactionRepo(),
		investments:   newMockInvestmentRepo(),
		trades:        &mockTradeRepo{},
		contributions: &mockContributionRepo{},
		valuations:    &mockValuationRepo{},
		publisher:     &mockEventPublisher{},
		rates:         &mockRates{pairs: map[string]decimal.Decimal{}},
	}
	env.uow = &fakeUnitOfWork{stores: port.Stores{
		Accounts:      env.accounts,
		Transactions:  env.transactions,
		Investments:   env.investments,
		Trades:        env.trades,
		Contributions: env.contributions,
		Valuations:    env.valuations,
	}}
	return env
}
