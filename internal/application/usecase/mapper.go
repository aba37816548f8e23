package usecase

import (
	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain/model"
)

func toAccountResponse(a model.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:          a.ID(),
		OwnerID:     a.OwnerID(),
		Name:        a.Name(),
		Currency:    a.Currency(),
		Kind:        string(a.Kind()),
		Balance:     a.Balance(),
		CreditLimit: a.CreditLimit(),
		Version:     a.Version(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func toTransactionResponse(t model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                t.ID(),
		OwnerID:           t.OwnerID(),
		Kind:              string(t.Kind()),
		AccountID:         t.AccountID(),
		CounterAccountID:  t.CounterAccountID(),
		Amount:            t.Amount(),
		Fee:               t.Fee(),
		Currency:          t.Currency(),
		DestinationAmount: t.DestinationAmount(),
		Date:              t.Date(),
		Note:              t.Note(),
		Version:           t.Version(),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
	}
}

func toInvestmentResponse(i model.Investment) dto.InvestmentResponse {
	return dto.InvestmentResponse{
		ID:           i.ID(),
		OwnerID:      i.OwnerID(),
		Name:         i.Name(),
		Mode:         string(i.Mode()),
		Currency:     i.Currency(),
		BaseCurrency: i.BaseCurrency(),
		CreatedAt:    i.CreatedAt(),
		UpdatedAt:    i.UpdatedAt(),
	}
}

func toTradeResponse(t model.Trade) dto.TradeResponse {
	return dto.TradeResponse{
		ID:           t.ID(),
		InvestmentID: t.InvestmentID(),
		AccountID:    t.AccountID(),
		Side:         string(t.Side()),
		Quantity:     t.Quantity(),
		Price:        t.Price(),
		Amount:       t.Amount(),
		Fee:          t.Fee(),
		Currency:     t.Currency(),
		BaseAmount:   t.BaseAmount(),
		ExecutedAt:   t.ExecutedAt(),
		CreatedAt:    t.CreatedAt(),
	}
}

func toContributionResponse(c model.Contribution) dto.ContributionResponse {
	return dto.ContributionResponse{
		ID:           c.ID(),
		InvestmentID: c.InvestmentID(),
		AccountID:    c.AccountID(),
		Kind:         string(c.Kind()),
		Amount:       c.Amount(),
		Currency:     c.Currency(),
		BaseAmount:   c.BaseAmount(),
		OccurredAt:   c.OccurredAt(),
		CreatedAt:    c.CreatedAt(),
	}
}

func toValuationResponse(v model.Valuation) dto.ValuationResponse {
	return dto.ValuationResponse{
		ID:           v.ID(),
		InvestmentID: v.InvestmentID(),
		Price:        v.Price(),
		Value:        v.Value(),
		Currency:     v.Currency(),
		BasePrice:    v.BasePrice(),
		Rate:         v.Rate(),
		ObservedAt:   v.ObservedAt(),
		CreatedAt:    v.CreatedAt(),
	}
}

func toPositionResponse(inv model.Investment, p model.Position) dto.PositionResponse {
	return dto.PositionResponse{
		InvestmentID:         inv.ID(),
		Quantity:             p.Quantity,
		AvgCost:              p.AvgCost,
		CostBasis:            p.CostBasis,
		RealizedPnl:          p.RealizedPnl,
		UnrealizedPnl:        p.UnrealizedPnl,
		NetContributions:     p.NetContributions,
		LastPrice:            p.LastPrice,
		LastValue:            p.LastValue,
		CostBasisBase:        p.CostBasisBase,
		RealizedPnlBase:      p.RealizedPnlBase,
		UnrealizedPnlBase:    p.UnrealizedPnlBase,
		LastValueBase:        p.LastValueBase,
		ExchangeRateGainLoss: p.ExchangeRateGainLoss,
	}
}
