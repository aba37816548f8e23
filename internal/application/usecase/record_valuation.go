package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/event"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
)

// RecordValuation records a market observation for an investment: a per-unit
// price in priced mode, a total value in manual mode.
type RecordValuation struct {
	investments port.InvestmentRepository
	valuations  port.ValuationRepository
	publisher   port.EventPublisher
}

func NewRecordValuation(investments port.InvestmentRepository, valuations port.ValuationRepository, publisher port.EventPublisher) *RecordValuation {
	return &RecordValuation{investments: investments, valuations: valuations, publisher: publisher}
}

func (uc *RecordValuation) Execute(ctx context.Context, req dto.RecordValuationRequest) (dto.ValuationResponse, error) {
	inv, err := requireOwnedInvestment(ctx, uc.investments, req.OwnerID, req.InvestmentID)
	if err != nil {
		return dto.ValuationResponse{}, err
	}

	switch inv.Mode() {
	case model.ModePriced:
		if req.Price == nil {
			return dto.ValuationResponse{}, fmt.Errorf("%w: a priced investment is valued by price", domain.ErrValidation)
		}
	case model.ModeManual:
		if req.Value == nil {
			return dto.ValuationResponse{}, fmt.Errorf("%w: a manual investment is valued by total value", domain.ErrValidation)
		}
	}

	valuation, err := model.NewValuation(
		inv.ID(), req.Price, req.Value, req.Currency,
		req.BasePrice, req.Rate, req.ObservedAt)
	if err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := uc.valuations.Save(ctx, valuation); err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("failed to save valuation: %w", err)
	}

	evt := event.NewInvestmentEventRecorded(inv.ID(), req.OwnerID, "valuation", valuation.ID())
	if err := uc.publisher.Publish(ctx, TopicInvestments, evt); err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("failed to publish events: %w", err)
	}

	return toValuationResponse(valuation), nil
}
