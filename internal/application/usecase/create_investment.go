package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/domain/model"
	"github.com/moneta-app/moneta/internal/domain/port"
)

const TopicInvestments = "moneta.ledger.investments"

// CreateInvestment handles the creation of a new investment.
type CreateInvestment struct {
	investments port.InvestmentRepository
}

func NewCreateInvestment(investments port.InvestmentRepository) *CreateInvestment {
	return &CreateInvestment{investments: investments}
}

func (uc *CreateInvestment) Execute(ctx context.Context, req dto.CreateInvestmentRequest) (dto.InvestmentResponse, error) {
	mode, err := model.ParseInvestmentMode(req.Mode)
	if err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	inv, err := model.NewInvestment(req.OwnerID, req.Name, mode, req.Currency, req.BaseCurrency)
	if err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := uc.investments.Save(ctx, inv); err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("failed to save investment: %w", err)
	}

	return toInvestmentResponse(inv), nil
}
