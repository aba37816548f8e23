package usecase

import (
	"context"
	"fmt"

	"github.com/moneta-app/moneta/internal/application/dto"
	"github.com/moneta-app/moneta/internal/domain/port"
)

// ListInvestments retrieves all live investments owned by the caller.
type ListInvestments struct {
	investments port.InvestmentRepository
}

func NewListInvestments(investments port.InvestmentRepository) *ListInvestments {
	return &ListInvestments{investments: investments}
}

func (uc *ListInvestments) Execute(ctx context.Context, req dto.ListInvestmentsRequest) (dto.ListInvestmentsResponse, error) {
	invs, err := uc.investments.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return dto.ListInvestmentsResponse{}, fmt.Errorf("failed to list investments: %w", err)
	}

	resp := dto.ListInvestmentsResponse{Investments: make([]dto.InvestmentResponse, 0, len(invs))}
	for _, inv := range invs {
		resp.Investments = append(resp.Investments, toInvestmentResponse(inv))
	}
	return resp, nil
}
