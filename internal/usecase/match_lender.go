package usecase

import (
	"context"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/infra/http/middleware"
	"github.com/rokfinancial/broker-portal/internal/logger"
)

type MatchLenderUseCase struct {
	Registry *entity.LenderRegistry
	Logger   logger.Logger
}

func NewMatchLenderUseCase(registry *entity.LenderRegistry, log logger.Logger) *MatchLenderUseCase {
	return &MatchLenderUseCase{
		Registry: registry,
		Logger:   log.WithFields(map[string]interface{}{"usecase": "match-lender"}),
	}
}

// Execute validates the request and runs the matcher. An empty match is a
// normal outcome reported through Found, not an error.
func (uc *MatchLenderUseCase) Execute(ctx context.Context, req entity.LoanRequest) (*MatchLenderOutput, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: joinValidationErrors("validation failed: ", errs),
		}
	}

	eligible := EligibleLenders(uc.Registry, req)
	if len(eligible) == 0 {
		middleware.RecordLenderMatch("not_found")
		uc.Logger.Info("no eligible lender", map[string]interface{}{
			"loanAmount": req.LoanAmount,
			"state":      req.State,
		})
		return &MatchLenderOutput{Found: false}, nil
	}

	middleware.RecordLenderMatch("found")
	best := eligible[0]
	uc.Logger.Debug("lender matched", map[string]interface{}{
		"lenderId":   best.ID,
		"candidates": len(eligible),
	})

	return &MatchLenderOutput{
		Found:      true,
		Lender:     &best,
		Alternates: eligible[1:],
	}, nil
}
