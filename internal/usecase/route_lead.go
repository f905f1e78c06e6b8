package usecase

import (
	"context"
	"strings"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/infra/http/middleware"
	"github.com/rokfinancial/broker-portal/internal/infra/queue"
	"github.com/rokfinancial/broker-portal/internal/logger"
)

type RouteLeadUseCase struct {
	Registry     *entity.LenderRegistry
	LeadRepo     entity.LeadRepositoryInterface
	ReferralRepo entity.ReferralRepositoryInterface
	Queue        ReferralPublisher
	Logger       logger.Logger
}

func NewRouteLeadUseCase(
	registry *entity.LenderRegistry,
	leadRepo entity.LeadRepositoryInterface,
	referralRepo entity.ReferralRepositoryInterface,
	q ReferralPublisher,
	log logger.Logger,
) *RouteLeadUseCase {
	return &RouteLeadUseCase{
		Registry:     registry,
		LeadRepo:     leadRepo,
		ReferralRepo: referralRepo,
		Queue:        q,
		Logger:       log.WithFields(map[string]interface{}{"usecase": "route-lead"}),
	}
}

// Execute captures the lead, picks the best lender and hands the referral to
// that lender's channel. Link referrals complete immediately with a redirect;
// email and api referrals are queued for the dispatch worker.
func (uc *RouteLeadUseCase) Execute(ctx context.Context, input RouteLeadInput) (*RouteLeadOutput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if errs := ValidateRouteLeadInput(input); len(errs) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: joinValidationErrors("validation failed: ", errs),
		}
	}

	lead := &entity.Lead{Email: input.Email, Name: input.Name, Phone: input.Phone}
	if err := uc.LeadRepo.Upsert(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to capture lead: " + err.Error(), Err: err}
	}

	log := uc.Logger.WithFields(map[string]interface{}{"leadId": lead.ID})

	lender, ok := FindBestLender(uc.Registry, input.LoanRequest)
	if !ok {
		middleware.RecordLenderMatch("not_found")
		if err := uc.LeadRepo.UpdateStatus(ctx, lead.Email, entity.LeadUnroutable); err != nil {
			log.Warn("failed to mark lead unroutable", map[string]interface{}{"error": err})
		}
		return nil, &DomainError{
			Code:    CodeNoEligibleLender,
			Message: "no lender is currently accepting this request",
		}
	}
	middleware.RecordLenderMatch("found")

	referral := entity.NewReferral(*lead, *lender, input.LoanRequest)
	if lender.Channel.Type == entity.ChannelLink {
		referral.Status = entity.ReferralDispatched
	}

	txn := NewTransaction(log)
	txn.AddOperation("create_referral", func(ctx context.Context) error {
		return uc.ReferralRepo.Create(ctx, referral)
	})
	txn.AddCompensation("fail_referral", func(ctx context.Context) error {
		return uc.ReferralRepo.UpdateStatus(ctx, referral.ID, entity.ReferralFailed)
	})

	if lender.Channel.Type != entity.ChannelLink {
		txn.AddOperation("publish_referral", func(ctx context.Context) error {
			return uc.Queue.PublishReferral(ctx, queue.ReferralPayload{
				ReferralID:   referral.ID,
				LenderID:     lender.ID,
				Name:         lead.Name,
				Email:        lead.Email,
				Phone:        lead.Phone,
				LoanAmount:   input.LoanAmount,
				State:        input.State,
				PropertyType: input.PropertyType,
				CreditScore:  input.CreditScore,
			})
		})
	}

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{Code: CodeRouting, Message: "failed to route lead: " + err.Error(), Err: err}
	}

	if err := uc.LeadRepo.UpdateStatus(ctx, lead.Email, entity.LeadRouted); err != nil {
		log.Warn("failed to mark lead routed", map[string]interface{}{"error": err})
	}

	middleware.RecordReferral(string(lender.Channel.Type))
	log.Info("lead routed", map[string]interface{}{
		"referralId": referral.ID,
		"lenderId":   lender.ID,
		"channel":    lender.Channel.Type,
	})

	return &RouteLeadOutput{
		ReferralID:  referral.ID,
		LenderID:    lender.ID,
		LenderName:  lender.Name,
		Channel:     lender.Channel.Type,
		Status:      referral.Status,
		RedirectURL: referral.RedirectURL,
	}, nil
}
