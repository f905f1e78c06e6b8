package usecase

import (
	"context"

	"github.com/rokfinancial/broker-portal/internal/infra/queue"
)

// CRMClient is satisfied by *gohighlevel.Client.
type CRMClient interface {
	SubmitForm(ctx context.Context, formID string, data map[string]interface{}) (map[string]interface{}, error)
}

type SubmissionEventPublisher interface {
	PublishSubmissionEvent(ctx context.Context, event queue.SubmissionEvent) error
}

type ReferralPublisher interface {
	PublishReferral(ctx context.Context, payload queue.ReferralPayload) error
}
