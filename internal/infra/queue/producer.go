package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReferralPayload carries a routed lead to the dispatch worker. Lender
// credentials stay in the registry and are never published.
type ReferralPayload struct {
	ReferralID   string  `json:"referral_id"`
	LenderID     string  `json:"lender_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	LoanAmount   float64 `json:"loan_amount"`
	State        string  `json:"state,omitempty"`
	PropertyType string  `json:"property_type,omitempty"`
	CreditScore  *int    `json:"credit_score,omitempty"`
}

// SubmissionEvent is emitted after each CRM form submission for reconciliation.
type SubmissionEvent struct {
	SubmissionID     string    `json:"submission_id"`
	FormID           string    `json:"form_id"`
	Status           string    `json:"status"`
	PartnerReference string    `json:"partner_reference,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher is the subset of *amqp.Channel used by the producer.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishReferral(ctx context.Context, payload ReferralPayload) error {
	return p.publish(ctx, ReferralRoutingKey, payload)
}

func (p *RabbitMQProducer) PublishSubmissionEvent(ctx context.Context, event SubmissionEvent) error {
	return p.publish(ctx, SubmissionRoutingKey, event)
}

func (p *RabbitMQProducer) publish(ctx context.Context, key string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to rabbitmq: %w", err)
	}

	return nil
}
