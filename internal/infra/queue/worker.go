package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/logger"
)

var ErrUnknownLender = errors.New("lender not found in registry")

// EmailDispatcher delivers a referral to lenders using the email channel.
type EmailDispatcher interface {
	SendReferral(to, lenderName string, payload ReferralPayload) error
}

// APIDispatcher delivers a referral to lenders exposing an intake API.
type APIDispatcher interface {
	PushLead(ctx context.Context, channel entity.Channel, payload ReferralPayload) error
}

type ReferralStatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

type Worker struct {
	Channel   *amqp.Channel
	Registry  *entity.LenderRegistry
	Email     EmailDispatcher
	API       APIDispatcher
	Referrals ReferralStatusUpdater
	Logger    logger.Logger
	Timeout   time.Duration
}

func NewWorker(ch *amqp.Channel, registry *entity.LenderRegistry, email EmailDispatcher, api APIDispatcher, referrals ReferralStatusUpdater, log logger.Logger) *Worker {
	return &Worker{
		Channel:   ch,
		Registry:  registry,
		Email:     email,
		API:       api,
		Referrals: referrals,
		Logger:    log.WithFields(map[string]interface{}{"component": "referral-worker"}),
		Timeout:   30 * time.Second,
	}
}

// Start consumes the referral queue until ctx is cancelled or the delivery
// channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	w.Logger.Info("worker waiting for referrals", map[string]interface{}{"queue": queueName})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			if err := w.HandleMessage(ctx, d.Body); err != nil {
				w.Logger.Error("referral dispatch failed", map[string]interface{}{"error": err})
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

// HandleMessage decodes and dispatches a single referral. A returned error
// means the message should be dead-lettered.
func (w *Worker) HandleMessage(ctx context.Context, body []byte) error {
	var payload ReferralPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("invalid referral payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	log := w.Logger.WithFields(map[string]interface{}{
		"referralId": payload.ReferralID,
		"lenderId":   payload.LenderID,
	})

	if err := w.dispatch(ctx, payload); err != nil {
		if uerr := w.Referrals.UpdateStatus(ctx, payload.ReferralID, entity.ReferralFailed); uerr != nil {
			log.Warn("failed to mark referral as failed", map[string]interface{}{"error": uerr})
		}
		return err
	}

	if err := w.Referrals.UpdateStatus(ctx, payload.ReferralID, entity.ReferralDispatched); err != nil {
		log.Warn("referral dispatched but status update failed", map[string]interface{}{"error": err})
	}
	log.Info("referral dispatched", nil)
	return nil
}

func (w *Worker) dispatch(ctx context.Context, payload ReferralPayload) error {
	lender, ok := w.Registry.ByID(payload.LenderID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLender, payload.LenderID)
	}

	switch lender.Channel.Type {
	case entity.ChannelEmail:
		return w.Email.SendReferral(lender.Channel.Email, lender.Name, payload)
	case entity.ChannelAPI:
		return w.API.PushLead(ctx, lender.Channel, payload)
	case entity.ChannelLink:
		// Link referrals are completed by redirecting the user.
		return nil
	default:
		return fmt.Errorf("unsupported channel %q", lender.Channel.Type)
	}
}
