package lenderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/infra/queue"
	"github.com/rokfinancial/broker-portal/internal/logger"
)

const LeadSource = "rok-financial-portal"

// Client pushes routed leads to lenders that expose an intake API.
type Client struct {
	HTTPClient *http.Client
	Logger     logger.Logger
}

func NewClient(timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     log.WithFields(map[string]interface{}{"integration": "lenderapi"}),
	}
}

func (c *Client) PushLead(ctx context.Context, channel entity.Channel, payload queue.ReferralPayload) error {
	input := LeadInput{
		ReferenceID:  payload.ReferralID,
		FullName:     payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		LoanAmount:   payload.LoanAmount,
		State:        payload.State,
		PropertyType: payload.PropertyType,
		CreditScore:  payload.CreditScore,
		Source:       LeadSource,
	}

	if err := c.post(ctx, channel.Endpoint, channel.Credential, input); err != nil {
		return fmt.Errorf("lender %s rejected lead: %w", payload.LenderID, err)
	}

	if channel.Webhook == "" {
		return nil
	}

	// The lead is already delivered; a webhook failure must not fail the referral.
	notification := WebhookNotification{
		ReferenceID: payload.ReferralID,
		LenderID:    payload.LenderID,
		Event:       "lead.delivered",
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.post(ctx, channel.Webhook, channel.Credential, notification); err != nil {
		c.Logger.Warn("webhook notification failed", map[string]interface{}{
			"lenderId": payload.LenderID,
			"error":    err,
		})
	}

	return nil
}

func (c *Client) post(ctx context.Context, url, credential string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(errBody))
	}

	return nil
}
