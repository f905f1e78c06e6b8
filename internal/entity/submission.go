package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionSucceeded = "SUCCEEDED"
	SubmissionFailed    = "FAILED"
)

// SubmissionRecord is the audit row written for every CRM form submission attempt.
type SubmissionRecord struct {
	ID               string    `json:"id"`
	FormID           string    `json:"form_id"`
	Mapped           bool      `json:"mapped"`
	Status           string    `json:"status"`
	PartnerReference string    `json:"partner_reference,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	FieldCount       int       `json:"field_count"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewSubmissionRecord(formID string, mapped bool, fieldCount int) *SubmissionRecord {
	return &SubmissionRecord{
		ID:         uuid.New().String(),
		FormID:     formID,
		Mapped:     mapped,
		FieldCount: fieldCount,
		CreatedAt:  time.Now(),
	}
}

type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, rec *SubmissionRecord) error
	ListByForm(ctx context.Context, formID string, limit int) ([]*SubmissionRecord, error)
}
