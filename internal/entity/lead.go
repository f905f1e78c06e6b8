package entity

import (
	"context"
	"time"
)

type Lead struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"` // NEW, ROUTED, UNROUTABLE
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	LeadNew        = "NEW"
	LeadRouted     = "ROUTED"
	LeadUnroutable = "UNROUTABLE"
)

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, email, status string) error
}
