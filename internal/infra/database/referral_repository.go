package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

type ReferralRepository struct {
	DB *sql.DB
}

func NewReferralRepository(db *sql.DB) *ReferralRepository {
	return &ReferralRepository{DB: db}
}

func (r *ReferralRepository) Create(ctx context.Context, ref *entity.Referral) error {
	query := `
		INSERT INTO referrals (
			id, lead_email, lead_name, lead_phone, lender_id, channel,
			loan_amount, state, property_type, status, redirect_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		ref.ID,
		ref.LeadEmail,
		nullString(ref.LeadName),
		nullString(ref.LeadPhone),
		ref.LenderID,
		string(ref.Channel),
		ref.LoanAmount,
		nullString(ref.State),
		nullString(ref.PropertyType),
		ref.Status,
		nullString(ref.RedirectURL),
		ref.CreatedAt,
		ref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert referral: %w", err)
	}
	return nil
}

func (r *ReferralRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE referrals SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update referral status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrReferralNotFound
	}
	return nil
}

func (r *ReferralRepository) FindByID(ctx context.Context, id string) (*entity.Referral, error) {
	query := `
		SELECT id, lead_email, COALESCE(lead_name, ''), COALESCE(lead_phone, ''), lender_id, channel,
			loan_amount, COALESCE(state, ''), COALESCE(property_type, ''), status, COALESCE(redirect_url, ''),
			created_at, updated_at
		FROM referrals
		WHERE id = $1
	`

	var ref entity.Referral
	var channel string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&ref.ID,
		&ref.LeadEmail,
		&ref.LeadName,
		&ref.LeadPhone,
		&ref.LenderID,
		&channel,
		&ref.LoanAmount,
		&ref.State,
		&ref.PropertyType,
		&ref.Status,
		&ref.RedirectURL,
		&ref.CreatedAt,
		&ref.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrReferralNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load referral: %w", err)
	}
	ref.Channel = entity.ChannelType(channel)
	return &ref, nil
}

// MarkStale flags referrals still pending after olderThan and returns their ids.
func (r *ReferralRepository) MarkStale(ctx context.Context, olderThan time.Duration) ([]string, error) {
	query := `
		UPDATE referrals
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3
		RETURNING id
	`

	rows, err := r.DB.QueryContext(ctx, query, entity.ReferralStale, entity.ReferralPending, time.Now().Add(-olderThan))
	if err != nil {
		return nil, fmt.Errorf("failed to mark stale referrals: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
