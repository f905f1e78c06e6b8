package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

const (
	DefaultSubmissionLimit = 50
	MaxSubmissionLimit     = 500
)

type SubmissionRepository struct {
	DB *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, rec *entity.SubmissionRecord) error {
	query := `
		INSERT INTO form_submissions (
			id, form_id, mapped, status, partner_reference, error_message, field_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.FormID,
		rec.Mapped,
		rec.Status,
		nullString(rec.PartnerReference),
		nullString(rec.ErrorMessage),
		rec.FieldCount,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission record: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) ListByForm(ctx context.Context, formID string, limit int) ([]*entity.SubmissionRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultSubmissionLimit
	case limit > MaxSubmissionLimit:
		limit = MaxSubmissionLimit
	}

	query := `
		SELECT id, form_id, mapped, status, COALESCE(partner_reference, ''), COALESCE(error_message, ''), field_count, created_at
		FROM form_submissions
		WHERE form_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, formID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var out []*entity.SubmissionRecord
	for rows.Next() {
		var rec entity.SubmissionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.FormID,
			&rec.Mapped,
			&rec.Status,
			&rec.PartnerReference,
			&rec.ErrorMessage,
			&rec.FieldCount,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
