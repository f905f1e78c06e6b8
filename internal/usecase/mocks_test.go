package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/infra/queue"
)

type MockCRMClient struct {
	mock.Mock
}

func (m *MockCRMClient) SubmitForm(ctx context.Context, formID string, data map[string]interface{}) (map[string]interface{}, error) {
	args := m.Called(ctx, formID, data)
	resp, _ := args.Get(0).(map[string]interface{})
	return resp, args.Error(1)
}

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, rec *entity.SubmissionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockSubmissionRepository) ListByForm(ctx context.Context, formID string, limit int) ([]*entity.SubmissionRecord, error) {
	args := m.Called(ctx, formID, limit)
	recs, _ := args.Get(0).([]*entity.SubmissionRecord)
	return recs, args.Error(1)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishReferral(ctx context.Context, payload queue.ReferralPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockQueueProducer) PublishSubmissionEvent(ctx context.Context, event queue.SubmissionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	if args.Error(0) == nil {
		lead.ID = "lead-1"
		lead.Status = entity.LeadNew
	}
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, email, status string) error {
	args := m.Called(ctx, email, status)
	return args.Error(0)
}

type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(ctx context.Context, r *entity.Referral) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReferralRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReferralRepository) FindByID(ctx context.Context, id string) (*entity.Referral, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Referral)
	return r, args.Error(1)
}

func float64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
