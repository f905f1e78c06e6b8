package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/infra/queue"
	"github.com/rokfinancial/broker-portal/internal/logger"
)

type submitFormFixture struct {
	crm    *MockCRMClient
	repo   *MockSubmissionRepository
	events *MockQueueProducer
	uc     *SubmitFormUseCase
}

func newSubmitFormFixture(t *testing.T) *submitFormFixture {
	t.Helper()
	forms := applicationForms()
	validator, err := NewFormSchemaValidator(forms)
	require.NoError(t, err)

	f := &submitFormFixture{
		crm:    new(MockCRMClient),
		repo:   new(MockSubmissionRepository),
		events: new(MockQueueProducer),
	}
	f.uc = NewSubmitFormUseCase(forms, validator, f.crm, f.repo, f.events, logger.NewTestLogger(t))
	return f
}

func (f *submitFormFixture) assertExpectations(t *testing.T) {
	f.crm.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestSubmitFormUseCase_MappedForm(t *testing.T) {
	f := newSubmitFormFixture(t)
	ctx := context.Background()

	f.crm.On("SubmitForm", ctx, applicationFormID, map[string]interface{}{
		"firstName": "Jane",
		"email":     "j@x.com",
	}).Return(map[string]interface{}{"id": "ghl-123"}, nil).Once()
	f.repo.On("Create", ctx, mock.MatchedBy(func(r *entity.SubmissionRecord) bool {
		return r.FormID == applicationFormID && r.Mapped && r.Status == entity.SubmissionSucceeded &&
			r.PartnerReference == "ghl-123" && r.FieldCount == 2
	})).Return(nil).Once()
	f.events.On("PublishSubmissionEvent", ctx, mock.MatchedBy(func(e queue.SubmissionEvent) bool {
		return e.FormID == applicationFormID && e.Status == entity.SubmissionSucceeded
	})).Return(nil).Once()

	out, err := f.uc.Execute(ctx, entity.FormSubmission{
		FormID: applicationFormID,
		Data:   map[string]interface{}{"firstName": "Jane", "lastName": "", "email": "j@x.com"},
	})

	require.NoError(t, err)
	assert.True(t, out.Mapped)
	assert.NotEmpty(t, out.SubmissionID)
	assert.Equal(t, map[string]interface{}{"id": "ghl-123"}, out.Response)
	f.assertExpectations(t)
}

func TestSubmitFormUseCase_UnknownFormPassesThrough(t *testing.T) {
	f := newSubmitFormFixture(t)
	ctx := context.Background()
	data := map[string]interface{}{"firstName": "Jane", "lastName": "", "email": "j@x.com"}

	f.crm.On("SubmitForm", ctx, "unknown-id-123", map[string]interface{}{
		"firstName": "Jane",
		"email":     "j@x.com",
	}).Return(map[string]interface{}{}, nil).Once()
	f.repo.On("Create", ctx, mock.MatchedBy(func(r *entity.SubmissionRecord) bool {
		return !r.Mapped && r.PartnerReference == ""
	})).Return(nil).Once()
	f.events.On("PublishSubmissionEvent", ctx, mock.Anything).Return(nil).Once()

	out, err := f.uc.Execute(ctx, entity.FormSubmission{FormID: "unknown-id-123", Data: data})

	require.NoError(t, err)
	assert.False(t, out.Mapped)
	f.assertExpectations(t)
}

func TestSubmitFormUseCase_UnknownFormLogsWarning(t *testing.T) {
	f := newSubmitFormFixture(t)
	ctx := context.Background()

	core, logs := observer.New(zap.WarnLevel)
	f.uc = NewSubmitFormUseCase(applicationForms(), f.uc.Validator, f.crm, f.repo, f.events, logger.NewZapAdapter(zap.New(core)))

	f.crm.On("SubmitForm", ctx, "unknown-id-123", map[string]interface{}{"firstName": "Jane"}).
		Return(map[string]interface{}{}, nil).Once()
	f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	f.events.On("PublishSubmissionEvent", ctx, mock.Anything).Return(nil).Once()

	_, err := f.uc.Execute(ctx, entity.FormSubmission{
		FormID: "unknown-id-123",
		Data:   map[string]interface{}{"firstName": "Jane", "x": nil},
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "unknown-id-123", entries[0].ContextMap()["formId"])
	f.assertExpectations(t)
}

func TestSubmitFormUseCase_MappedFormDoesNotWarn(t *testing.T) {
	f := newSubmitFormFixture(t)
	ctx := context.Background()

	core, logs := observer.New(zap.WarnLevel)
	f.uc = NewSubmitFormUseCase(applicationForms(), f.uc.Validator, f.crm, f.repo, f.events, logger.NewZapAdapter(zap.New(core)))

	f.crm.On("SubmitForm", ctx, applicationFormID, mock.Anything).Return(map[string]interface{}{"id": "ghl-1"}, nil).Once()
	f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	f.events.On("PublishSubmissionEvent", ctx, mock.Anything).Return(nil).Once()

	_, err := f.uc.Execute(ctx, entity.FormSubmission{
		FormID: applicationFormID,
		Data:   map[string]interface{}{"firstName": "Jane"},
	})
	require.NoError(t, err)

	assert.Zero(t, logs.Len())
	f.assertExpectations(t)
}

func TestSubmitFormUseCase_PartnerErrorIsReturnedUnchanged(t *testing.T) {
	f := newSubmitFormFixture(t)
	ctx := context.Background()
	partnerErr := errors.New("Form not found")

	f.crm.On("SubmitForm", ctx, applicationFormID, mock.Anything).Return(nil, partnerErr).Once()
	f.repo.On("Create", ctx, mock.MatchedBy(func(r *entity.SubmissionRecord) bool {
		return r.Status == entity.SubmissionFailed && r.ErrorMessage == "Form not found"
	})).Return(nil).Once()
	f.events.On("PublishSubmissionEvent", ctx, mock.MatchedBy(func(e queue.SubmissionEvent) bool {
		return e.Status == entity.SubmissionFailed
	})).Return(nil).Once()

	out, err := f.uc.Execute(ctx, entity.FormSubmission{
		FormID: applicationFormID,
		Data:   map[string]interface{}{"firstName": "Jane"},
	})

	assert.Nil(t, out)
	assert.Same(t, partnerErr, err)
	f.crm.AssertNumberOfCalls(t, "SubmitForm", 1)
	f.assertExpectations(t)
}

func TestSubmitFormUseCase_AuditFailuresDoNotChangeResult(t *testing.T) {
	f := newSubmitFormFixture(t)
	ctx := context.Background()

	f.crm.On("SubmitForm", ctx, applicationFormID, mock.Anything).
		Return(map[string]interface{}{"contactId": "c-9"}, nil).Once()
	f.repo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()
	f.events.On("PublishSubmissionEvent", ctx, mock.Anything).Return(errors.New("channel closed")).Once()

	out, err := f.uc.Execute(ctx, entity.FormSubmission{
		FormID: applicationFormID,
		Data:   map[string]interface{}{"email": "j@x.com"},
	})

	require.NoError(t, err)
	assert.Equal(t, "c-9", out.Response["contactId"])
	f.assertExpectations(t)
}

func TestSubmitFormUseCase_InvalidFieldTypes(t *testing.T) {
	f := newSubmitFormFixture(t)

	out, err := f.uc.Execute(context.Background(), entity.FormSubmission{
		FormID: applicationFormID,
		Data:   map[string]interface{}{"loanAmount": "lots"},
	})

	assert.Nil(t, out)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeInvalidFormData, de.Code)
	assert.Contains(t, de.Message, "loanAmount")
	f.crm.AssertNotCalled(t, "SubmitForm", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitFormUseCase_RequiresFormID(t *testing.T) {
	f := newSubmitFormFixture(t)

	_, err := f.uc.Execute(context.Background(), entity.FormSubmission{FormID: "  "})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)
}

func TestSubmitFormUseCase_OptionalCollaborators(t *testing.T) {
	crm := new(MockCRMClient)
	uc := NewSubmitFormUseCase(applicationForms(), nil, crm, nil, nil, logger.NewNoOpLogger())
	ctx := context.Background()

	crm.On("SubmitForm", ctx, applicationFormID, map[string]interface{}{"firstName": "Jane"}).
		Return(map[string]interface{}{"ok": true}, nil).Once()

	out, err := uc.Execute(ctx, entity.FormSubmission{
		FormID: applicationFormID,
		Data:   map[string]interface{}{"firstName": "Jane"},
	})

	require.NoError(t, err)
	assert.Equal(t, true, out.Response["ok"])
	crm.AssertExpectations(t)
}
