package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/infra/http/middleware"
	"github.com/rokfinancial/broker-portal/internal/infra/queue"
	"github.com/rokfinancial/broker-portal/internal/logger"
)

const crmServiceName = "gohighlevel"

// partnerReferenceKeys are checked in order to find the CRM-side id of a submission.
var partnerReferenceKeys = []string{"id", "submissionId", "contactId"}

type SubmitFormUseCase struct {
	Forms          entity.FormMappingTable
	Validator      *FormSchemaValidator
	CRM            CRMClient
	SubmissionRepo entity.SubmissionRepositoryInterface
	Events         SubmissionEventPublisher
	Logger         logger.Logger
}

func NewSubmitFormUseCase(
	forms entity.FormMappingTable,
	validator *FormSchemaValidator,
	crm CRMClient,
	submissionRepo entity.SubmissionRepositoryInterface,
	events SubmissionEventPublisher,
	log logger.Logger,
) *SubmitFormUseCase {
	return &SubmitFormUseCase{
		Forms:          forms,
		Validator:      validator,
		CRM:            crm,
		SubmissionRepo: submissionRepo,
		Events:         events,
		Logger:         log.WithFields(map[string]interface{}{"usecase": "submit-form"}),
	}
}

// Execute maps the record for the target form and forwards it to the CRM.
// Partner failures are returned unchanged and never retried here.
func (uc *SubmitFormUseCase) Execute(ctx context.Context, input entity.FormSubmission) (*SubmitFormOutput, error) {
	if strings.TrimSpace(input.FormID) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "formId is required"}
	}

	log := uc.Logger.WithFields(map[string]interface{}{"formId": input.FormID})

	if uc.Validator != nil {
		errs, err := uc.Validator.Validate(input.FormID, input.Data)
		if err != nil {
			return nil, &TechnicalError{Code: CodeValidation, Message: err.Error(), Err: err}
		}
		if len(errs) > 0 {
			return nil, &DomainError{
				Code:    CodeInvalidFormData,
				Message: joinValidationErrors("invalid form data: ", errs),
			}
		}
	}

	payload, mapped := MapFields(uc.Forms, input.FormID, input.Data)
	if !mapped {
		log.Warn("no field mapping for form, passing data through", map[string]interface{}{
			"fieldCount": len(payload),
		})
	}

	record := entity.NewSubmissionRecord(input.FormID, mapped, len(payload))

	// Unknown form ids come from callers, so they share one metric label.
	formLabel := input.FormID
	if !mapped {
		formLabel = "unmapped"
	}

	resp, err := uc.CRM.SubmitForm(ctx, input.FormID, payload)
	if err != nil {
		record.Status = entity.SubmissionFailed
		record.ErrorMessage = err.Error()
		middleware.RecordIntegrationError(crmServiceName)
		middleware.RecordFormSubmission(formLabel, entity.SubmissionFailed)
		log.Error("form submission failed", map[string]interface{}{"error": err})
		uc.audit(ctx, log, record)
		return nil, err
	}

	record.Status = entity.SubmissionSucceeded
	record.PartnerReference = partnerReference(resp)
	middleware.RecordFormSubmission(formLabel, entity.SubmissionSucceeded)
	log.Info("form submitted", map[string]interface{}{
		"submissionId":     record.ID,
		"partnerReference": record.PartnerReference,
		"mapped":           mapped,
	})
	uc.audit(ctx, log, record)

	return &SubmitFormOutput{
		SubmissionID: record.ID,
		Mapped:       mapped,
		Response:     resp,
	}, nil
}

// audit records the attempt; failures here never change the submission result.
func (uc *SubmitFormUseCase) audit(ctx context.Context, log logger.Logger, record *entity.SubmissionRecord) {
	if uc.SubmissionRepo != nil {
		if err := uc.SubmissionRepo.Create(ctx, record); err != nil {
			log.Warn("failed to write submission audit record", map[string]interface{}{"error": err})
		}
	}

	if uc.Events != nil {
		event := queue.SubmissionEvent{
			SubmissionID:     record.ID,
			FormID:           record.FormID,
			Status:           record.Status,
			PartnerReference: record.PartnerReference,
			OccurredAt:       time.Now().UTC(),
		}
		if err := uc.Events.PublishSubmissionEvent(ctx, event); err != nil {
			log.Warn("failed to publish submission event", map[string]interface{}{"error": err})
		}
	}
}

func partnerReference(resp map[string]interface{}) string {
	for _, k := range partnerReferenceKeys {
		if s, ok := resp[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
