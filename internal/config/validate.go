package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

var ErrMissingCRMKey = errors.New("crm.api_key is required (set CRM_API_KEY)")

// Validate fails fast on settings the service cannot run without. There is
// no fallback CRM credential.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.CRM.APIKey) == "" {
		errs = append(errs, ErrMissingCRMKey)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.RateLimit.Limit <= 0 {
		errs = append(errs, errors.New("ratelimit.limit must be positive"))
	}
	if _, err := c.BuildLenderRegistry(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.BuildFormMappings(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// BuildLenderRegistry converts the lenders section, keeping file order.
func (c *Config) BuildLenderRegistry() (*entity.LenderRegistry, error) {
	profiles := make([]entity.LenderProfile, 0, len(c.Lenders))
	for _, l := range c.Lenders {
		p := entity.LenderProfile{
			ID:       l.ID,
			Name:     l.Name,
			Active:   l.Active,
			Priority: l.Priority,
			Channel: entity.Channel{
				Type:       entity.ChannelType(strings.ToLower(l.Channel.Type)),
				URL:        l.Channel.URL,
				Email:      l.Channel.Email,
				Endpoint:   l.Channel.Endpoint,
				Credential: l.Channel.Credential,
				Webhook:    l.Channel.Webhook,
			},
		}
		if l.Criteria != nil {
			cr := l.Criteria
			if cr.MinLoanAmount != nil && cr.MaxLoanAmount != nil && *cr.MinLoanAmount > *cr.MaxLoanAmount {
				return nil, fmt.Errorf("lender %s: min_loan_amount exceeds max_loan_amount", l.ID)
			}
			p.Criteria = &entity.LenderCriteria{
				MinLoanAmount:  cr.MinLoanAmount,
				MaxLoanAmount:  cr.MaxLoanAmount,
				PropertyTypes:  cr.PropertyTypes,
				States:         cr.States,
				CreditScoreMin: cr.CreditScoreMin,
			}
		}
		profiles = append(profiles, p)
	}

	reg, err := entity.NewLenderRegistry(profiles)
	if err != nil {
		return nil, fmt.Errorf("lenders: %w", err)
	}
	return reg, nil
}

func (c *Config) BuildFormMappings() (entity.FormMappingTable, error) {
	table := make(entity.FormMappingTable, len(c.Forms))
	for _, f := range c.Forms {
		if strings.TrimSpace(f.ID) == "" {
			return nil, errors.New("forms: id is required")
		}
		if _, dup := table[f.ID]; dup {
			return nil, fmt.Errorf("forms: duplicate form id %s", f.ID)
		}

		mapping := entity.FormMapping{FormID: f.ID, Name: f.Name, Fields: make([]entity.FormField, 0, len(f.Fields))}
		seen := make(map[string]bool, len(f.Fields))
		for _, fld := range f.Fields {
			if fld.Internal == "" || fld.External == "" {
				return nil, fmt.Errorf("form %s: fields need both internal and external names", f.ID)
			}
			if seen[fld.Internal] {
				return nil, fmt.Errorf("form %s: field %s mapped twice", f.ID, fld.Internal)
			}
			seen[fld.Internal] = true

			t := entity.FieldType(strings.ToLower(fld.Type))
			switch t {
			case "":
				t = entity.FieldString
			case entity.FieldString, entity.FieldNumber, entity.FieldBoolean:
			default:
				return nil, fmt.Errorf("form %s: field %s has unknown type %q", f.ID, fld.Internal, fld.Type)
			}
			mapping.Fields = append(mapping.Fields, entity.FormField{Internal: fld.Internal, External: fld.External, Type: t})
		}
		table[f.ID] = mapping
	}
	return table, nil
}
