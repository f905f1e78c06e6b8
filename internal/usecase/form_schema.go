package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

// FormSchemaValidator checks internal records against the field types each
// form mapping declares. Schemas are compiled once at startup.
type FormSchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewFormSchemaValidator(table entity.FormMappingTable) (*FormSchemaValidator, error) {
	v := &FormSchemaValidator{schemas: make(map[string]*gojsonschema.Schema, len(table))}

	for formID, mapping := range table {
		properties := make(map[string]interface{}, len(mapping.Fields))
		for _, f := range mapping.Fields {
			t := f.Type
			if t == "" {
				t = entity.FieldString
			}
			properties[f.Internal] = map[string]interface{}{"type": string(t)}
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(map[string]interface{}{
			"type":                 "object",
			"properties":           properties,
			"additionalProperties": true,
		}))
		if err != nil {
			return nil, fmt.Errorf("form %s: invalid schema: %w", formID, err)
		}
		v.schemas[formID] = schema
	}

	return v, nil
}

// Validate returns the field errors for data. Empty values are ignored since
// the mapper drops them anyway; unknown forms are not validated.
func (v *FormSchemaValidator) Validate(formID string, data map[string]interface{}) ([]entity.ValidationError, error) {
	schema, ok := v.schemas[formID]
	if !ok {
		return nil, nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(dropEmpty(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to validate form %s: %w", formID, err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]entity.ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, entity.ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs, nil
}

func joinValidationErrors(prefix string, errs []entity.ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return prefix + strings.Join(parts, ", ")
}
