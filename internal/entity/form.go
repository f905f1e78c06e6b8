package entity

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// FormField maps one internal application field to the identifier the CRM
// form was configured with.
type FormField struct {
	Internal string    `json:"internal" mapstructure:"internal"`
	External string    `json:"external" mapstructure:"external"`
	Type     FieldType `json:"type" mapstructure:"type"`
}

type FormMapping struct {
	FormID string      `json:"formId"`
	Name   string      `json:"name"`
	Fields []FormField `json:"fields"`
}

// FormMappingTable is keyed by external form identifier and never mutated
// after startup.
type FormMappingTable map[string]FormMapping

func (t FormMappingTable) Lookup(formID string) (FormMapping, bool) {
	m, ok := t[formID]
	return m, ok
}

// FormSubmission is the loosely typed record posted by the intake pages.
type FormSubmission struct {
	FormID string                 `json:"formId"`
	Data   map[string]interface{} `json:"data"`
}
