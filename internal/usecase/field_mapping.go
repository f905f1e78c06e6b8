package usecase

import "github.com/rokfinancial/broker-portal/internal/entity"

// MapFields renames internal fields to the form's external identifiers.
// Unknown forms pass through unchanged; mapped reports which case applied.
// Absent, nil and empty-string values are never emitted.
func MapFields(table entity.FormMappingTable, formID string, data map[string]interface{}) (out map[string]interface{}, mapped bool) {
	mapping, ok := table.Lookup(formID)
	if !ok {
		return dropEmpty(data), false
	}

	out = make(map[string]interface{}, len(mapping.Fields))
	for _, f := range mapping.Fields {
		v, present := data[f.Internal]
		if !present || isEmptyValue(v) {
			continue
		}
		out[f.External] = v
	}
	return out, true
}

func dropEmpty(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if isEmptyValue(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
