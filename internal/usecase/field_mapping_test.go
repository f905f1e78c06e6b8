package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

const applicationFormID = "gPGc1pTZGRvxybqPpDRL"

func applicationForms() entity.FormMappingTable {
	return entity.FormMappingTable{
		applicationFormID: {
			FormID: applicationFormID,
			Name:   "Business Loan Application",
			Fields: []entity.FormField{
				{Internal: "firstName", External: "firstName", Type: entity.FieldString},
				{Internal: "lastName", External: "lastName", Type: entity.FieldString},
				{Internal: "email", External: "email", Type: entity.FieldString},
				{Internal: "phone", External: "phone", Type: entity.FieldString},
				{Internal: "businessName", External: "company_name", Type: entity.FieldString},
				{Internal: "loanAmount", External: "loan_amount", Type: entity.FieldNumber},
				{Internal: "ownsProperty", External: "owns_property", Type: entity.FieldBoolean},
			},
		},
	}
}

func TestMapFields_KnownFormDropsEmpty(t *testing.T) {
	out, mapped := MapFields(applicationForms(), applicationFormID, map[string]interface{}{
		"firstName": "Jane",
		"lastName":  "",
		"email":     "j@x.com",
	})

	assert.True(t, mapped)
	assert.Equal(t, map[string]interface{}{
		"firstName": "Jane",
		"email":     "j@x.com",
	}, out)
}

func TestMapFields_KnownFormRenames(t *testing.T) {
	out, mapped := MapFields(applicationForms(), applicationFormID, map[string]interface{}{
		"businessName": "Acme LLC",
		"loanAmount":   250000.0,
	})

	assert.True(t, mapped)
	assert.Equal(t, map[string]interface{}{
		"company_name": "Acme LLC",
		"loan_amount":  250000.0,
	}, out)
}

func TestMapFields_UnmappedKeysAreDropped(t *testing.T) {
	out, mapped := MapFields(applicationForms(), applicationFormID, map[string]interface{}{
		"firstName": "Jane",
		"utmSource": "google",
		"phone":     nil,
	})

	assert.True(t, mapped)
	assert.Equal(t, map[string]interface{}{"firstName": "Jane"}, out)
}

func TestMapFields_PreservesNonStringValues(t *testing.T) {
	out, _ := MapFields(applicationForms(), applicationFormID, map[string]interface{}{
		"loanAmount":   float64(0),
		"ownsProperty": false,
	})

	assert.Equal(t, map[string]interface{}{
		"loan_amount":   float64(0),
		"owns_property": false,
	}, out)
}

func TestMapFields_WhitespaceIsNotEmpty(t *testing.T) {
	out, _ := MapFields(applicationForms(), applicationFormID, map[string]interface{}{
		"lastName": " ",
	})

	assert.Equal(t, map[string]interface{}{"lastName": " "}, out)
}

func TestMapFields_UnknownFormPassesThrough(t *testing.T) {
	data := map[string]interface{}{"firstName": "Jane", "custom": 12, "blank": ""}

	out, mapped := MapFields(applicationForms(), "unknown-id-123", data)

	assert.False(t, mapped)
	assert.Equal(t, map[string]interface{}{"firstName": "Jane", "custom": 12}, out)
	assert.Contains(t, data, "blank", "input must not be modified")
}

func TestMapFields_EmptyInput(t *testing.T) {
	out, mapped := MapFields(applicationForms(), applicationFormID, nil)

	assert.True(t, mapped)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}
