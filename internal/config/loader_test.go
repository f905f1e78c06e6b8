package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

const baseYAML = `
app:
  environment: test
server:
  port: 9090
crm:
  api_key: ${TEST_CRM_KEY}
  timeout: 5s
lenders:
  - id: rok-financial
    name: ROK Financial
    active: true
    priority: 1
    channel:
      type: link
      url: https://rokfinancial.com/apply
    criteria:
      min_loan_amount: 50000
      max_loan_amount: 50000000
      states: [CA, NY]
      credit_score_min: 580
  - id: api-partner
    name: API Partner
    active: true
    priority: 2
    channel:
      type: api
      endpoint: https://partner.example.com/leads
      credential: ${TEST_PARTNER_KEY}
forms:
  - id: gPGc1pTZGRvxybqPpDRL
    name: Application
    fields:
      - { internal: firstName, external: first_name }
      - { internal: loanAmount, external: loan_amount, type: number }
`

func writeConfig(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestLoadFrom(t *testing.T) {
	t.Setenv("CRM_API_KEY", "")
	t.Setenv("TEST_CRM_KEY", "ghl-secret")
	t.Setenv("TEST_PARTNER_KEY", "partner-secret")
	dir := writeConfig(t, map[string]string{
		"config.yaml":      baseYAML,
		"config.test.yaml": "ratelimit:\n  limit: 3\n",
	})

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "ghl-secret", cfg.CRM.APIKey)
	assert.Equal(t, 5*time.Second, cfg.CRM.Timeout)
	assert.Equal(t, 3, cfg.RateLimit.Limit, "environment file is merged on top")
	assert.Equal(t, time.Minute, cfg.RateLimit.Window, "defaults fill the gaps")

	reg, err := cfg.BuildLenderRegistry()
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	rok, ok := reg.ByID("rok-financial")
	require.True(t, ok)
	require.NotNil(t, rok.Criteria)
	assert.Equal(t, 50000.0, *rok.Criteria.MinLoanAmount)
	assert.Equal(t, 580, *rok.Criteria.CreditScoreMin)
	assert.Equal(t, []string{"CA", "NY"}, rok.Criteria.States)

	partner, _ := reg.ByID("api-partner")
	assert.Equal(t, "partner-secret", partner.Channel.Credential)
	assert.Nil(t, partner.Criteria)

	forms, err := cfg.BuildFormMappings()
	require.NoError(t, err)
	mapping, ok := forms.Lookup("gPGc1pTZGRvxybqPpDRL")
	require.True(t, ok, "form ids keep their case")
	assert.Equal(t, entity.FieldString, mapping.Fields[0].Type)
	assert.Equal(t, entity.FieldNumber, mapping.Fields[1].Type)
}

func TestLoadFrom_EnvironmentOverride(t *testing.T) {
	t.Setenv("TEST_CRM_KEY", "from-file")
	t.Setenv("TEST_PARTNER_KEY", "x")
	t.Setenv("CRM_API_KEY", "from-env")
	dir := writeConfig(t, map[string]string{"config.yaml": baseYAML})

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.CRM.APIKey)
}

func TestLoadFrom_MissingCRMKeyFailsFast(t *testing.T) {
	t.Setenv("CRM_API_KEY", "")
	t.Setenv("TEST_CRM_KEY", "")
	t.Setenv("TEST_PARTNER_KEY", "x")
	dir := writeConfig(t, map[string]string{"config.yaml": baseYAML})

	_, err := LoadFrom(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCRMKey)
}

func TestValidate_RejectsBadRegistryAndForms(t *testing.T) {
	minAmt, maxAmt := 100.0, 10.0

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"duplicate lender", func(c *Config) {
			l := LenderConfig{ID: "a", Channel: ChannelConfig{Type: "link", URL: "https://x"}}
			c.Lenders = []LenderConfig{l, l}
		}},
		{"api lender without credential", func(c *Config) {
			c.Lenders = []LenderConfig{{ID: "a", Channel: ChannelConfig{Type: "api", Endpoint: "https://x"}}}
		}},
		{"inverted amount bounds", func(c *Config) {
			c.Lenders = []LenderConfig{{ID: "a", Channel: ChannelConfig{Type: "link", URL: "https://x"},
				Criteria: &CriteriaConfig{MinLoanAmount: &minAmt, MaxLoanAmount: &maxAmt}}}
		}},
		{"duplicate form", func(c *Config) {
			c.Forms = []FormConfig{{ID: "f"}, {ID: "f"}}
		}},
		{"unknown field type", func(c *Config) {
			c.Forms = []FormConfig{{ID: "f", Fields: []FieldConfig{{Internal: "a", External: "b", Type: "date"}}}}
		}},
		{"field without external name", func(c *Config) {
			c.Forms = []FormConfig{{ID: "f", Fields: []FieldConfig{{Internal: "a"}}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:    ServerConfig{Port: 8080},
				CRM:       CRMConfig{APIKey: "k"},
				RateLimit: RateLimitConfig{Limit: 1},
			}
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
