package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFiltersYAML = `
remote: true
experienceLevel:
  internship: false
  entry: true
  associate: true
  mid-senior level: false
  director: false
  executive: false
jobTypes:
  full-time: true
  contract: false
  part-time: false
  temporary: false
  internship: false
  other: false
  volunteer: false
date:
  all time: false
  month: false
  week: true
  24 hours: false
positions:
  - Site Reliability Engineer
locations:
  - Berlin
distance: 25
companyBlacklist:
  - Evil Corp
titleBlacklist:
`

func TestParseFiltersValid(t *testing.T) {
	f, err := ParseFilters([]byte(validFiltersYAML), "config.yaml")
	require.NoError(t, err)

	assert.True(t, f.Remote)
	assert.Equal(t, 25, f.Distance)
	assert.Equal(t, []string{"Site Reliability Engineer"}, f.Positions)
	assert.Equal(t, []string{"Evil Corp"}, f.CompanyBlacklist)
}

func TestParseFiltersNullBlacklistCoerced(t *testing.T) {
	f, err := ParseFilters([]byte(validFiltersYAML), "config.yaml")
	require.NoError(t, err)
	// titleBlacklist deserializes to null and must become empty, not an error.
	assert.NotNil(t, f.TitleBlacklist)
	assert.Empty(t, f.TitleBlacklist)
}

func TestParseFiltersRejectsBadDistance(t *testing.T) {
	bad := strings.Replace(validFiltersYAML, "distance: 25", "distance: 42", 1)
	_, err := ParseFilters([]byte(bad), "config.yaml")
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "distance", cerr.Key)
}

func TestParseFiltersMissingExperienceLevel(t *testing.T) {
	bad := strings.Replace(validFiltersYAML, "  executive: false\n", "", 1)
	_, err := ParseFilters([]byte(bad), "config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executive")
}

func TestParseFiltersMissingRequiredKey(t *testing.T) {
	bad := strings.Replace(validFiltersYAML, "remote: true\n", "", 1)
	_, err := ParseFilters([]byte(bad), "config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote")
}

func TestParseFiltersNonBooleanLevel(t *testing.T) {
	bad := strings.Replace(validFiltersYAML, "  entry: true", "  entry: definitely", 1)
	_, err := ParseFilters([]byte(bad), "config.yaml")
	require.Error(t, err)
}

func TestParseFiltersEmpty(t *testing.T) {
	_, err := ParseFilters([]byte(""), "config.yaml")
	require.Error(t, err)
}

func TestEnabledExperienceLevels(t *testing.T) {
	f, err := ParseFilters([]byte(validFiltersYAML), "config.yaml")
	require.NoError(t, err)
	// entry and associate are positions 2 and 3 in the site's numbering.
	assert.Equal(t, []string{"2", "3"}, f.EnabledExperienceLevels())
}

func TestEnabledJobTypes(t *testing.T) {
	f, err := ParseFilters([]byte(validFiltersYAML), "config.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"F"}, f.EnabledJobTypes())
}

func TestParseSecretsValid(t *testing.T) {
	s, err := ParseSecrets([]byte("email: user@example.com\npassword: hunter2\nopenai_api_key: sk-123\n"), "secrets.yaml")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", s.Email)
	assert.Equal(t, "hunter2", s.Password)
	assert.Equal(t, "sk-123", s.LLMKey)
}

func TestParseSecretsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"Bad email", "email: nope\npassword: x\nopenai_api_key: k\n", "email"},
		{"Empty password", "email: a@b.co\npassword: \"\"\nopenai_api_key: k\n", "password"},
		{"Missing api key", "email: a@b.co\npassword: x\n", "openai_api_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSecrets([]byte(tt.yaml), "secrets.yaml")
			require.Error(t, err)
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.key, cerr.Key)
		})
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("SKIP_APPLY", "")
	t.Setenv("DRIVER_LOG_LEVEL", "")
	env := Env()
	assert.False(t, env.SkipApply)
	assert.Equal(t, 0, env.LogLevel)

	t.Setenv("SKIP_APPLY", "True")
	t.Setenv("DRIVER_LOG_LEVEL", "3")
	env = Env()
	assert.True(t, env.SkipApply)
	assert.Equal(t, 3, env.LogLevel)
}
