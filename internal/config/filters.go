// Package config provides loading and strict validation of the search
// filter configuration and the secrets bundle.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// filtersSchema is the JSON Schema the filter configuration must satisfy.
// The blacklists are not required here: a null or missing blacklist is
// coerced to an empty list before validation.
const filtersSchema = `{
  "type": "object",
  "required": ["remote", "experienceLevel", "jobTypes", "date", "positions", "locations", "distance"],
  "properties": {
    "remote": {"type": "boolean"},
    "experienceLevel": {
      "type": "object",
      "required": ["internship", "entry", "associate", "mid-senior level", "director", "executive"],
      "additionalProperties": {"type": "boolean"}
    },
    "jobTypes": {
      "type": "object",
      "required": ["full-time", "contract", "part-time", "temporary", "internship", "other", "volunteer"],
      "additionalProperties": {"type": "boolean"}
    },
    "date": {
      "type": "object",
      "required": ["all time", "month", "week", "24 hours"],
      "additionalProperties": {"type": "boolean"}
    },
    "positions": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "locations": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "distance": {"enum": [0, 5, 10, 25, 50, 100]},
    "companyBlacklist": {"type": "array", "items": {"type": "string"}},
    "titleBlacklist": {"type": "array", "items": {"type": "string"}}
  }
}`

// Filters is the validated search filter configuration.
type Filters struct {
	Remote           bool            `yaml:"remote" json:"remote"`
	ExperienceLevel  map[string]bool `yaml:"experienceLevel" json:"experienceLevel"`
	JobTypes         map[string]bool `yaml:"jobTypes" json:"jobTypes"`
	Date             map[string]bool `yaml:"date" json:"date"`
	Positions        []string        `yaml:"positions" json:"positions"`
	Locations        []string        `yaml:"locations" json:"locations"`
	Distance         int             `yaml:"distance" json:"distance"`
	CompanyBlacklist []string        `yaml:"companyBlacklist" json:"companyBlacklist"`
	TitleBlacklist   []string        `yaml:"titleBlacklist" json:"titleBlacklist"`
}

// ExperienceLevels enumerates the approved experience level keys, in
// the order the hosting site numbers them.
var ExperienceLevels = []string{"internship", "entry", "associate", "mid-senior level", "director", "executive"}

// LoadFilters reads, coerces, and validates the filter configuration.
// The first offending key is reported in a single *ConfigError.
func LoadFilters(path string) (*Filters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{File: path, Message: "cannot read file", Cause: err}
	}
	return ParseFilters(data, path)
}

// ParseFilters validates raw filter YAML. The file name is used only
// for error reporting.
func ParseFilters(data []byte, file string) (*Filters, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{File: file, Message: "invalid YAML", Cause: err}
	}
	if raw == nil {
		return nil, &ConfigError{File: file, Message: "empty configuration"}
	}

	// Null blacklists are coerced to empty, not rejected.
	for _, key := range []string{"companyBlacklist", "titleBlacklist"} {
		if v, ok := raw[key]; !ok || v == nil {
			raw[key] = []any{}
		}
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, &ConfigError{File: file, Message: "configuration is not schema-checkable", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(filtersSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, &ConfigError{File: file, Message: "schema validation failed", Cause: err}
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return nil, &ConfigError{
			File:    file,
			Key:     first.Field(),
			Message: first.Description(),
		}
	}

	var filters Filters
	if err := json.Unmarshal(doc, &filters); err != nil {
		return nil, &ConfigError{File: file, Message: "cannot decode configuration", Cause: err}
	}
	return &filters, nil
}

// EnabledExperienceLevels returns the 1-based indices of the enabled
// experience levels, the encoding the search URL expects.
func (f *Filters) EnabledExperienceLevels() []string {
	var out []string
	for i, level := range ExperienceLevels {
		if f.ExperienceLevel[level] {
			out = append(out, fmt.Sprintf("%d", i+1))
		}
	}
	return out
}

// EnabledJobTypes returns the first-letter codes of the enabled job types.
func (f *Filters) EnabledJobTypes() []string {
	var out []string
	for _, jt := range []string{"full-time", "contract", "part-time", "temporary", "internship", "other", "volunteer"} {
		if f.JobTypes[jt] {
			out = append(out, strings.ToUpper(jt[:1]))
		}
	}
	return out
}
