package config

import (
	"errors"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Secrets holds the hosting-site credentials and the LLM API key.
// The key is read once at startup and held in memory only.
type Secrets struct {
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required"`
	LLMKey   string `yaml:"openai_api_key" validate:"required"`
}

// LoadSecrets reads and validates the secrets bundle.
func LoadSecrets(path string) (*Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{File: path, Message: "cannot read file", Cause: err}
	}
	return ParseSecrets(data, path)
}

// ParseSecrets validates raw secrets YAML.
func ParseSecrets(data []byte, file string) (*Secrets, error) {
	var s Secrets
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &ConfigError{File: file, Message: "invalid YAML", Cause: err}
	}

	validate := validator.New()
	if err := validate.Struct(&s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return nil, &ConfigError{
				File:    file,
				Key:     yamlKeyFor(first.Field()),
				Message: "failed " + first.Tag() + " constraint",
			}
		}
		return nil, &ConfigError{File: file, Message: err.Error()}
	}
	return &s, nil
}

func yamlKeyFor(field string) string {
	switch field {
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "LLMKey":
		return "openai_api_key"
	}
	return field
}
