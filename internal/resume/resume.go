// Package resume provides the typed, validated representation of the
// candidate loaded from the plain-text resume YAML.
package resume

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Resume is the immutable candidate record. It is only ever constructed
// through Load; a partially constructed Resume is not observable.
type Resume struct {
	PersonalInformation PersonalInformation `yaml:"personal_information" validate:"required"`
	SelfIdentification  SelfIdentification  `yaml:"self_identification"`
	LegalAuthorization  LegalAuthorization  `yaml:"legal_authorization"`
	WorkPreferences     WorkPreferences     `yaml:"work_preferences"`
	EducationDetails    []Education         `yaml:"education_details,omitempty" validate:"dive"`
	ExperienceDetails   []Experience        `yaml:"experience_details,omitempty" validate:"dive"`
	Projects            []Project           `yaml:"projects,omitempty"`
	Achievements        []Achievement       `yaml:"achievements,omitempty"`
	Certifications      []string            `yaml:"certifications,omitempty"`
	Languages           []Language          `yaml:"languages,omitempty"`
	Interests           []string            `yaml:"interests,omitempty"`
	Availability        Availability        `yaml:"availability"`
	SalaryExpectations  SalaryExpectations  `yaml:"salary_expectations"`
}

// PersonalInformation holds the candidate's identity and contact details.
type PersonalInformation struct {
	Name        string `yaml:"name" validate:"required"`
	Surname     string `yaml:"surname" validate:"required"`
	DateOfBirth string `yaml:"date_of_birth"`
	Country     string `yaml:"country"`
	City        string `yaml:"city"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	PhonePrefix string `yaml:"phone_prefix"`
	Email       string `yaml:"email" validate:"required,email"`
	GitHub      string `yaml:"github" validate:"omitempty,url"`
	LinkedIn    string `yaml:"linkedin" validate:"omitempty,url"`
}

// SelfIdentification holds the voluntary self-identification answers.
type SelfIdentification struct {
	Gender    string `yaml:"gender"`
	Pronouns  string `yaml:"pronouns"`
	Veteran   string `yaml:"veteran"`
	Disability string `yaml:"disability"`
	Ethnicity string `yaml:"ethnicity"`
}

// LegalAuthorization holds the work-authorization flags.
type LegalAuthorization struct {
	EUWorkAuthorization      string `yaml:"eu_work_authorization"`
	USWorkAuthorization      string `yaml:"us_work_authorization"`
	RequiresUSVisa           string `yaml:"requires_us_visa"`
	LegallyAllowedToWorkInUS string `yaml:"legally_allowed_to_work_in_us"`
	RequiresUSSponsorship    string `yaml:"requires_us_sponsorship"`
	RequiresEUVisa           string `yaml:"requires_eu_visa"`
	LegallyAllowedToWorkInEU string `yaml:"legally_allowed_to_work_in_eu"`
	RequiresEUSponsorship    string `yaml:"requires_eu_sponsorship"`
}

// WorkPreferences holds the candidate's working-arrangement preferences.
type WorkPreferences struct {
	RemoteWork                       string `yaml:"remote_work"`
	InPersonWork                     string `yaml:"in_person_work"`
	OpenToRelocation                 string `yaml:"open_to_relocation"`
	WillingToCompleteAssessments     string `yaml:"willing_to_complete_assessments"`
	WillingToUndergoDrugTests        string `yaml:"willing_to_undergo_drug_tests"`
	WillingToUndergoBackgroundChecks string `yaml:"willing_to_undergo_background_checks"`
}

// Education is a single education entry. Exam accepts either a mapping
// of exam name to grade or a list of single-entry mappings; both forms
// normalize to the list form on load.
type Education struct {
	Degree         string   `yaml:"degree" validate:"required"`
	University     string   `yaml:"university"`
	GPA            string   `yaml:"gpa"`
	GraduationYear string   `yaml:"graduation_year"`
	FieldOfStudy   string   `yaml:"field_of_study"`
	Exam           ExamList `yaml:"exam,omitempty"`
}

// ExamList is the normalized exam representation: an ordered list of
// single-entry exam-to-grade mappings.
type ExamList []map[string]string

// UnmarshalYAML normalizes the two accepted exam forms. The rewrite is
// idempotent: a list decodes to itself.
func (e *ExamList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		out := make(ExamList, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			out = append(out, map[string]string{value.Content[i].Value: value.Content[i+1].Value})
		}
		*e = out
		return nil
	case yaml.SequenceNode:
		var list []map[string]string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*e = list
		return nil
	case 0:
		return nil
	default:
		if value.Tag == "!!null" {
			return nil
		}
		return fmt.Errorf("exam must be a mapping or a list of mappings, got %s", value.Tag)
	}
}

// Experience is a single work experience entry.
type Experience struct {
	Position            string   `yaml:"position" validate:"required"`
	Company             string   `yaml:"company" validate:"required"`
	EmploymentPeriod    string   `yaml:"employment_period"`
	Location            string   `yaml:"location"`
	Industry            string   `yaml:"industry"`
	KeyResponsibilities []string `yaml:"key_responsibilities,omitempty"`
	SkillsAcquired      []string `yaml:"skills_acquired,omitempty"`
}

// Project is a personal or professional project entry.
type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Link        string `yaml:"link" validate:"omitempty,url"`
}

// Achievement is a single named achievement.
type Achievement struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Language pairs a language with a proficiency level.
type Language struct {
	Language    string `yaml:"language"`
	Proficiency string `yaml:"proficiency"`
}

// Availability holds the notice period.
type Availability struct {
	NoticePeriod string `yaml:"notice_period"`
}

// SalaryExpectations holds the expected salary range.
type SalaryExpectations struct {
	SalaryRangeUSD string `yaml:"salary_range_usd"`
}

// Load parses and validates a plain-text resume YAML document.
// It returns a *ParseError for malformed YAML and a *ValidationError
// naming the offending field path for constraint violations.
func Load(yamlText []byte) (*Resume, error) {
	var r Resume
	if err := yaml.Unmarshal(yamlText, &r); err != nil {
		return nil, &ParseError{Message: "invalid YAML", Cause: err}
	}

	validate := validator.New()
	if err := validate.Struct(&r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return nil, &ValidationError{
				Field:   first.Namespace(),
				Message: fmt.Sprintf("failed %q constraint", first.Tag()),
			}
		}
		return nil, &ValidationError{Message: err.Error()}
	}

	return &r, nil
}
