package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validResumeYAML = `
personal_information:
  name: Ada
  surname: Lovelace
  country: UK
  city: London
  phone: "5551234"
  phone_prefix: "+44"
  email: ada@example.com
  github: https://github.com/ada
education_details:
  - degree: BSc
    university: Cambridge
    field_of_study: Mathematics
    gpa: "4.0"
    graduation_year: "1840"
    exam:
      Analysis: A
      Algebra: B
experience_details:
  - position: Engineer
    company: Analytical Engines Ltd
    employment_period: 1835-1840
    key_responsibilities:
      - Designed the first program
    skills_acquired:
      - Programming
projects:
  - name: Notes
    description: Translation with commentary
languages:
  - language: English
    proficiency: Native
interests:
  - mathematics
availability:
  notice_period: 2 weeks
salary_expectations:
  salary_range_usd: 90000-110000
`

func TestLoadValidResume(t *testing.T) {
	r, err := Load([]byte(validResumeYAML))
	require.NoError(t, err)

	assert.Equal(t, "Ada", r.PersonalInformation.Name)
	assert.Equal(t, "ada@example.com", r.PersonalInformation.Email)
	require.Len(t, r.EducationDetails, 1)
	assert.Equal(t, "BSc", r.EducationDetails[0].Degree)
	require.Len(t, r.ExperienceDetails, 1)
	assert.Equal(t, "Analytical Engines Ltd", r.ExperienceDetails[0].Company)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load([]byte("personal_information: [unclosed"))
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestLoadInvalidEmail(t *testing.T) {
	bad := `
personal_information:
  name: Ada
  surname: Lovelace
  email: not-an-email
`
	_, err := Load([]byte(bad))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Field, "Email")
}

func TestLoadMissingRequiredField(t *testing.T) {
	bad := `
personal_information:
  name: Ada
  email: ada@example.com
`
	_, err := Load([]byte(bad))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Field, "Surname")
}

func TestExamMappingNormalizedToList(t *testing.T) {
	r, err := Load([]byte(validResumeYAML))
	require.NoError(t, err)

	exams := r.EducationDetails[0].Exam
	require.Len(t, exams, 2)
	for _, exam := range exams {
		assert.Len(t, exam, 1, "each entry should be a single-key mapping")
	}
	// Document order is preserved for mapping input.
	assert.Equal(t, map[string]string{"Analysis": "A"}, exams[0])
	assert.Equal(t, map[string]string{"Algebra": "B"}, exams[1])
}

func TestExamNormalizationIdempotent(t *testing.T) {
	listForm := `
degree: BSc
exam:
  - Analysis: A
  - Algebra: B
`
	var edu Education
	require.NoError(t, yaml.Unmarshal([]byte(listForm), &edu))
	require.Len(t, edu.Exam, 2)

	// Serialize and parse again: the list form must survive unchanged.
	out, err := yaml.Marshal(edu.Exam)
	require.NoError(t, err)
	var again ExamList
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, edu.Exam, again)
}

func TestResumeRoundTrip(t *testing.T) {
	r, err := Load([]byte(validResumeYAML))
	require.NoError(t, err)

	out, err := yaml.Marshal(r)
	require.NoError(t, err)

	r2, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, r, r2)
}

func TestStringRendersSections(t *testing.T) {
	r, err := Load([]byte(validResumeYAML))
	require.NoError(t, err)

	text := r.String()
	assert.Contains(t, text, "Personal Information:")
	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "Education Details:")
	assert.Contains(t, text, "Exam Analysis: A")
	assert.Contains(t, text, "Experience Details:")
	assert.Contains(t, text, "Skills Acquired: Programming")
	assert.Contains(t, text, "Salary Expectations: 90000-110000 USD")
	assert.NotContains(t, text, "Self Identification", "empty sections are omitted")
}
