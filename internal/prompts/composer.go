package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/auto-applier/internal/resume"
	"github.com/jonathan/auto-applier/internal/types"
)

// descriptionExcerptLen bounds how much of the job description is
// inlined into answer prompts.
const descriptionExcerptLen = 1500

// Composer builds prompts from templated fragments plus resume fields.
// It is decoupled from the LLM backend: the same composer drives any
// llm.Client.
type Composer struct {
	resume     *resume.Resume
	resumeText string
}

// NewComposer binds a composer to a validated resume.
func NewComposer(r *resume.Resume) *Composer {
	return &Composer{resume: r, resumeText: r.String()}
}

// Summary builds the prompt for summary textareas.
func (c *Composer) Summary(job *types.Job) string {
	return Format(MustGet("answering.json", "summary"), map[string]string{
		"Title":       job.Title,
		"Company":     job.Company,
		"Description": job.DescriptionExcerpt(descriptionExcerptLen),
		"Resume":      c.resumeText,
	})
}

// Numeric builds the prompt for numeric fields.
func (c *Composer) Numeric(question string, defaultExperience int) string {
	return Format(MustGet("answering.json", "numeric"), map[string]string{
		"Resume":            c.resumeText,
		"Question":          question,
		"DefaultExperience": fmt.Sprintf("%d", defaultExperience),
	})
}

// Options builds the prompt for single-select fields, enumerating the
// allowed options.
func (c *Composer) Options(question string, options []string) string {
	return Format(MustGet("answering.json", "options"), map[string]string{
		"Resume":   c.resumeText,
		"Question": question,
		"Options":  "[" + strings.Join(options, ", ") + "]",
	})
}

// MultiOptions builds the prompt for multi-select fields, asking for a
// comma-separated subset.
func (c *Composer) MultiOptions(question string, options []string) string {
	return Format(MustGet("answering.json", "multi_options"), map[string]string{
		"Resume":   c.resumeText,
		"Question": question,
		"Options":  "[" + strings.Join(options, ", ") + "]",
	})
}

// Textual builds the wide-range prompt: the full resume plus the question.
func (c *Composer) Textual(question string) string {
	return Format(MustGet("answering.json", "textual"), map[string]string{
		"Resume":   c.resumeText,
		"Question": question,
	})
}

// Fix builds the repair prompt from the original question, the prior
// answer, and the server-side error text.
func (c *Composer) Fix(question, priorAnswer, errText string) string {
	return Format(MustGet("answering.json", "fix"), map[string]string{
		"Question":    question,
		"PriorAnswer": priorAnswer,
		"Error":       errText,
	})
}

// CoverLetter builds the cover-letter generation prompt for a posting.
func (c *Composer) CoverLetter(job *types.Job) string {
	return Format(MustGet("answering.json", "cover_letter"), map[string]string{
		"Title":       job.Title,
		"Company":     job.Company,
		"Description": job.DescriptionExcerpt(descriptionExcerptLen),
		"Resume":      c.resumeText,
	})
}

// SummarizeJobDescription builds the prompt that condenses a raw job
// description into the cached summary.
func (c *Composer) SummarizeJobDescription(text string) string {
	return Format(MustGet("answering.json", "summarize"), map[string]string{
		"Text": text,
	})
}

// SectionNames lists the resume HTML sections in render order.
func SectionNames() []string {
	return []string{"header", "education", "work_experience", "side_projects", "achievements", "additional_skills"}
}

// Section builds the HTML-fragment prompt for one resume section,
// filling the job-description slot from the posting's summary.
func (c *Composer) Section(name, jobSummary string) (string, error) {
	template, err := Get("sections.json", name)
	if err != nil {
		return "", err
	}
	return Format(template, map[string]string{
		"Section":        c.sectionData(name),
		"JobDescription": jobSummary,
	}), nil
}

// sectionData extracts the sub-record relevant to a section as text.
func (c *Composer) sectionData(name string) string {
	r := c.resume
	var sb strings.Builder
	switch name {
	case "header":
		pi := r.PersonalInformation
		fmt.Fprintf(&sb, "Name: %s %s\n", pi.Name, pi.Surname)
		fmt.Fprintf(&sb, "Location: %s, %s\n", pi.City, pi.Country)
		fmt.Fprintf(&sb, "Email: %s\n", pi.Email)
		fmt.Fprintf(&sb, "Phone: %s %s\n", pi.PhonePrefix, pi.Phone)
		fmt.Fprintf(&sb, "GitHub: %s\nLinkedIn: %s\n", pi.GitHub, pi.LinkedIn)
	case "education":
		for _, edu := range r.EducationDetails {
			fmt.Fprintf(&sb, "- %s in %s, %s (%s), GPA %s\n", edu.Degree, edu.FieldOfStudy, edu.University, edu.GraduationYear, edu.GPA)
			for _, exam := range edu.Exam {
				for k, v := range exam {
					fmt.Fprintf(&sb, "  %s: %s\n", k, v)
				}
			}
		}
	case "work_experience":
		for _, exp := range r.ExperienceDetails {
			fmt.Fprintf(&sb, "- %s at %s (%s), %s\n", exp.Position, exp.Company, exp.EmploymentPeriod, exp.Location)
			for _, resp := range exp.KeyResponsibilities {
				fmt.Fprintf(&sb, "  * %s\n", resp)
			}
			if len(exp.SkillsAcquired) > 0 {
				fmt.Fprintf(&sb, "  skills: %s\n", strings.Join(exp.SkillsAcquired, ", "))
			}
		}
	case "side_projects":
		for _, p := range r.Projects {
			fmt.Fprintf(&sb, "- %s: %s (%s)\n", p.Name, p.Description, p.Link)
		}
	case "achievements":
		for _, a := range r.Achievements {
			fmt.Fprintf(&sb, "- %s: %s\n", a.Name, a.Description)
		}
		for _, cert := range r.Certifications {
			fmt.Fprintf(&sb, "- Certification: %s\n", cert)
		}
	case "additional_skills":
		for _, l := range r.Languages {
			fmt.Fprintf(&sb, "- Language: %s (%s)\n", l.Language, l.Proficiency)
		}
		if len(r.Interests) > 0 {
			fmt.Fprintf(&sb, "- Interests: %s\n", strings.Join(r.Interests, ", "))
		}
	}
	return sb.String()
}
