package resume

import (
	"fmt"
	"strings"
)

// String renders the full resume as prompt-ready text. The layout keeps
// section headers stable so answer prompts can reference them.
func (r *Resume) String() string {
	var sb strings.Builder

	sb.WriteString("Personal Information:\n")
	pi := r.PersonalInformation
	sb.WriteString(fmt.Sprintf("  Name: %s %s\n", pi.Name, pi.Surname))
	writeIf(&sb, "  Date of Birth: %s\n", pi.DateOfBirth)
	writeIf(&sb, "  Country: %s\n", pi.Country)
	writeIf(&sb, "  City: %s\n", pi.City)
	writeIf(&sb, "  Address: %s\n", pi.Address)
	if pi.Phone != "" {
		sb.WriteString(fmt.Sprintf("  Phone: %s %s\n", pi.PhonePrefix, pi.Phone))
	}
	sb.WriteString(fmt.Sprintf("  Email: %s\n", pi.Email))
	writeIf(&sb, "  GitHub: %s\n", pi.GitHub)
	writeIf(&sb, "  LinkedIn: %s\n", pi.LinkedIn)

	si := r.SelfIdentification
	if si != (SelfIdentification{}) {
		sb.WriteString("\nSelf Identification:\n")
		writeIf(&sb, "  Gender: %s\n", si.Gender)
		writeIf(&sb, "  Pronouns: %s\n", si.Pronouns)
		writeIf(&sb, "  Veteran: %s\n", si.Veteran)
		writeIf(&sb, "  Disability: %s\n", si.Disability)
		writeIf(&sb, "  Ethnicity: %s\n", si.Ethnicity)
	}

	la := r.LegalAuthorization
	if la != (LegalAuthorization{}) {
		sb.WriteString("\nLegal Authorization:\n")
		writeIf(&sb, "  EU Work Authorization: %s\n", la.EUWorkAuthorization)
		writeIf(&sb, "  US Work Authorization: %s\n", la.USWorkAuthorization)
		writeIf(&sb, "  Requires US Visa: %s\n", la.RequiresUSVisa)
		writeIf(&sb, "  Legally Allowed To Work In US: %s\n", la.LegallyAllowedToWorkInUS)
		writeIf(&sb, "  Requires US Sponsorship: %s\n", la.RequiresUSSponsorship)
		writeIf(&sb, "  Requires EU Visa: %s\n", la.RequiresEUVisa)
		writeIf(&sb, "  Legally Allowed To Work In EU: %s\n", la.LegallyAllowedToWorkInEU)
		writeIf(&sb, "  Requires EU Sponsorship: %s\n", la.RequiresEUSponsorship)
	}

	wp := r.WorkPreferences
	if wp != (WorkPreferences{}) {
		sb.WriteString("\nWork Preferences:\n")
		writeIf(&sb, "  Remote Work: %s\n", wp.RemoteWork)
		writeIf(&sb, "  In-Person Work: %s\n", wp.InPersonWork)
		writeIf(&sb, "  Open To Relocation: %s\n", wp.OpenToRelocation)
		writeIf(&sb, "  Willing To Complete Assessments: %s\n", wp.WillingToCompleteAssessments)
		writeIf(&sb, "  Willing To Undergo Drug Tests: %s\n", wp.WillingToUndergoDrugTests)
		writeIf(&sb, "  Willing To Undergo Background Checks: %s\n", wp.WillingToUndergoBackgroundChecks)
	}

	if len(r.EducationDetails) > 0 {
		sb.WriteString("\nEducation Details:\n")
		for _, edu := range r.EducationDetails {
			sb.WriteString(fmt.Sprintf("  - %s in %s from %s", edu.Degree, edu.FieldOfStudy, edu.University))
			if edu.GPA != "" {
				sb.WriteString(fmt.Sprintf(", GPA: %s", edu.GPA))
			}
			if edu.GraduationYear != "" {
				sb.WriteString(fmt.Sprintf(", Graduation Year: %s", edu.GraduationYear))
			}
			sb.WriteString("\n")
			for _, exam := range edu.Exam {
				for name, grade := range exam {
					sb.WriteString(fmt.Sprintf("    Exam %s: %s\n", name, grade))
				}
			}
		}
	}

	if len(r.ExperienceDetails) > 0 {
		sb.WriteString("\nExperience Details:\n")
		for _, exp := range r.ExperienceDetails {
			sb.WriteString(fmt.Sprintf("  - %s at %s (%s)", exp.Position, exp.Company, exp.EmploymentPeriod))
			if exp.Location != "" {
				sb.WriteString(fmt.Sprintf(", %s", exp.Location))
			}
			if exp.Industry != "" {
				sb.WriteString(fmt.Sprintf(", industry: %s", exp.Industry))
			}
			sb.WriteString("\n")
			for _, resp := range exp.KeyResponsibilities {
				sb.WriteString(fmt.Sprintf("    Responsibility: %s\n", resp))
			}
			if len(exp.SkillsAcquired) > 0 {
				sb.WriteString(fmt.Sprintf("    Skills Acquired: %s\n", strings.Join(exp.SkillsAcquired, ", ")))
			}
		}
	}

	if len(r.Projects) > 0 {
		sb.WriteString("\nProjects:\n")
		for _, p := range r.Projects {
			sb.WriteString(fmt.Sprintf("  - %s: %s", p.Name, p.Description))
			if p.Link != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", p.Link))
			}
			sb.WriteString("\n")
		}
	}

	if len(r.Achievements) > 0 {
		sb.WriteString("\nAchievements:\n")
		for _, a := range r.Achievements {
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", a.Name, a.Description))
		}
	}

	if len(r.Certifications) > 0 {
		sb.WriteString("\nCertifications:\n")
		for _, c := range r.Certifications {
			sb.WriteString(fmt.Sprintf("  - %s\n", c))
		}
	}

	if len(r.Languages) > 0 {
		sb.WriteString("\nLanguages:\n")
		for _, l := range r.Languages {
			sb.WriteString(fmt.Sprintf("  - %s (%s)\n", l.Language, l.Proficiency))
		}
	}

	if len(r.Interests) > 0 {
		sb.WriteString(fmt.Sprintf("\nInterests: %s\n", strings.Join(r.Interests, ", ")))
	}

	if r.Availability.NoticePeriod != "" {
		sb.WriteString(fmt.Sprintf("\nAvailability: %s notice period\n", r.Availability.NoticePeriod))
	}

	if r.SalaryExpectations.SalaryRangeUSD != "" {
		sb.WriteString(fmt.Sprintf("\nSalary Expectations: %s USD\n", r.SalaryExpectations.SalaryRangeUSD))
	}

	return sb.String()
}

func writeIf(sb *strings.Builder, format, value string) {
	if value != "" {
		fmt.Fprintf(sb, format, value)
	}
}
