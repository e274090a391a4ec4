package types

import (
	"strconv"
	"time"
)

// FieldKind classifies a form field descriptor. The set mirrors what the
// quick-apply flow renders: free text, numeric inputs, enumerated
// selects, date pickers, file uploads, confirmation checkboxes, and
// summary textareas detected by their label text.
type FieldKind string

// Field kinds, in no particular order.
const (
	FieldText        FieldKind = "text"
	FieldTextArea    FieldKind = "textarea"
	FieldNumeric     FieldKind = "numeric"
	FieldSelect      FieldKind = "select"
	FieldMultiSelect FieldKind = "multiselect"
	FieldDate        FieldKind = "date"
	FieldUpload      FieldKind = "upload"
	FieldCheckbox    FieldKind = "checkbox"
	FieldSummary     FieldKind = "summary"
)

// Field is a typed descriptor for a single visible form field, derived
// from the DOM by the browser driver.
type Field struct {
	// ID is the DOM-stable identifier of the input element.
	ID string
	// Label is the visible label text.
	Label string
	Kind  FieldKind
	// Options holds the enumerated choices for select and multiselect fields.
	Options []string
	// Required reflects the DOM-level required constraint.
	Required bool
	// ErrorText carries the inline server-side validation message, when present.
	ErrorText string
}

// AnswerSource records how an answer was obtained.
type AnswerSource string

// Answer provenance values.
const (
	SourceCached      AnswerSource = "cached"
	SourceSynthesized AnswerSource = "synthesized"
	SourceFallback    AnswerSource = "fallback"
)

// Answer is the typed counterpart of a Field. Exactly the variant
// matching Kind carries meaning: Text for textual fields, Number for
// numeric fields, Selected for (multi)selects, Date for date pickers,
// FilePath for uploads.
type Answer struct {
	Kind     FieldKind
	Text     string
	Number   int
	Selected []string
	Date     time.Time
	FilePath string

	Source       AnswerSource
	QuestionHash string
}

// Value returns the string to be typed or chosen in the hosting form.
func (a Answer) Value() string {
	switch a.Kind {
	case FieldNumeric:
		return strconv.Itoa(a.Number)
	case FieldSelect, FieldMultiSelect:
		if len(a.Selected) == 0 {
			return ""
		}
		out := a.Selected[0]
		for _, s := range a.Selected[1:] {
			out += ", " + s
		}
		return out
	case FieldDate:
		if a.Date.IsZero() {
			return ""
		}
		return a.Date.Format("01/02/06")
	case FieldUpload:
		return a.FilePath
	default:
		return a.Text
	}
}
