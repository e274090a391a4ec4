package answers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

var numberPattern = regexp.MustCompile(`-?\d+`)

// extractNumber pulls the first integer out of an LLM reply. Replies
// like "5 years" or "around 3" resolve to their leading number.
func extractNumber(reply string) (int, bool) {
	match := numberPattern.FindString(reply)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// placeholderOption reports whether an option is a select placeholder
// that must never be chosen as an answer.
func placeholderOption(option string) bool {
	lower := strings.ToLower(strings.TrimSpace(option))
	switch lower {
	case "", "none", "select an option", "select...", "choose from the options below", "please select":
		return true
	}
	return strings.HasPrefix(lower, "select an") || strings.HasPrefix(lower, "choose an")
}

// firstRealOption returns the first non-placeholder option, falling
// back to the first option when all look like placeholders.
func firstRealOption(options []string) string {
	for _, opt := range options {
		if !placeholderOption(opt) {
			return opt
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

// bestOptionMatch maps an LLM reply onto the closest enumerated option
// by Levenshtein distance. Placeholder options are never chosen.
func bestOptionMatch(reply string, options []string) string {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return firstRealOption(options)
	}

	best := ""
	bestDist := -1
	for _, opt := range options {
		if placeholderOption(opt) {
			continue
		}
		dist := levenshtein.ComputeDistance(strings.ToLower(reply), strings.ToLower(opt))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = opt, dist
		}
	}
	if best == "" {
		return firstRealOption(options)
	}
	return best
}

// matchSubset maps a comma-separated LLM reply onto the enumerated
// options, keeping document order and dropping items that match nothing.
func matchSubset(reply string, options []string) []string {
	wanted := make(map[string]bool)
	for _, part := range strings.Split(reply, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		wanted[strings.ToLower(bestOptionMatch(part, options))] = true
	}

	var selected []string
	for _, opt := range options {
		if wanted[strings.ToLower(opt)] {
			selected = append(selected, opt)
		}
	}
	return selected
}
