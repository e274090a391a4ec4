package linkedin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/auto-applier/internal/config"
)

// postingsPerPage is the fixed page size of the search results list.
const postingsPerPage = 25

// dateWindows maps the filter's date keys to the site's seconds-based
// time-posted-range parameter.
var dateWindows = []struct {
	key   string
	param string
}{
	{"month", "r2592000"},
	{"week", "r604800"},
	{"24 hours", "r86400"},
}

// SearchQuery is one (position, location) pair of the search plan.
type SearchQuery struct {
	Position string
	Location string
}

// SearchPlan expands the configured positions and locations into the
// full cartesian product of queries.
func SearchPlan(filters *config.Filters) []SearchQuery {
	plan := make([]SearchQuery, 0, len(filters.Positions)*len(filters.Locations))
	for _, position := range filters.Positions {
		for _, location := range filters.Locations {
			plan = append(plan, SearchQuery{Position: position, Location: location})
		}
	}
	return plan
}

// SearchURL builds the results URL for one query page, encoding every
// enabled filter. Pages are zero-based.
func SearchURL(filters *config.Filters, query SearchQuery, page int) string {
	var parts []string
	if filters.Remote {
		parts = append(parts, "f_CF=f_WRA")
	}
	if levels := filters.EnabledExperienceLevels(); len(levels) > 0 {
		parts = append(parts, "f_E="+strings.Join(levels, ","))
	}
	parts = append(parts, fmt.Sprintf("distance=%d", filters.Distance))
	if jobTypes := filters.EnabledJobTypes(); len(jobTypes) > 0 {
		parts = append(parts, "f_JT="+strings.Join(jobTypes, ","))
	}
	// Easy Apply listings only.
	parts = append(parts, "f_LF=f_AL")
	for _, window := range dateWindows {
		if filters.Date[window.key] {
			parts = append(parts, "f_TPR="+window.param)
			break
		}
	}
	parts = append(parts, "keywords="+url.QueryEscape(query.Position))
	parts = append(parts, "location="+url.QueryEscape(query.Location))
	parts = append(parts, fmt.Sprintf("start=%d", page*postingsPerPage))
	return searchBase + "?" + strings.Join(parts, "&")
}

// Blacklist holds the rejection lists plus the links already seen this
// session.
type Blacklist struct {
	titleWords []string
	companies  map[string]bool
	seenLinks  map[string]bool
}

// NewBlacklist lowercases the configured title words and company names
// once up front.
func NewBlacklist(titleWords, companies []string) *Blacklist {
	b := &Blacklist{
		companies: make(map[string]bool, len(companies)),
		seenLinks: make(map[string]bool),
	}
	for _, word := range titleWords {
		b.titleWords = append(b.titleWords, strings.ToLower(strings.TrimSpace(word)))
	}
	for _, company := range companies {
		b.companies[strings.ToLower(strings.TrimSpace(company))] = true
	}
	return b
}

// Blocked reports whether a posting must be skipped: a blacklisted word
// in the title, a blacklisted company, or a link already processed.
func (b *Blacklist) Blocked(title, company, link string) bool {
	titleWords := strings.Fields(strings.ToLower(title))
	for _, blocked := range b.titleWords {
		for _, word := range titleWords {
			if word == blocked {
				return true
			}
		}
	}
	if b.companies[strings.ToLower(strings.TrimSpace(company))] {
		return true
	}
	return b.seenLinks[link]
}

// MarkSeen records a link so reposts on later pages are skipped.
func (b *Blacklist) MarkSeen(link string) {
	b.seenLinks[link] = true
}
