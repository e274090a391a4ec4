package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/auto-applier/internal/config"
)

func searchFilters() *config.Filters {
	return &config.Filters{
		Remote:          true,
		ExperienceLevel: map[string]bool{"internship": false, "entry": true, "associate": true, "mid-senior level": false, "director": false, "executive": false},
		JobTypes:        map[string]bool{"full-time": true, "contract": true, "part-time": false, "temporary": false, "internship": false, "other": false, "volunteer": false},
		Date:            map[string]bool{"all time": false, "month": false, "week": true, "24 hours": false},
		Positions:       []string{"Site Reliability Engineer", "Platform Engineer"},
		Locations:       []string{"Germany"},
		Distance:        25,
	}
}

func TestSearchURL(t *testing.T) {
	url := SearchURL(searchFilters(), SearchQuery{Position: "Site Reliability Engineer", Location: "Germany"}, 2)

	assert.Contains(t, url, "https://www.linkedin.com/jobs/search/?")
	assert.Contains(t, url, "f_CF=f_WRA")
	assert.Contains(t, url, "f_E=2,3")
	assert.Contains(t, url, "distance=25")
	assert.Contains(t, url, "f_JT=F,C")
	assert.Contains(t, url, "f_LF=f_AL")
	assert.Contains(t, url, "f_TPR=r604800")
	assert.Contains(t, url, "keywords=Site+Reliability+Engineer")
	assert.Contains(t, url, "location=Germany")
	assert.Contains(t, url, "start=50")
}

func TestSearchURLMinimalFilters(t *testing.T) {
	filters := &config.Filters{Distance: 0, Date: map[string]bool{"all time": true}}
	url := SearchURL(filters, SearchQuery{Position: "dev", Location: "Rome"}, 0)

	assert.NotContains(t, url, "f_CF")
	assert.NotContains(t, url, "f_E=")
	assert.NotContains(t, url, "f_JT=")
	assert.NotContains(t, url, "f_TPR=")
	assert.Contains(t, url, "distance=0")
	assert.Contains(t, url, "start=0")
}

func TestSearchPlanIsCartesianProduct(t *testing.T) {
	filters := &config.Filters{
		Positions: []string{"a", "b"},
		Locations: []string{"x", "y", "z"},
	}
	plan := SearchPlan(filters)

	assert.Len(t, plan, 6)
	assert.Equal(t, SearchQuery{Position: "a", Location: "x"}, plan[0])
	assert.Equal(t, SearchQuery{Position: "b", Location: "z"}, plan[5])
}

func TestBlacklist(t *testing.T) {
	b := NewBlacklist([]string{"intern", "Junior"}, []string{"Bad Corp"})

	assert.True(t, b.Blocked("Software Intern", "Acme", "l1"), "title word match")
	assert.True(t, b.Blocked("Senior Engineer", "bad corp", "l2"), "company match is case insensitive")
	assert.False(t, b.Blocked("Internal Tools Engineer", "Acme", "l3"), "substring of a title word does not match")
	assert.False(t, b.Blocked("Senior Engineer", "Acme", "l4"))

	b.MarkSeen("l4")
	assert.True(t, b.Blocked("Senior Engineer", "Acme", "l4"), "seen link is blocked")
}
