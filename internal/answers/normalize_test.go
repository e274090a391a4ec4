package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"lowercase", "Years Of Python", "years of python"},
		{"punctuation stripped", "Years of Python?", "years of python"},
		{"whitespace collapsed", "  years\tof   python \n", "years of python"},
		{"digits kept", "How many years (5+)?", "how many years 5"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.label))
		})
	}
}

func TestHashStable(t *testing.T) {
	h1 := Hash("years of python")
	h2 := Hash("years of python")
	h3 := Hash("years of go")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}

func TestNormalizedLabelsHashAlike(t *testing.T) {
	assert.Equal(t, Hash(Normalize("Years of Python?")), Hash(Normalize("years   of python")))
}
