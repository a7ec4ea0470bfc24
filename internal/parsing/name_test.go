package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessCandidateName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "name on first line",
			text: "Jane Doe\njane@example.com\nSkills: Go, Docker",
			want: "Jane Doe",
		},
		{
			name: "uppercase name is title-cased",
			text: "JOHN O'BRIEN\nSoftware Engineer",
			want: "John O'brien",
		},
		{
			name: "skips resume heading and contact lines",
			text: "Curriculum Vitae\n\nPhone: 555 0100\nmaria.lopez@example.com\nMaria Lopez Garcia\n",
			want: "Maria Lopez Garcia",
		},
		{
			name: "hyphenated and initialed names",
			text: "anne-marie j. smith",
			want: "Anne-marie J. Smith",
		},
		{
			name: "single word is not a name",
			text: "Engineer\nPython",
			want: "",
		},
		{
			name: "too many words",
			text: "Senior Backend Software Engineer At Scale",
			want: "",
		},
		{
			name: "punctuation disqualifies line",
			text: "Go, Python, Docker\nKubernetes & Helm",
			want: "",
		},
		{
			name: "standalone cv keyword is skipped",
			text: "CV Document\nLee Chen",
			want: "Lee Chen",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessCandidateName(tt.text))
		})
	}
}

func TestGuessCandidateName_OnlyInspectsTopLines(t *testing.T) {
	lines := make([]string, 0, maxNameLines+1)
	for i := 0; i < maxNameLines; i++ {
		lines = append(lines, "Skills: Go")
	}
	lines = append(lines, "Late Name")

	assert.Empty(t, GuessCandidateName(strings.Join(lines, "\n")))
}
