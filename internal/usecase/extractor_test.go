package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/vocabulary"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(vocabulary.New())
}

func TestExtractor_Extract(t *testing.T) {
	extractor := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want []domain.Skill
	}{
		{
			name: "empty text",
			text: "",
			want: []domain.Skill{},
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: []domain.Skill{},
		},
		{
			name: "simple skills are case-insensitive",
			text: "Experienced in PYTHON and Docker",
			want: []domain.Skill{"docker", "python"},
		},
		{
			name: "java is not found inside javascript",
			text: "javascript developer",
			want: []domain.Skill{"javascript"},
		},
		{
			name: "symbols in skill names",
			text: "Worked with c++ and .net daily",
			want: []domain.Skill{".net", "c++"},
		},
		{
			name: "compound skill and its part are both reported",
			text: "Built services with Spring Boot and machine learning",
			want: []domain.Skill{"machine learning", "spring", "spring boot"},
		},
		{
			name: "oracle as a company is ignored",
			text: "Oracle reported strong earnings",
			want: []domain.Skill{},
		},
		{
			name: "oracle followed by database",
			text: "Experience with Oracle database",
			want: []domain.Skill{"oracle"},
		},
		{
			name: "ambiguous skills followed by punctuation",
			text: "MySQL, Redis.",
			want: []domain.Skill{"mysql", "redis"},
		},
		{
			name: "ambiguous skill followed by experience",
			text: "strong mongodb experience",
			want: []domain.Skill{"mongodb"},
		},
		{
			name: "ambiguous skill after a database keyword on an earlier line",
			text: "database work:\nwe ran cassandra clusters",
			want: []domain.Skill{"cassandra"},
		},
		{
			name: "skill at end of text",
			text: "tools: kubernetes",
			want: []domain.Skill{"kubernetes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.ExtractSorted(tt.text))
		})
	}
}

func TestExtractor_ResultsBelongToVocabulary(t *testing.T) {
	vocab := vocabulary.New()
	extractor := NewExtractor(vocab)

	text := `Senior engineer with Go, Python, React and AWS. Used PostgreSQL database,
Kubernetes, Terraform and CI/CD pipelines. Agile, Scrum, TDD. Figma for wireframing.`

	skills := extractor.Extract(text)
	require.NotZero(t, skills.Len())
	for skill := range skills {
		assert.True(t, vocab.Contains(skill), "unexpected skill %q", skill)
	}
	assert.True(t, skills.Contains("postgresql"))
	assert.True(t, skills.Contains("ci/cd"))
}

func TestExtractor_Deterministic(t *testing.T) {
	extractor := newTestExtractor(t)
	text := "React, Redux, Node.js, MongoDB database and Jest"

	first := extractor.ExtractSorted(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, extractor.ExtractSorted(text))
	}
}

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		text   string
		phrase string
		want   bool
	}{
		{"go developer", "go", true},
		{"google cloud", "go", false},
		{"ergo go", "go", true},
		{"use c# here", "c#", true},
		{"node.js,", "node.js", true},
		{"café go", "go", true},
		{"goé", "go", false},
		{"anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.phrase, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPhrase(tt.text, tt.phrase))
		})
	}
}
