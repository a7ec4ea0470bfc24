package usecase

import (
	"regexp"
	"strings"

	"github.com/skillmatch/backend/internal/domain"
)

// maxQueryLength keeps job source queries short enough for board search endpoints
const maxQueryLength = 100

// maxQuerySkills is how many resume skills seed a query when the user gives none
const maxQuerySkills = 3

// Compiled regex patterns for query cleanup
var (
	// Seniority and employment noise that narrows board searches without helping skill matching
	queryNoisePattern = regexp.MustCompile(`(?i)\b(?:senior|sr|junior|jr|lead|principal|staff|intern|full[\s-]?time|part[\s-]?time|remote|hybrid|onsite|on-site|contract|urgent|hiring|job|jobs|position|role)\b\.?`)

	// Characters that job board query parsers reject
	queryUnsafeChars = regexp.MustCompile(`[^\p{L}\p{N}\s+#./-]`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// broadSkills are too generic to seed a job search on their own
var broadSkills = map[string]bool{
	"testing": true, "agile": true, "git": true, "github": true, "json": true, "xml": true,
	"http": true, "https": true, "html": true, "css": true, "excel": true, "windows": true,
	"linux": true, "frontend": true, "backend": true, "ai": true, "ml": true, "r": true, "go": true,
}

// BuildJobQuery returns a cleaned search query. The user query wins when it
// survives cleaning; otherwise the most specific resume skills are used.
func BuildJobQuery(userQuery string, resumeSkills []domain.Skill) string {
	if cleaned := cleanQuery(userQuery); cleaned != "" {
		return cleaned
	}

	picked := make([]string, 0, maxQuerySkills)
	for _, pass := range []bool{false, true} {
		for _, skill := range longestFirst(resumeSkills) {
			if len(picked) == maxQuerySkills {
				break
			}
			if broadSkills[skill] != pass || contains(picked, skill) {
				continue
			}
			picked = append(picked, skill)
		}
	}

	return cleanQuery(strings.Join(picked, " "))
}

// cleanQuery strips noise words and unsafe characters, collapses whitespace and caps the length
func cleanQuery(q string) string {
	if strings.TrimSpace(q) == "" {
		return ""
	}

	cleaned := queryNoisePattern.ReplaceAllString(q, " ")
	cleaned = queryUnsafeChars.ReplaceAllString(cleaned, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	return cleaned
}

// normalizeForCacheKey normalizes a string for use as cache key component.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = queryUnsafeChars.ReplaceAllString(result, "")
	result = multiSpacePattern.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func longestFirst(skills []domain.Skill) []domain.Skill {
	out := make([]domain.Skill, len(skills))
	copy(out, skills)
	// insertion sort keeps equal-length skills in input order
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
