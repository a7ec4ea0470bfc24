package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/vocabulary"
)

// Context qualifiers for ambiguity-sensitive skills
const (
	databaseQualifiers   = `\s+database|\s+db|\s*,|\s*\.|\s*;|\s*\n|\s*$`
	precedingDBKeywords  = `database|db|nosql|sql`
	experienceQualifiers = `experience|skills?|knowledge|proficiency`
)

// Extractor finds canonical vocabulary skills in free text.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	vocab   *vocabulary.Vocabulary
	ordered []domain.Skill
	// contextRules holds the extra patterns an ambiguity-sensitive skill must satisfy (any one of them)
	contextRules map[domain.Skill][]*regexp.Regexp
}

// NewExtractor creates an extractor over the given vocabulary
func NewExtractor(vocab *vocabulary.Vocabulary) *Extractor {
	e := &Extractor{
		vocab:        vocab,
		ordered:      vocab.ByLength(),
		contextRules: make(map[domain.Skill][]*regexp.Regexp),
	}

	for _, skill := range e.ordered {
		if !vocab.IsAmbiguitySensitive(skill) {
			continue
		}
		quoted := regexp.QuoteMeta(skill)
		e.contextRules[skill] = []*regexp.Regexp{
			regexp.MustCompile(`\b` + quoted + `(?:` + databaseQualifiers + `)`),
			regexp.MustCompile(`(?s)(?:` + precedingDBKeywords + `).*?` + quoted),
			regexp.MustCompile(`\b` + quoted + `\s+(?:` + experienceQualifiers + `)`),
		}
	}

	return e
}

// Extract returns the set of vocabulary skills present in text.
// Empty or whitespace-only input yields an empty set. Extract never fails.
func (e *Extractor) Extract(text string) domain.SkillSet {
	found := make(domain.SkillSet)
	if strings.TrimSpace(text) == "" {
		return found
	}

	lower := strings.ToLower(text)

	for _, skill := range e.ordered {
		if !containsPhrase(lower, skill) {
			continue
		}
		if rules, ok := e.contextRules[skill]; ok && !anyMatch(rules, lower) {
			continue
		}
		found[skill] = struct{}{}
	}

	return found
}

// ExtractSorted is Extract with the result in lexical order
func (e *Extractor) ExtractSorted(text string) []domain.Skill {
	return e.Extract(text).Sorted()
}

// containsPhrase reports whether phrase occurs in text flanked by non-alphanumeric
// characters or the edges of text. Every occurrence is tried.
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	offset := 0
	for offset <= len(text)-len(phrase) {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(phrase)
		if isBoundaryBefore(text, start) && isBoundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func isBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func isBoundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
