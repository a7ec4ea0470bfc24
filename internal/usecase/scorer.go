package usecase

import (
	"math"
	"strings"

	"github.com/skillmatch/backend/internal/domain"
)

// Signal weights for the advanced combined score
const (
	exactWeight    = 0.5
	fuzzyWeight    = 0.3
	semanticWeight = 0.2
)

// fuzzyMatchThreshold is the minimum similarity ratio for a fuzzy skill match
const fuzzyMatchThreshold = 80.0

// Scorer compares a reference skill list (job requirements) with a candidate skill list (resume).
// Both modes are pure functions of their inputs.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score dispatches to Basic or Advanced by mode
func (s *Scorer) Score(mode domain.MatchMode, reference, candidate []string, referenceText string) domain.MatchResult {
	if mode == domain.MatchModeAdvanced {
		return s.Advanced(reference, candidate, referenceText)
	}
	return s.Basic(reference, candidate)
}

// Basic scores the share of required skills present in the candidate list.
// Comparisons are case-insensitive; output keeps the first-seen casing of each input list.
func (s *Scorer) Basic(reference, candidate []string) domain.MatchResult {
	ref := newSkillList(reference)
	cand := newSkillList(candidate)

	result := newResult(domain.MatchModeBasic, len(ref.keys))

	if len(ref.keys) == 0 {
		result.AdditionalSkills = cand.originals(nil)
		return result
	}

	matched := make(map[string]bool)
	for _, key := range ref.keys {
		if cand.has(key) {
			matched[key] = true
		}
	}

	result.ExactScore = round2(100 * float64(len(matched)) / float64(len(ref.keys)))
	result.Score = result.ExactScore
	result.TotalMatched = len(matched)
	result.MatchedSkills = cand.originals(func(key string) bool { return matched[key] })
	result.MissingSkills = ref.originals(func(key string) bool { return !cand.has(key) })
	result.AdditionalSkills = cand.originals(func(key string) bool { return !ref.has(key) })

	return result
}

// Advanced blends three signals into one combined score:
//   - exact: share of requirement phrases present verbatim in the candidate list
//   - fuzzy: share of the remaining phrases whose closest candidate skill has a similarity ratio >= 80
//   - semantic: share of distinct reference-text words that also appear in the candidate phrases
//
// combined = 0.5*exact + 0.3*fuzzy + 0.2*semantic, rounded to two decimals.
func (s *Scorer) Advanced(reference, candidate []string, referenceText string) domain.MatchResult {
	ref := newSkillList(reference)
	cand := newSkillList(candidate)

	result := newResult(domain.MatchModeAdvanced, len(ref.keys))

	if len(ref.keys) == 0 {
		result.AdditionalSkills = cand.originals(nil)
		return result
	}

	// Candidate skills that satisfied at least one requirement
	satisfied := make(map[string]bool)

	exactCount := 0
	for _, key := range ref.keys {
		if cand.has(key) {
			exactCount++
			satisfied[key] = true
		}
	}

	fuzzyCount := 0
	for _, key := range ref.keys {
		if cand.has(key) {
			continue
		}
		if best, ok := cand.closest(key); ok {
			fuzzyCount++
			satisfied[best] = true
		}
	}

	total := float64(len(ref.keys))
	result.ExactScore = round2(100 * float64(exactCount) / total)
	result.FuzzyScore = round2(100 * float64(fuzzyCount) / total)
	result.SemanticScore = round2(semanticOverlap(referenceText, cand.originals(nil)))
	result.Score = combinedScore(result.ExactScore, result.FuzzyScore, result.SemanticScore)
	result.TotalMatched = exactCount + fuzzyCount

	result.MatchedSkills = cand.originals(func(key string) bool { return satisfied[key] })
	// satisfied holds candidate keys, so a requirement met only by a fuzzy match
	// still counts as missing: it is credited in FuzzyScore, not in the literal lists
	result.MissingSkills = ref.originals(func(key string) bool { return !satisfied[key] })
	result.AdditionalSkills = cand.originals(func(key string) bool { return !satisfied[key] })

	return result
}

// combinedScore applies the fixed signal weights
func combinedScore(exact, fuzzy, semantic float64) float64 {
	return round2(exactWeight*exact + fuzzyWeight*fuzzy + semanticWeight*semantic)
}

// semanticOverlap is the percentage of distinct reference-text words that
// also occur in the joined candidate phrases. Bag of words, no weighting.
func semanticOverlap(referenceText string, candidate []string) float64 {
	if strings.TrimSpace(referenceText) == "" {
		return 0
	}

	refWords := wordSet(referenceText)
	if len(refWords) == 0 {
		return 0
	}
	candWords := wordSet(strings.Join(candidate, " "))

	common := 0
	for w := range refWords {
		if _, ok := candWords[w]; ok {
			common++
		}
	}

	return 100 * float64(common) / float64(len(refWords))
}

func newResult(mode domain.MatchMode, totalRequired int) domain.MatchResult {
	return domain.MatchResult{
		Mode:             mode,
		MatchedSkills:    []string{},
		MissingSkills:    []string{},
		AdditionalSkills: []string{},
		TotalRequired:    totalRequired,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// skillList is a deduplicated, normalized view of an input list that remembers original casing
type skillList struct {
	keys     []string          // normalized, input order, unique
	original map[string]string // normalized -> first-seen original (trimmed)
}

func newSkillList(items []string) skillList {
	l := skillList{
		keys:     make([]string, 0, len(items)),
		original: make(map[string]string, len(items)),
	}
	for _, item := range items {
		key := domain.NormalizeSkill(item)
		if key == "" {
			continue
		}
		if _, seen := l.original[key]; seen {
			continue
		}
		l.keys = append(l.keys, key)
		l.original[key] = strings.TrimSpace(item)
	}
	return l
}

func (l skillList) has(key string) bool {
	_, ok := l.original[key]
	return ok
}

// originals returns the original spellings, in input order, of the keys accepted by keep (all when nil)
func (l skillList) originals(keep func(key string) bool) []string {
	out := make([]string, 0, len(l.keys))
	for _, key := range l.keys {
		if keep == nil || keep(key) {
			out = append(out, l.original[key])
		}
	}
	return out
}

// closest finds the entry most similar to phrase. ok is false when no entry reaches the fuzzy threshold.
// The first entry wins ties.
func (l skillList) closest(phrase string) (string, bool) {
	bestKey := ""
	bestRatio := -1.0
	for _, key := range l.keys {
		ratio := similarityRatio(phrase, key)
		if ratio > bestRatio {
			bestRatio = ratio
			bestKey = key
		}
	}
	if bestKey == "" || bestRatio < fuzzyMatchThreshold {
		return "", false
	}
	return bestKey, true
}
