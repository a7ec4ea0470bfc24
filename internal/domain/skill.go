package domain

import (
	"sort"
	"strings"
)

// Skill is a canonical, lowercase, trimmed technical phrase from the vocabulary
type Skill = string

// NormalizeSkill lowercases and trims a skill phrase for set comparisons
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SkillSet is the set of canonical skills found in one document
type SkillSet map[Skill]struct{}

// NewSkillSet builds a set from the given skills, normalizing each and dropping blanks
func NewSkillSet(skills ...string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, s := range skills {
		set.Add(s)
	}
	return set
}

// Add inserts a skill after normalization. Blank input is ignored.
func (s SkillSet) Add(skill string) {
	normalized := NormalizeSkill(skill)
	if normalized == "" {
		return
	}
	s[normalized] = struct{}{}
}

// Contains reports whether the normalized skill is in the set
func (s SkillSet) Contains(skill string) bool {
	_, ok := s[NormalizeSkill(skill)]
	return ok
}

// Len returns the number of skills in the set
func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the skills in lexical order for deterministic output
func (s SkillSet) Sorted() []Skill {
	out := make([]Skill, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}
