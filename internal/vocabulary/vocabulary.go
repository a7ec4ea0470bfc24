// Package vocabulary holds the static catalog of canonical technical skills.
//
// A Vocabulary is built once at process start and shared read-only by the
// extractor, scorer and service layers. It is safe for concurrent use.
package vocabulary

import (
	"sort"

	"github.com/skillmatch/backend/internal/domain"
)

// Category is a named group of skills
type Category struct {
	Name   string         `json:"name"`
	Skills []domain.Skill `json:"skills"`
}

// Vocabulary is an ordered, deduplicated catalog of canonical skill phrases
type Vocabulary struct {
	skills     []domain.Skill
	byLength   []domain.Skill
	index      map[domain.Skill]string // skill -> category of first occurrence
	categories []Category
	ambiguous  map[domain.Skill]bool
}

// New returns the compiled-in technical skills vocabulary
func New() *Vocabulary {
	return NewFromCategories(technicalSkills, ambiguitySensitive)
}

// NewFromCategories builds a vocabulary from the given categories.
// Skills are normalized; a skill listed in more than one category is kept once,
// under the first category that names it. Ambiguity-sensitive entries that are
// not part of any category are ignored.
func NewFromCategories(categories []Category, ambiguous []string) *Vocabulary {
	v := &Vocabulary{
		index:     make(map[domain.Skill]string),
		ambiguous: make(map[domain.Skill]bool),
	}

	for _, category := range categories {
		kept := make([]domain.Skill, 0, len(category.Skills))
		for _, raw := range category.Skills {
			skill := domain.NormalizeSkill(raw)
			if skill == "" {
				continue
			}
			if _, exists := v.index[skill]; exists {
				continue
			}
			v.index[skill] = category.Name
			v.skills = append(v.skills, skill)
			kept = append(kept, skill)
		}
		v.categories = append(v.categories, Category{Name: category.Name, Skills: kept})
	}

	for _, raw := range ambiguous {
		skill := domain.NormalizeSkill(raw)
		if _, exists := v.index[skill]; exists {
			v.ambiguous[skill] = true
		}
	}

	// Longest phrase first so compound skills are tested before the shorter phrases they contain
	v.byLength = make([]domain.Skill, len(v.skills))
	copy(v.byLength, v.skills)
	sort.SliceStable(v.byLength, func(i, j int) bool {
		return len(v.byLength[i]) > len(v.byLength[j])
	})

	return v
}

// Skills returns the canonical skills in catalog order
func (v *Vocabulary) Skills() []domain.Skill {
	out := make([]domain.Skill, len(v.skills))
	copy(out, v.skills)
	return out
}

// ByLength returns the canonical skills ordered longest phrase first.
// Skills of equal length keep catalog order.
func (v *Vocabulary) ByLength() []domain.Skill {
	out := make([]domain.Skill, len(v.byLength))
	copy(out, v.byLength)
	return out
}

// Len returns the number of canonical skills
func (v *Vocabulary) Len() int {
	return len(v.skills)
}

// Contains reports whether s is a canonical skill (exact lowercase equality)
func (v *Vocabulary) Contains(s string) bool {
	_, ok := v.index[domain.NormalizeSkill(s)]
	return ok
}

// CategoryOf returns the category a skill is filed under
func (v *Vocabulary) CategoryOf(s string) (string, bool) {
	name, ok := v.index[domain.NormalizeSkill(s)]
	return name, ok
}

// Category returns one category of the catalog by name
func (v *Vocabulary) Category(name string) (Category, bool) {
	for _, c := range v.categories {
		if c.Name == name {
			skills := make([]domain.Skill, len(c.Skills))
			copy(skills, c.Skills)
			return Category{Name: c.Name, Skills: skills}, true
		}
	}
	return Category{}, false
}

// IsAmbiguitySensitive reports whether a skill needs extra context before it counts as a match
func (v *Vocabulary) IsAmbiguitySensitive(s string) bool {
	return v.ambiguous[domain.NormalizeSkill(s)]
}

// Categories returns the catalog partition
func (v *Vocabulary) Categories() []Category {
	out := make([]Category, len(v.categories))
	for i, c := range v.categories {
		skills := make([]domain.Skill, len(c.Skills))
		copy(skills, c.Skills)
		out[i] = Category{Name: c.Name, Skills: skills}
	}
	return out
}
