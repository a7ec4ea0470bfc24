package domain

// MatchMode selects the scoring strategy
type MatchMode string

const (
	// MatchModeBasic scores by the required-skill intersection ratio only
	MatchModeBasic MatchMode = "basic"
	// MatchModeAdvanced blends exact, fuzzy and semantic signals
	MatchModeAdvanced MatchMode = "advanced"
)

// ParseMatchMode maps user input to a MatchMode. Unknown values fall back to basic.
func ParseMatchMode(s string) MatchMode {
	if MatchMode(NormalizeSkill(s)) == MatchModeAdvanced {
		return MatchModeAdvanced
	}
	return MatchModeBasic
}

// MatchResult is one comparison between a reference (job) skill list and a candidate (resume) skill list.
// It is built fresh per comparison and never mutated after being returned.
type MatchResult struct {
	Mode             MatchMode `json:"mode"`
	Score            float64   `json:"score"`                   // Combined score 0-100, two decimals
	ExactScore       float64   `json:"exactScore"`              // Intersection ratio 0-100
	FuzzyScore       float64   `json:"fuzzyScore,omitempty"`    // Advanced mode only
	SemanticScore    float64   `json:"semanticScore,omitempty"` // Advanced mode only
	MatchedSkills    []string  `json:"matchedSkills"`
	MissingSkills    []string  `json:"missingSkills"`
	AdditionalSkills []string  `json:"additionalSkills"`
	TotalRequired    int       `json:"totalRequired"`
	TotalMatched     int       `json:"totalMatched"`
}

// RankedEntry attaches a MatchResult to the identity of the ranked document
type RankedEntry struct {
	ID     string      `json:"id"`
	Label  string      `json:"label,omitempty"`
	Result MatchResult `json:"result"`
}

// RankedList is ordered by descending combined score; ties keep input order
type RankedList []RankedEntry
