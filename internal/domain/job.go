package domain

// Job posting sources
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceDemo   = "demo"
)

// JobPosting is a job record handed over by a job source
type JobPosting struct {
	ID           string   `json:"id" mapstructure:"id"`
	Title        string   `json:"title" mapstructure:"title"`
	Company      string   `json:"company,omitempty" mapstructure:"company"`
	Location     string   `json:"location,omitempty" mapstructure:"location"`
	Description  string   `json:"description" mapstructure:"description"`
	Requirements []string `json:"requirements" mapstructure:"requirements"`
	URL          string   `json:"url,omitempty" mapstructure:"url"`
	Source       string   `json:"source,omitempty" mapstructure:"-"` // one of the Source constants
}

// JobMatch is a ranked job recommendation for one resume
type JobMatch struct {
	Job    JobPosting  `json:"job"`
	Result MatchResult `json:"result"`
}
