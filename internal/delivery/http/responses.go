package http

import (
	"github.com/skillmatch/backend/internal/domain"
)

type matchTextRequest struct {
	ResumeText     string `json:"resume_text" binding:"required,notblank"`
	JobDescription string `json:"job_description" binding:"required,notblank"`
	Mode           string `json:"mode" binding:"omitempty,oneof=basic advanced"`
}

type extractRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type scoreBreakdown struct {
	Exact    float64 `json:"exact"`
	Fuzzy    float64 `json:"fuzzy"`
	Semantic float64 `json:"semantic"`
}

type debugInfo struct {
	ResumeSkillsCount  int      `json:"resume_skills_count"`
	JobSkillsCount     int      `json:"job_skills_count"`
	ResumeSkillsFull   []string `json:"resume_skills_full"`
	JobSkillsFull      []string `json:"job_skills_full"`
	ResumeSkillsSample []string `json:"resume_skills_sample"`
	JobSkillsSample    []string `json:"job_skills_sample"`
}

type uploadMatchResponse struct {
	Success          bool             `json:"success"`
	Filename         string           `json:"filename"`
	Mode             domain.MatchMode `json:"mode"`
	MatchScore       float64          `json:"match_score"`
	Scores           *scoreBreakdown  `json:"scores,omitempty"`
	MatchedSkills    []string         `json:"matched_skills"`
	MissingSkills    []string         `json:"missing_skills"`
	AdditionalSkills []string         `json:"additional_skills"`
	TotalRequired    int              `json:"total_required"`
	TotalMatched     int              `json:"total_matched"`
	ResumePreview    string           `json:"resume_preview"`
	DebugInfo        debugInfo        `json:"debug_info"`
}

type matchTextResponse struct {
	Success      bool               `json:"success"`
	Result       domain.MatchResult `json:"result"`
	ResumeSkills []string           `json:"resume_skills"`
	JobSkills    []string           `json:"job_skills"`
}

type rankResponse struct {
	Success        bool              `json:"success"`
	Mode           domain.MatchMode  `json:"mode"`
	JobSkills      []string          `json:"job_skills"`
	Candidates     domain.RankedList `json:"candidates"`
	Unreadable     []string          `json:"unreadable"`
	Rejected       []string          `json:"rejected"`
	TotalSubmitted int               `json:"total_submitted"`
}

type recommendResponse struct {
	Success      bool              `json:"success"`
	Filename     string            `json:"filename"`
	Query        string            `json:"query"`
	ResumeSkills []string          `json:"resume_skills"`
	Jobs         []domain.JobMatch `json:"jobs"`
}
