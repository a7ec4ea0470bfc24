package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/parsing"
	"github.com/skillmatch/backend/internal/vocabulary"
)

// MatchServiceConfig holds configuration for the match service
type MatchServiceConfig struct {
	TopK        int
	Workers     int
	JobCacheTTL time.Duration
}

// MatchReport is a single resume/job comparison together with the skills extracted from each side
type MatchReport struct {
	Result       domain.MatchResult
	ResumeSkills []domain.Skill
	JobSkills    []domain.Skill
}

// CandidateDocument is one resume submitted for ranking
type CandidateDocument struct {
	ID   string // usually the uploaded filename
	Text string
}

// CandidateRanking is the outcome of ranking many resumes against one job
type CandidateRanking struct {
	Ranked     domain.RankedList
	JobSkills  []domain.Skill
	Unreadable []string // IDs of resumes with no extractable text
}

// JobRecommendations is the outcome of ranking job postings for one resume
type JobRecommendations struct {
	Query        string
	ResumeSkills []domain.Skill
	Matches      []domain.JobMatch
}

// MatchService wires extraction, scoring and ranking together and owns the
// caller-side error policy: unreadable resumes and skill-less requirement
// documents are reported instead of being scored as zero.
type MatchService struct {
	vocab     *vocabulary.Vocabulary
	extractor *Extractor
	scorer    *Scorer
	ranker    *Ranker
	jobs      domain.JobSource
	cache     domain.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewMatchService creates a new match service with dependencies.
// jobs and cache may be nil when job recommendations are not used.
func NewMatchService(
	vocab *vocabulary.Vocabulary,
	jobs domain.JobSource,
	cache domain.CacheRepository,
	config MatchServiceConfig,
	logger *zap.Logger,
) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.JobCacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	scorer := NewScorer()

	return &MatchService{
		vocab:     vocab,
		extractor: NewExtractor(vocab),
		scorer:    scorer,
		ranker:    NewRanker(scorer, RankerConfig{TopK: config.TopK, Workers: config.Workers}),
		jobs:      jobs,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger.Named("match"),
	}
}

// Vocabulary returns the vocabulary the service matches against
func (s *MatchService) Vocabulary() *vocabulary.Vocabulary {
	return s.vocab
}

// ExtractSkills returns the canonical skills in text, sorted
func (s *MatchService) ExtractSkills(text string) []domain.Skill {
	return s.extractor.ExtractSorted(text)
}

// MatchDocuments compares one resume with one job description.
// Flow: extract resume skills -> extract job skills -> score with mode
func (s *MatchService) MatchDocuments(
	ctx context.Context,
	resumeText string,
	jobDescription string,
	mode domain.MatchMode,
) (*MatchReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, domain.ErrEmptyDocument
	}

	jobSkills := s.extractor.ExtractSorted(jobDescription)
	if len(jobSkills) == 0 {
		return nil, domain.ErrNoSkillsRecognized
	}
	resumeSkills := s.extractor.ExtractSorted(resumeText)

	s.logger.Debug("extracted skills",
		zap.Strings("resume_skills", resumeSkills),
		zap.Strings("job_skills", jobSkills))

	result := s.scorer.Score(mode, jobSkills, resumeSkills, jobDescription)

	s.logger.Debug("scored match",
		zap.String("mode", string(mode)),
		zap.Float64("score", result.Score),
		zap.Int("matched", result.TotalMatched),
		zap.Int("required", result.TotalRequired))

	return &MatchReport{
		Result:       result,
		ResumeSkills: resumeSkills,
		JobSkills:    jobSkills,
	}, nil
}

// RankCandidates ranks many resumes against one job description.
// Resumes without extractable text are listed in Unreadable rather than ranked.
func (s *MatchService) RankCandidates(
	ctx context.Context,
	jobDescription string,
	resumes []CandidateDocument,
	mode domain.MatchMode,
) (*CandidateRanking, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", domain.ErrInvalidRequest)
	}
	if len(resumes) == 0 {
		return nil, fmt.Errorf("%w: at least one resume is required", domain.ErrInvalidRequest)
	}

	jobSkills := s.extractor.ExtractSorted(jobDescription)
	if len(jobSkills) == 0 {
		return nil, domain.ErrNoSkillsRecognized
	}

	ranking := &CandidateRanking{JobSkills: jobSkills, Unreadable: []string{}}
	candidates := make([]Candidate, 0, len(resumes))
	for _, resume := range resumes {
		if strings.TrimSpace(resume.Text) == "" {
			ranking.Unreadable = append(ranking.Unreadable, resume.ID)
			continue
		}
		label := parsing.GuessCandidateName(resume.Text)
		if label == "" {
			label = resume.ID
		}
		candidates = append(candidates, Candidate{
			ID:     resume.ID,
			Label:  label,
			Skills: s.extractor.ExtractSorted(resume.Text),
		})
	}

	if len(candidates) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	ranked, err := s.ranker.RankCandidates(ctx, jobSkills, jobDescription, candidates, mode)
	if err != nil {
		return nil, err
	}
	ranking.Ranked = ranked

	s.logger.Debug("ranked candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("unreadable", len(ranking.Unreadable)),
		zap.Int("returned", len(ranked)))

	return ranking, nil
}

// RecommendJobs ranks postings from the job source for one resume using advanced scoring.
// Flow: extract resume skills -> build query -> check cache -> job source -> rank -> cache
func (s *MatchService) RecommendJobs(ctx context.Context, resumeText, query string) (*JobRecommendations, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, domain.ErrEmptyDocument
	}
	if s.jobs == nil {
		return nil, fmt.Errorf("%w: no job source configured", domain.ErrJobSourceFailure)
	}

	resumeSkills := s.extractor.ExtractSorted(resumeText)
	searchQuery := BuildJobQuery(query, resumeSkills)

	jobs, err := s.loadJobs(ctx, searchQuery)
	if err != nil {
		return nil, err
	}

	// Openings are keyed by position; posting IDs from a board are not guaranteed unique
	openings := make([]Opening, len(jobs))
	for i, job := range jobs {
		openings[i] = Opening{
			ID:           strconv.Itoa(i),
			Label:        job.Title,
			Requirements: s.requirementPhrases(job),
			Text:         job.Description + "\n" + strings.Join(job.Requirements, "\n"),
		}
	}

	ranked, err := s.ranker.RankJobs(ctx, resumeSkills, openings, domain.MatchModeAdvanced)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.JobMatch, 0, len(ranked))
	for _, entry := range ranked {
		idx, err := strconv.Atoi(entry.ID)
		if err != nil || idx < 0 || idx >= len(jobs) {
			return nil, fmt.Errorf("ranked entry %q does not name a posting", entry.ID)
		}
		matches = append(matches, domain.JobMatch{Job: jobs[idx], Result: entry.Result})
	}

	s.logger.Debug("recommended jobs",
		zap.String("query", searchQuery),
		zap.Int("jobs", len(jobs)),
		zap.Int("returned", len(matches)))

	return &JobRecommendations{
		Query:        searchQuery,
		ResumeSkills: resumeSkills,
		Matches:      matches,
	}, nil
}

// requirementPhrases turns a posting's requirement lines into a requirement list.
// Lines that are vocabulary skills are kept as-is; other lines contribute the
// skills extracted from them. The description is the fallback when nothing is recognized.
func (s *MatchService) requirementPhrases(job domain.JobPosting) []string {
	seen := make(map[string]bool)
	phrases := make([]string, 0, len(job.Requirements))
	add := func(p string) {
		key := domain.NormalizeSkill(p)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		phrases = append(phrases, p)
	}

	for _, req := range job.Requirements {
		if s.vocab.Contains(req) {
			add(req)
			continue
		}
		for _, skill := range s.extractor.ExtractSorted(req) {
			add(skill)
		}
	}

	if len(phrases) == 0 {
		for _, skill := range s.extractor.ExtractSorted(job.Description) {
			add(skill)
		}
	}

	return phrases
}

// loadJobs reads postings for a query through the cache
func (s *MatchService) loadJobs(ctx context.Context, query string) ([]domain.JobPosting, error) {
	cacheKey := generateJobsCacheKey(query)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && len(cached) > 0 {
		s.logger.Debug("job cache hit", zap.String("key", cacheKey), zap.Int("jobs", len(cached)))
		return cached, nil
	}

	jobs, err := s.jobs.SearchJobs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrJobSourceFailure, err)
	}
	if len(jobs) == 0 {
		return nil, domain.ErrNoJobsFound
	}

	// Demo postings stand in for a failing source; caching them would hide its recovery
	if fromDemo(jobs) {
		s.logger.Debug("serving demo jobs without caching", zap.String("key", cacheKey))
		return jobs, nil
	}

	if err := s.setInCache(ctx, cacheKey, jobs); err != nil {
		// Caching is best effort
		s.logger.Warn("failed to cache jobs", zap.String("key", cacheKey), zap.Error(err))
	}

	return jobs, nil
}

// generateJobsCacheKey creates a normalized cache key for a job query.
// Format: "jobs:{normalized_query}"
func generateJobsCacheKey(query string) string {
	return fmt.Sprintf("jobs:%s", normalizeForCacheKey(query))
}

// getFromCache retrieves job postings from cache
func (s *MatchService) getFromCache(ctx context.Context, key string) ([]domain.JobPosting, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if jobs, ok := value.([]domain.JobPosting); ok {
		return markSource(jobs, domain.SourceCache), nil
	}

	// Values come back as generic JSON structures from the cache
	var jobs []domain.JobPosting
	if err := mapstructure.Decode(value, &jobs); err != nil {
		return nil, errors.Join(domain.ErrCacheMiss, err)
	}
	return markSource(jobs, domain.SourceCache), nil
}

// setInCache stores job postings in cache
func (s *MatchService) setInCache(ctx context.Context, key string, jobs []domain.JobPosting) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, jobs, s.cacheTTL)
}

func markSource(jobs []domain.JobPosting, source string) []domain.JobPosting {
	out := make([]domain.JobPosting, len(jobs))
	for i, job := range jobs {
		job.Source = source
		out[i] = job
	}
	return out
}

func fromDemo(jobs []domain.JobPosting) bool {
	for _, job := range jobs {
		if job.Source == domain.SourceDemo {
			return true
		}
	}
	return false
}
