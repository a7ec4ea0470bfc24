package jobsource

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/skillmatch/backend/internal/domain"
)

// FallbackSource serves demonstration jobs whenever the primary source is
// missing, fails, or returns nothing
type FallbackSource struct {
	primary domain.JobSource
	logger  *zap.Logger
}

// NewFallbackSource wraps primary, which may be nil
func NewFallbackSource(primary domain.JobSource, logger *zap.Logger) *FallbackSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackSource{primary: primary, logger: logger.Named("jobs")}
}

// SearchJobs implements domain.JobSource
func (s *FallbackSource) SearchJobs(ctx context.Context, query string) ([]domain.JobPosting, error) {
	if s.primary != nil {
		jobs, err := s.primary.SearchJobs(ctx, query)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("job source failed, serving demo jobs", zap.String("query", query), zap.Error(err))
		case len(jobs) == 0:
			s.logger.Info("job source returned no jobs, serving demo jobs", zap.String("query", query))
		default:
			return jobs, nil
		}
	}

	return filterDemoJobs(query), nil
}

// filterDemoJobs keeps demo jobs mentioning any query word, or all of them when none match
func filterDemoJobs(query string) []domain.JobPosting {
	jobs := DemoJobs()
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return jobs
	}

	matched := make([]domain.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		haystack := strings.ToLower(job.Title + " " + job.Description + " " + strings.Join(job.Requirements, " "))
		for _, w := range words {
			if strings.Contains(haystack, w) {
				matched = append(matched, job)
				break
			}
		}
	}

	if len(matched) == 0 {
		return jobs
	}
	return matched
}
