package usecase

import (
	"context"
	"sort"

	"github.com/skillmatch/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Ranking defaults
const (
	defaultTopK    = 10
	defaultWorkers = 4
)

// RankInput is one scoring job for the ranker. Reference is the requirement list;
// Candidate is the skill list being judged against it.
type RankInput struct {
	ID            string
	Label         string
	Reference     []string
	Candidate     []string
	ReferenceText string
}

// RankerConfig holds configuration for the ranker
type RankerConfig struct {
	TopK    int // Entries kept after sorting; 0 keeps all
	Workers int // Concurrent scorings
}

// Ranker scores many inputs independently and orders them by combined score
type Ranker struct {
	scorer  *Scorer
	topK    int
	workers int
}

// NewRanker creates a ranker. A negative TopK disables truncation; zero uses the default of 10.
func NewRanker(scorer *Scorer, config RankerConfig) *Ranker {
	topK := config.TopK
	if topK == 0 {
		topK = defaultTopK
	}
	if topK < 0 {
		topK = 0
	}

	workers := config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Ranker{
		scorer:  scorer,
		topK:    topK,
		workers: workers,
	}
}

// TopK returns the truncation limit, 0 meaning unlimited
func (r *Ranker) TopK() int {
	return r.topK
}

// Rank scores every input with the given mode, stable-sorts by descending combined
// score and keeps the top K. Inputs with equal scores keep their relative order.
// The only error is cancellation of ctx.
func (r *Ranker) Rank(ctx context.Context, inputs []RankInput, mode domain.MatchMode) (domain.RankedList, error) {
	entries := make(domain.RankedList, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range inputs {
		input := inputs[i]
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// Each goroutine owns slot i, no lock needed
			entries[i] = domain.RankedEntry{
				ID:     input.ID,
				Label:  input.Label,
				Result: r.scorer.Score(mode, input.Reference, input.Candidate, input.ReferenceText),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Result.Score > entries[j].Result.Score
	})

	if r.topK > 0 && len(entries) > r.topK {
		entries = entries[:r.topK]
	}

	return entries, nil
}

// Candidate is one resume's skills in a candidate ranking
type Candidate struct {
	ID     string
	Label  string
	Skills []string
}

// RankCandidates scores many candidates against one requirement list
func (r *Ranker) RankCandidates(
	ctx context.Context,
	requirements []string,
	requirementText string,
	candidates []Candidate,
	mode domain.MatchMode,
) (domain.RankedList, error) {
	inputs := make([]RankInput, len(candidates))
	for i, c := range candidates {
		inputs[i] = RankInput{
			ID:            c.ID,
			Label:         c.Label,
			Reference:     requirements,
			Candidate:     c.Skills,
			ReferenceText: requirementText,
		}
	}
	return r.Rank(ctx, inputs, mode)
}

// Opening is one job's requirements in a job ranking
type Opening struct {
	ID           string
	Label        string
	Requirements []string
	Text         string
}

// RankJobs scores one resume's skills against many openings
func (r *Ranker) RankJobs(
	ctx context.Context,
	resumeSkills []string,
	openings []Opening,
	mode domain.MatchMode,
) (domain.RankedList, error) {
	inputs := make([]RankInput, len(openings))
	for i, o := range openings {
		inputs[i] = RankInput{
			ID:            o.ID,
			Label:         o.Label,
			Reference:     o.Requirements,
			Candidate:     resumeSkills,
			ReferenceText: o.Text,
		}
	}
	return r.Rank(ctx, inputs, mode)
}
