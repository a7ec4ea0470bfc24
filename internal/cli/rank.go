package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/document"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/skillmatch/backend/internal/vocabulary"
)

type rankOutput struct {
	Mode       domain.MatchMode  `json:"mode"`
	JobSkills  []domain.Skill    `json:"job_skills"`
	Candidates domain.RankedList `json:"candidates"`
	Unreadable []string          `json:"unreadable"`
}

func newRankCommand(a *app) *cobra.Command {
	var (
		jobFile  string
		advanced bool
	)

	cmd := &cobra.Command{
		Use:     "rank --job <file> <resume>...",
		Short:   "Rank resumes against one job description",
		Example: `  skillmatch rank --job job.txt alice.pdf bob.docx carol.txt --top 2`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			extractor := document.NewExtractor(log)

			jobText, err := readDocument(extractor, jobFile)
			if err != nil {
				return err
			}

			resumes := make([]usecase.CandidateDocument, 0, len(args))
			for _, path := range args {
				text, err := readDocument(extractor, path)
				if err != nil {
					// Unreadable resumes are reported by the ranking, not fatal
					log.Warn("skipping resume", zap.String("path", path), zap.Error(err))
				}
				resumes = append(resumes, usecase.CandidateDocument{ID: filepath.Base(path), Text: text})
			}

			service := usecase.NewMatchService(vocabulary.New(), nil, nil, matchServiceConfig(cfg), log)
			ranking, err := service.RankCandidates(cmd.Context(), jobText, resumes, modeFor(advanced))
			if err != nil {
				return fmt.Errorf("ranking failed: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), rankOutput{
				Mode:       modeFor(advanced),
				JobSkills:  ranking.JobSkills,
				Candidates: ranking.Ranked,
				Unreadable: ranking.Unreadable,
			})
		},
	}

	cmd.Flags().StringVar(&jobFile, "job", "", "Job description file (txt, pdf or docx)")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "Use advanced scoring (exact, fuzzy and semantic signals)")
	cmd.Flags().Int("top", 0, "Number of candidates to return (default from matching.top_k)")
	_ = cmd.MarkFlagRequired("job")
	_ = a.v.BindPFlag("matching.top_k", cmd.Flags().Lookup("top"))

	return cmd
}
