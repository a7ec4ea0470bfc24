package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillmatch/backend/config"
	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/document"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/skillmatch/backend/internal/vocabulary"
)

type matchOutput struct {
	Resume       string             `json:"resume"`
	Result       domain.MatchResult `json:"result"`
	ResumeSkills []domain.Skill     `json:"resume_skills"`
	JobSkills    []domain.Skill     `json:"job_skills"`
}

func newMatchCommand(a *app) *cobra.Command {
	var (
		jobFile  string
		jobText  string
		advanced bool
	)

	cmd := &cobra.Command{
		Use:   "match <resume>",
		Short: "Score one resume against a job description",
		Example: `  skillmatch match resume.pdf --job job.txt
  skillmatch match resume.docx --job-text "Go, Kubernetes and PostgreSQL" --advanced`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (jobFile == "") == (jobText == "") {
				return errors.New("exactly one of --job or --job-text is required")
			}

			cfg, log, err := a.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			extractor := document.NewExtractor(log)

			resumeText, err := readDocument(extractor, args[0])
			if err != nil {
				return err
			}

			if jobFile != "" {
				if jobText, err = readDocument(extractor, jobFile); err != nil {
					return err
				}
			}

			service := usecase.NewMatchService(vocabulary.New(), nil, nil, matchServiceConfig(cfg), log)
			report, err := service.MatchDocuments(cmd.Context(), resumeText, jobText, modeFor(advanced))
			if err != nil {
				return fmt.Errorf("match failed: %w", err)
			}

			return writeJSON(cmd.OutOrStdout(), matchOutput{
				Resume:       args[0],
				Result:       report.Result,
				ResumeSkills: report.ResumeSkills,
				JobSkills:    report.JobSkills,
			})
		},
	}

	cmd.Flags().StringVar(&jobFile, "job", "", "Job description file (txt, pdf or docx)")
	cmd.Flags().StringVar(&jobText, "job-text", "", "Job description text")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "Use advanced scoring (exact, fuzzy and semantic signals)")

	return cmd
}

func modeFor(advanced bool) domain.MatchMode {
	if advanced {
		return domain.MatchModeAdvanced
	}
	return domain.MatchModeBasic
}

func matchServiceConfig(cfg *config.Config) usecase.MatchServiceConfig {
	return usecase.MatchServiceConfig{
		TopK:        cfg.Matching.TopK,
		Workers:     cfg.Matching.Workers,
		JobCacheTTL: cfg.Cache.TTL,
	}
}
