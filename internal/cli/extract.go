package cli

import (
	"github.com/spf13/cobra"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/document"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/skillmatch/backend/internal/vocabulary"
)

type extractOutput struct {
	File   string         `json:"file"`
	Skills []domain.Skill `json:"skills"`
	Count  int            `json:"count"`
}

func newExtractCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the skills found in a txt, pdf or docx document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			text, err := readDocument(document.NewExtractor(log), args[0])
			if err != nil {
				return err
			}

			service := usecase.NewMatchService(vocabulary.New(), nil, nil, matchServiceConfig(cfg), log)
			skills := service.ExtractSkills(text)

			return writeJSON(cmd.OutOrStdout(), extractOutput{
				File:   args[0],
				Skills: skills,
				Count:  len(skills),
			})
		},
	}
}
