// Package cli implements the skillmatch command line: the HTTP server plus
// one-shot extraction, matching and ranking commands over local files.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/skillmatch/backend/config"
	"github.com/skillmatch/backend/internal/logger"
)

// app carries state shared by every subcommand
type app struct {
	v          *viper.Viper
	configFile string
}

// NewRootCommand builds the skillmatch command tree
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "skillmatch",
		Short: "Skill extraction and resume/job matching",
		Long: `skillmatch extracts technical skills from resumes and job descriptions,
scores how well a resume covers a job, ranks candidates and recommends jobs.
Run "skillmatch serve" for the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a config file (default: ./config.yaml, ./config/config.yaml)")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Bool("debug", false, "Enable debug logging")

	// Flag errors only occur for unknown flag names
	_ = a.v.BindPFlag("log.json", flags.Lookup("log-json"))
	_ = a.v.BindPFlag("log.debug", flags.Lookup("debug"))

	root.AddCommand(
		newServeCommand(a),
		newExtractCommand(a),
		newMatchCommand(a),
		newRankCommand(a),
		newVersionCommand(),
	)

	return root
}

// load reads configuration and builds the process logger
func (a *app) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return cfg, log, nil
}
