package handlers

import (
	"aineoo/internal/config"
	"aineoo/internal/logger"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	outputDir string
	appConfig *config.Config
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aineoo",
		Short: "Generate, illustrate and publish SEO articles to WordPress",
		Long: `Aineoo - Content Marketing Automation

Turns a short prompt into a structured long-form article, generates cover and
section images, renders SEO-ready HTML with a table of contents, FAQ and
JSON-LD, scores it against twelve weighted checks and publishes it to
WordPress with Rank Math meta.

Core workflows:
  • Publish: prompt → article → images → HTML → quality score → WordPress
  • Preview: the same pipeline as a dry run, written to output/{slug}/
  • Review: browse, re-score and serve generated articles locally

Examples:
  # Publish an article
  aineoo wp --topic "企业如何落地AI客服" --categories AI --tags 智能客服

  # Dry run with video
  aineoo wp --topic "AI客服" --dry-run --video

  # Offline preview without any credentials
  aineoo generate --topic "AI客服"

  # Re-score a stored article
  aineoo score ai-kefu

  # List recent posts on the site
  aineoo posts --count 20`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .aineoo.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "console log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "asset output directory (default from config: output)")

	rootCmd.AddCommand(NewWPCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewScoreCmd())
	rootCmd.AddCommand(NewLocalListCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewPostsCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewBrowseCmd())

	return rootCmd
}

// Execute runs the root command and prints a one-line diagnostic on failure
func Execute(ctx context.Context) error {
	defer func() { _ = logger.Close() }()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil && ctx.Err() == nil {
		printFailure(os.Stderr, err)
	}
	return err
}

// initConfig loads configuration and sets up logging before any command runs
func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.Publish.OutputDir = outputDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if cfg.App.Debug && logLevel == "" {
		cfg.Logging.Level = "debug"
	}

	if err := logger.Setup(logger.Options{Level: cfg.Logging.Level, FilePath: cfg.Logging.File}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	appConfig = cfg
	return nil
}
