package handlers

import (
	"aineoo/internal/apperr"
	"aineoo/internal/assets"
	"aineoo/internal/pipeline"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// NewScoreCmd creates the offline re-scoring command
func NewScoreCmd() *cobra.Command {
	var (
		asJSON   bool
		minScore int
	)

	cmd := &cobra.Command{
		Use:   "score <slug>",
		Short: "Re-render and re-score a stored article",
		Long: `Load {output-dir}/{slug}/article.json, render it again and run the twelve
quality checks. Category and tag counts come from result.json when present.

With --min-score the command fails when the score is below the threshold,
which makes it usable as a CI gate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := assets.Open(appConfig.Publish.OutputDir, args[0])
			a, err := dir.LoadArticle()
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("no article found in %s: %w", dir.Root, apperr.ErrInvalidInput)
				}
				return err
			}
			rec, _ := dir.LoadResult()

			report, err := pipeline.Rescore(a, rec, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, titleStyle.Render(a.Title))
				report.Print(out)
			}

			if minScore > 0 && report.Score < minScore {
				return &apperr.QualityError{Score: report.Score, MinScore: minScore, Failed: report.FailedKeys()}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "fail when the score is below this value")

	return cmd
}
