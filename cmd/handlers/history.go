package handlers

import (
	"aineoo/internal/logger"
	"aineoo/internal/store"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the run history command
func NewHistoryCmd() *cobra.Command {
	var (
		limit   int
		slug    string
		stats   bool
		cleanup time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded publish and dry runs",
		Long: `Inspect the SQLite run history written by wp and generate.

Examples:
  aineoo history
  aineoo history --slug ai-kefu
  aineoo history --stats
  aineoo history --cleanup 720h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(appConfig.Store.Path)
			if err != nil {
				return fmt.Errorf("failed to open run history: %w", err)
			}
			defer func() {
				if err := st.Close(); err != nil {
					logger.Error("Failed to close run history", err)
				}
			}()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if cleanup > 0 {
				n, err := st.CleanupOldRuns(ctx, cleanup)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "🧹 Removed %d runs older than %s\n", n, cleanup)
				return nil
			}

			if stats {
				s, err := st.GetStats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "📊 Run History")
				fmt.Fprintln(out, "==============")
				fmt.Fprintf(out, "Runs:           %d\n", s.RunCount)
				fmt.Fprintf(out, "Published:      %d\n", s.PublishedCount)
				fmt.Fprintf(out, "Average score:  %.1f\n", s.AverageScore)
				fmt.Fprintf(out, "Database size:  %.1f KB\n", float64(s.DatabaseSize)/1024)
				if !s.LastUpdated.IsZero() {
					fmt.Fprintf(out, "Last updated:   %s\n", s.LastUpdated.Format(time.RFC3339))
				}
				return nil
			}

			var runs []store.Run
			if slug != "" {
				runs, err = st.RunsForSlug(ctx, slug)
			} else {
				runs, err = st.ListRuns(ctx, limit)
			}
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tSLUG\tMODE\tSCORE\tSOURCE\tLINK")
			for _, r := range runs {
				mode := "publish"
				if r.DryRun {
					mode = "dry-run"
				} else if r.Status != "" {
					mode = r.Status
				}
				link := r.Link
				if link == "" {
					link = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Slug, mode, r.Score, r.ContentSource, link)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	cmd.Flags().StringVar(&slug, "slug", "", "only show runs of this article")
	cmd.Flags().BoolVar(&stats, "stats", false, "show aggregate statistics")
	cmd.Flags().DurationVar(&cleanup, "cleanup", 0, "delete runs older than this duration")

	return cmd
}
