package handlers

import (
	"aineoo/internal/assets"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewLocalListCmd creates the command listing generated asset directories
func NewLocalListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "local-list",
		Aliases: []string{"ls"},
		Short:   "List generated articles in the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := assets.List(appConfig.Publish.OutputDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if rows == nil {
					rows = []assets.Summary{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			printSummaries(out, appConfig.Publish.OutputDir, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print rows as JSON")
	return cmd
}

func printSummaries(w io.Writer, dir string, rows []assets.Summary) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "No articles in %s\n", dir)
		return
	}

	fmt.Fprintf(w, "📂 %d articles in %s\n\n", len(rows), dir)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tIMAGES\tVIDEO\tPUBLISHED\tSCORE\tUPDATED\tTITLE")
	for _, r := range rows {
		score := "-"
		if r.Score > 0 {
			score = fmt.Sprintf("%d", r.Score)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Slug, r.ImageCount, mediaFlags(r), yesNo(r.Published), score,
			r.UpdatedAt.Format("2006-01-02 15:04"), r.Title)
	}
	_ = tw.Flush()
}

func mediaFlags(r assets.Summary) string {
	switch {
	case r.HasVideo && r.HasAvatar:
		return "video+avatar"
	case r.HasVideo:
		return "video"
	case r.HasAvatar:
		return "avatar"
	default:
		return "-"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
