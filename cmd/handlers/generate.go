package handlers

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the offline preview command
func NewGenerateCmd() *cobra.Command {
	f := &publishFlags{}
	var withImages bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an article and its preview without WordPress",
		Long: `Run the publish pipeline as a local dry run. No WordPress credentials are
needed: categories and tags are not resolved, related posts are skipped and
images (with --images) are referenced from the asset directory.

Output is written to {output-dir}/{slug}/ (article.json, images/,
preview.html, result.json).

Examples:
  aineoo generate --topic "AI客服"
  aineoo generate --brief briefs/ai-kefu.md --images --no-llm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig
			f.dryRun = true
			opts, err := f.options(cfg)
			if err != nil {
				return err
			}
			opts.Categories = nil

			out := cmd.OutOrStdout()
			rt, err := buildRuntime(cmd.Context(), cfg, wiring{images: withImages, out: out})
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Fprintf(out, "📝 Generating offline preview (LLM: %s)\n\n", rt.gateway.Provider())
			res, err := rt.publisher.Publish(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printRunReport(out, res)
			return nil
		},
	}

	f.registerContent(cmd)
	cmd.Flags().BoolVar(&withImages, "images", false, "generate images when an image API key is configured")

	return cmd
}
