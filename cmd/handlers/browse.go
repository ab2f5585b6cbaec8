package handlers

import (
	"aineoo/internal/tui"

	"github.com/spf13/cobra"
)

// NewBrowseCmd creates the terminal article browser command
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse generated articles in a terminal UI",
		Long:  `Open an interactive list of the output directory. Select an article and press r to re-score it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.StartTUI(appConfig.Publish.OutputDir)
		},
	}
}
