package commands

import (
	"github.com/spf13/cobra"

	"github.com/yurukusa/cc-project-stats/internal/tui"
)

// NewTUICommand creates the tui command
func NewTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive live view of the usage report",
		Long: `Show the usage report in a full-screen view that rescans when session
files change on disk. Press r to refresh manually and a to toggle all-time.`,
		RunE: runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	root, days, err := resolveOptions()
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		SessionsDir: root,
		Days:        days,
		AllTime:     allFlag,
	})
}
