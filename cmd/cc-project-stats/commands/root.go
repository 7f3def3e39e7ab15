package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yurukusa/cc-project-stats/internal/config"
	"github.com/yurukusa/cc-project-stats/internal/report"
	"github.com/yurukusa/cc-project-stats/internal/sessions"
)

var (
	daysFlag        string
	allFlag         bool
	jsonFlag        bool
	sessionsDirFlag string
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cc-project-stats",
		Short: "Report per-project Claude Code usage time",
		Long: `cc-project-stats scans your Claude Code session logs and reports how much
time each project received, split between interactive sessions and
autonomous sub-agent sessions.`,
		RunE: runReport,
	}

	rootCmd.PersistentFlags().StringVar(&daysFlag, "days", "", "lookback window in days (default 7; non-numeric falls back to the default)")
	rootCmd.PersistentFlags().BoolVar(&allFlag, "all", false, "include sessions from any date")
	rootCmd.PersistentFlags().StringVar(&sessionsDirFlag, "sessions-dir", "", "override the scanned sessions directory")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "emit JSON instead of the rendered table")
	rootCmd.AddCommand(NewTUICommand())
	rootCmd.AddCommand(NewDebugCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveOptions merges the config file with flag overrides.
func resolveOptions() (root string, days int, err error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return "", 0, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return "", 0, err
	}

	root = cfg.SessionsDir
	if sessionsDirFlag != "" {
		root = sessionsDirFlag
	}
	if root == "" {
		root, err = sessions.DefaultSessionsDir()
		if err != nil {
			return "", 0, err
		}
	}

	return root, resolveDays(daysFlag, cfg.DefaultDays), nil
}

// resolveDays parses the --days flag value. Anything that is not a positive
// number falls back to the configured default.
func resolveDays(flag string, fallback int) int {
	if flag == "" {
		return fallback
	}
	n, err := strconv.Atoi(flag)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func runReport(cmd *cobra.Command, args []string) error {
	root, days, err := resolveOptions()
	if err != nil {
		return err
	}

	rep, err := sessions.Scan(root, sessions.NewFilters(days, allFlag, time.Now()))
	if err != nil {
		return err
	}

	if jsonFlag {
		return report.WriteJSON(os.Stdout, rep)
	}
	return report.WriteTable(os.Stdout, rep)
}
