package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yurukusa/cc-project-stats/internal/sessions"
)

// NewDebugCommand creates the debug command
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "List what the scanner found, without filtering",
		Long: `List every session file the directory walker discovered, grouped by
project, with sizes and modification ages. Useful for diagnosing why a
project is missing from the report.`,
		RunE: runDebug,
	}
}

func runDebug(cmd *cobra.Command, args []string) error {
	root, _, err := resolveOptions()
	if err != nil {
		return err
	}

	files, err := sessions.DiscoverSessionFiles(root)
	if err != nil {
		return err
	}

	fmt.Printf("Scanning: %s\n", root)
	fmt.Println("==========================================")

	if len(files) == 0 {
		fmt.Println("No session files found")
		return nil
	}

	groups := lo.GroupBy(files, func(f sessions.SessionFile) string {
		return f.Project
	})
	names := lo.Keys(groups)
	sort.Strings(names)

	for _, name := range names {
		group := groups[name]
		interactive := lo.CountBy(group, func(f sessions.SessionFile) bool { return !f.Autonomous })
		totalSize := lo.SumBy(group, func(f sessions.SessionFile) int64 { return f.Size })
		latest := lo.MaxBy(group, func(a, b sessions.SessionFile) bool {
			return a.ModTime.After(b.ModTime)
		}).ModTime

		fmt.Printf("\n%s\n", name)
		fmt.Printf("  %d interactive, %d sub-agent files, %s on disk\n",
			interactive, len(group)-interactive, humanize.Bytes(uint64(totalSize)))
		fmt.Printf("  last activity: %s\n", humanize.Time(latest))

		for _, f := range group {
			kind := "interactive"
			if f.Autonomous {
				kind = "sub-agent"
			}
			fmt.Printf("  - %s (%s, %s, %s)\n",
				f.Path, kind, humanize.Bytes(uint64(f.Size)), f.ModTime.Format(time.DateTime))
		}
	}

	return nil
}
