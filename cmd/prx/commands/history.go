package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/history"
	"github.com/teranos/PRX/sym"
)

// HistoryCmd represents the history command
var HistoryCmd = &cobra.Command{
	Use:   "history [name]",
	Short: sym.History + " Show past resolutions",
	Long: sym.History + ` history — Show past resolutions

Lists recent prompt resolutions, newest first: when, what, how long,
and what was expanded. With a name, only that prompt's resolutions.

Examples:
  prx history
  prx history daily_summary --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyLimitFlag int

func init() {
	HistoryCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Number of resolutions to show (negative for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg, v)
	if err != nil {
		return err
	}
	defer database.Close()

	s := history.NewStore(database)

	var resolutions []*history.Resolution
	if len(args) == 1 {
		resolutions, err = s.ListByPrompt(args[0], historyLimitFlag)
	} else {
		resolutions, err = s.List(historyLimitFlag)
	}
	if err != nil {
		return err
	}

	if len(resolutions) == 0 {
		pterm.Info.Println("No resolutions recorded yet")
		return nil
	}

	pterm.Printf("%s %d resolution(s)\n", sym.History, len(resolutions))
	for _, r := range resolutions {
		printResolution(r)
	}
	return nil
}

func printResolution(r *history.Resolution) {
	counts := fmt.Sprintf("%d refs, %d files, %d cmds",
		r.ReferenceCount, r.FileCount, r.CommandCount)

	var marks []string
	if r.Executed {
		marks = append(marks, sym.Shell+" executed")
	}
	if r.HadCircular {
		marks = append(marks, sym.Circular+" circular")
	}
	if r.DepthExceeded {
		marks = append(marks, "depth limit")
	}
	suffix := ""
	if len(marks) > 0 {
		suffix = "  " + pterm.Yellow(strings.Join(marks, ", "))
	}

	pterm.Printf("  %s  %s  %s  %s  %s%s\n",
		pterm.Gray(fmt.Sprintf("#%-4d", r.ID)),
		r.ResolvedAt.Local().Format("2006-01-02 15:04:05"),
		pterm.LightCyan(fmt.Sprintf("%-24s", r.PromptName)),
		fmt.Sprintf("%4dms", r.DurationMS),
		pterm.Gray(counts),
		suffix)
}
