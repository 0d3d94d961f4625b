package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/store"
	"github.com/teranos/PRX/sym"
)

// IndexCmd represents the index command
var IndexCmd = &cobra.Command{
	Use:   "index",
	Short: sym.Index + " Rebuild the search index",
	Long: sym.Index + ` index — Rebuild the search index

Regenerates .index.json from a full walk of the vault. The index is
kept current incrementally by the other commands and by prx watch;
rebuilding repairs it after manual file edits outside prx.

Examples:
  prx index
  prx index --stats`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

var indexStatsFlag bool

func init() {
	IndexCmd.Flags().BoolVar(&indexStatsFlag, "stats", false, "Print entry counts after rebuilding")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	x, err := v.RebuildIndex()
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Indexed %d prompt(s)", x.Len())

	if indexStatsFlag {
		printIndexStats(x)
	}
	return nil
}

func printIndexStats(x *store.Index) {
	counts := make(map[string]int)
	for _, e := range x.Entries {
		counts[e.Location]++
	}

	locations := make([]string, 0, len(counts))
	for location := range counts {
		locations = append(locations, location)
	}
	sort.Strings(locations)

	pterm.Printf("%s index statistics\n", sym.Index)
	for _, location := range locations {
		pterm.Printf("  %-20s %d\n", location, counts[location])
	}
	if tags := x.AllTags(); len(tags) > 0 {
		pterm.Printf("  %-20s %d (%s)\n", "tags", len(tags), strings.Join(tags, ", "))
	}
}
