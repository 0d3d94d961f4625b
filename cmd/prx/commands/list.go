package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/store"
	"github.com/teranos/PRX/sym"
)

// ListCmd represents the list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: sym.All + " List prompts in the vault",
	Long: sym.All + ` list — List prompts

Reads the search index: name, first-line preview, and tags per prompt.
Archived prompts appear only when asked for with --location archive.

Examples:
  prx list                        # Active prompts
  prx list --search deploy        # Fuzzy name / content match
  prx list --tag daily            # Prompts carrying a tag
  prx list --location archive     # Archived prompts
  prx list --location folders/ops # One folder`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listSearchFlag   string
	listTagFlag      string
	listLocationFlag string
)

func init() {
	ListCmd.Flags().StringVarP(&listSearchFlag, "search", "s", "", "Filter by fuzzy name or content match")
	ListCmd.Flags().StringVarP(&listTagFlag, "tag", "t", "", "Filter by tag")
	ListCmd.Flags().StringVarP(&listLocationFlag, "location", "l", "", "Filter by location (prompts, archive, folders/<name>)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	x := store.LoadIndexOrNew(v.IndexPath())
	if x.Len() == 0 {
		// First run or clobbered index; rebuild from the files.
		if rebuilt, err := v.RebuildIndex(); err == nil {
			x = rebuilt
		}
	}

	entries := listEntries(x)
	if len(entries) == 0 {
		pterm.Info.Println("No prompts found. Create one with 'prx new'.")
		return nil
	}

	pterm.Printf("%s %d prompt(s)\n", sym.All, len(entries))
	for _, e := range entries {
		printEntry(e)
	}
	return nil
}

// listEntries applies the flag filters to the index. Search and the
// tag/location filters combine.
func listEntries(x *store.Index) []store.IndexEntry {
	var entries []store.IndexEntry
	if listSearchFlag != "" {
		entries = x.Search(listSearchFlag)
	} else {
		for _, name := range x.AllNames() {
			if e, ok := x.Get(name); ok {
				entries = append(entries, e)
			}
		}
	}

	filtered := entries[:0]
	for _, e := range entries {
		if listTagFlag != "" && !hasTag(e, listTagFlag) {
			continue
		}
		if listLocationFlag != "" {
			if e.Location != listLocationFlag {
				continue
			}
		} else if e.Location == store.LocationArchive {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func hasTag(e store.IndexEntry, tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func printEntry(e store.IndexEntry) {
	location := ""
	if e.Location != store.LocationPrompts {
		location = " " + pterm.Gray("("+e.Location+")")
	}
	tags := ""
	if len(e.Tags) > 0 {
		tags = " " + pterm.Yellow(fmt.Sprintf("%v", e.Tags))
	}
	pterm.Printf("  %s  %s%s%s\n",
		pterm.LightCyan(fmt.Sprintf("%-24s", e.Name)),
		pterm.Gray(e.Preview),
		tags,
		location)
}
