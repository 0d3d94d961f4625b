package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/sym"
)

// RmCmd represents the rm command
var RmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: sym.Archive + " Archive or delete a prompt",
	Long: sym.Archive + ` rm — Remove a prompt

Deletes the prompt file. With --archive the file moves to the vault's
archive/ directory instead: it stops resolving and listing, but its
name stays reserved and the content is kept.

Examples:
  prx rm old_draft
  prx rm old_draft --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

var rmArchiveFlag bool

func init() {
	RmCmd.Flags().BoolVarP(&rmArchiveFlag, "archive", "a", false, "Move to the archive instead of deleting")
}

func runRm(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	name := args[0]
	if err := v.Delete(name, rmArchiveFlag); err != nil {
		return err
	}

	if rmArchiveFlag {
		pterm.Success.Printfln("Archived %s", name)
	} else {
		pterm.Success.Printfln("Deleted %s", name)
	}
	return nil
}
