package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/sym"
)

// MvCmd represents the mv command
var MvCmd = &cobra.Command{
	Use:   "mv <name> <new-name | folder/ | folder/new-name>",
	Short: sym.Rename + " Rename or move a prompt",
	Long: sym.Rename + ` mv — Rename or move a prompt

A plain destination renames. A destination with a slash moves into a
folder (created on demand), optionally renaming too. A bare slash
moves back to the top level.

Examples:
  prx mv draft weekly_report       # Rename
  prx mv weekly_report ops/        # Move into folder ops
  prx mv weekly_report ops/weekly  # Move and rename
  prx mv weekly /                  # Back to the top level`,
	Args: cobra.ExactArgs(2),
	RunE: runMv,
}

func runMv(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	name, dest := args[0], args[1]

	if !strings.Contains(dest, "/") {
		if err := v.Rename(name, dest); err != nil {
			return err
		}
		pterm.Success.Printfln("Renamed %s to %s", name, dest)
		return nil
	}

	folder, newName, _ := strings.Cut(dest, "/")
	if err := v.MoveToFolder(name, folder); err != nil {
		return err
	}
	moved := name
	if newName != "" && newName != name {
		if err := v.Rename(name, newName); err != nil {
			return err
		}
		moved = newName
	}

	if folder == "" {
		pterm.Success.Printfln("Moved %s to the top level", moved)
	} else {
		pterm.Success.Printfln("Moved %s to %s/", moved, folder)
	}
	return nil
}
