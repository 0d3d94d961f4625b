package commands

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/errors"
	"github.com/teranos/PRX/sym"
)

// EditCmd represents the edit command
var EditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: sym.Edit + " Open a prompt in your editor",
	Long: sym.Edit + ` edit — Edit a prompt

Opens the prompt file in $VISUAL or $EDITOR (vi as a last resort),
then refreshes the prompt's metadata and index entry. Editor values
with flags work: EDITOR="code --wait" is split shell-style.

Examples:
  prx edit daily_summary`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	p, err := v.Load(args[0])
	if err != nil {
		return err
	}

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	parts, err := shellquote.Split(editor)
	if err != nil {
		return errors.Wrapf(err, "parsing editor command %q", editor)
	}
	if len(parts) == 0 {
		return errors.Newf("editor command %q is empty", editor)
	}

	editCmd := exec.Command(parts[0], append(parts[1:], p.Path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return errors.Wrapf(err, "editor %q", editor)
	}

	// Reload from disk and save back: the save stamps Modified and
	// refreshes the index entry with the edited content.
	edited, err := v.Load(p.Name)
	if err != nil {
		return err
	}
	edited.Modified = time.Now().UTC()
	if err := v.Save(edited); err != nil {
		return err
	}

	pterm.Success.Printfln("Updated %s", edited.Name)
	return nil
}
