package commands

import (
	"context"
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/engine"
	"github.com/teranos/PRX/sym"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: sym.Shell + " Run a shell command through the engine executor",
	Long: sym.Shell + ` run — Run a shell command

Executes one command through the same executor {{command}} tokens use
(the platform shell, captured stdout) and prints the raw output. A
non-zero exit becomes an error carrying the command's stderr. The
configured command timeout applies.

A single argument is taken as a complete shell string; multiple
arguments are joined with shell quoting. Use -- before commands that
carry their own flags.

Examples:
  prx run date
  prx run "git log --oneline -5"
  prx run -- git log --oneline -5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// A single argument is already a complete shell string; multiple
	// arguments are re-quoted so their word boundaries survive sh -c.
	command := args[0]
	if len(args) > 1 {
		command = shellquote.Join(args...)
	}

	ctx := context.Background()
	if timeout := cfg.CommandTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	output, err := engine.RunCommandContext(ctx, command)
	if err != nil {
		return err
	}

	fmt.Print(output)
	return nil
}
