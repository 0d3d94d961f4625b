package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/PRX/cmd/prx/commands"
	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/logger"
)

var rootCmd = &cobra.Command{
	Use:   "prx",
	Short: "PRX - Prompt vault and resolution engine",
	Long: `PRX - Prompt vault and resolution engine.

Prompts are markdown files in a vault. They compose: [[name]] inlines
another prompt, [[file:path]] inlines a file, {{command}} splices in a
shell command's output. prx get resolves a prompt into final text.

Available commands:
  init    - Initialize a prompt vault
  get     - Resolve a prompt with all references expanded
  new     - Create a new prompt
  list    - List prompts in the vault
  refs    - Show the references a prompt makes
  run     - Run a shell command through the engine executor
  edit    - Open a prompt in your editor
  rm      - Archive or delete a prompt
  mv      - Rename or move a prompt
  index   - Rebuild the search index
  watch   - Watch the vault and reindex on change
  history - Show past resolutions
  config  - Show and set configuration

Examples:
  prx init                       # Create a vault in the current directory
  prx new "Summarize [[notes]]"  # Create a prompt that references another
  prx get summarize_notes        # Print the fully resolved text
  prx list --search notes        # Find prompts
  prx watch                      # Keep the search index current`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// -v flags trump the configured level; without them the
		// config decides.
		if verbosity > 0 {
			if err := logger.InitializeAtLevel(logger.VerbosityToLevel(verbosity), cfg.Logging.JSON); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		}
		if err := logger.Initialize(cfg.Logging.Level, cfg.Logging.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.GetCmd)
	rootCmd.AddCommand(commands.NewCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.RefsCmd)
	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.EditCmd)
	rootCmd.AddCommand(commands.RmCmd)
	rootCmd.AddCommand(commands.MvCmd)
	rootCmd.AddCommand(commands.IndexCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
