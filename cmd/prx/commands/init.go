package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/store"
	"github.com/teranos/PRX/sym"
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: sym.Vault + " Initialize a prompt vault",
	Long: sym.Vault + ` init — Initialize a prompt vault

Creates the vault layout in the current directory:

  .prx/
    prompts/   active prompts
    archive/   archived prompts
    folders/   user folders

Running init on an existing vault is harmless; missing pieces are
created, existing content is left alone.

Examples:
  prx init                 # Vault in the current directory`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	root := cfg.Store.Dir
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		root = filepath.Join(cwd, root)
	}

	v, err := store.Init(root)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Vault ready at %s", v.Root())
	return nil
}
