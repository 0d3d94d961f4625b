package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/engine"
	"github.com/teranos/PRX/sym"
)

// RefsCmd represents the refs command
var RefsCmd = &cobra.Command{
	Use:   "refs <name>",
	Short: sym.Refs + " Show the references a prompt makes",
	Long: sym.Refs + ` refs — Show a prompt's outgoing references

Scans the stored content without resolving it: prompt references are
checked against the vault's active names, file references against the
file system, and command tokens are listed as found. Nothing executes.

Examples:
  prx refs daily_summary`,
	Args: cobra.ExactArgs(1),
	RunE: runRefs,
}

func runRefs(cmd *cobra.Command, args []string) error {
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

	prompts, err := v.LoadAll()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(prompts))
	for _, other := range prompts {
		names = append(names, other.Name)
	}

	refs := engine.FindReferences(p.Content)
	engine.ValidateReferences(refs, names)

	fileRefs := engine.FindFileReferences(p.Content)
	engine.ValidateFileReferences(fileRefs, filepath.Dir(p.Path))

	commands := engine.FindCommands(p.Content)

	if len(refs) == 0 && len(fileRefs) == 0 && len(commands) == 0 {
		pterm.Printf("%s %s has no references\n", sym.Refs, p.Name)
		return nil
	}

	pterm.Printf("%s references of %s\n", sym.Refs, pterm.LightCyan(p.Name))

	if len(refs) > 0 {
		pterm.Println("  prompts:")
		for _, r := range refs {
			if r.Valid {
				pterm.Printf("    %s %s\n", pterm.LightGreen("✓"), r.Name)
			} else {
				pterm.Printf("    %s %s %s\n", pterm.Red("✗"), r.Name, pterm.Gray("(not found)"))
			}
		}
	}

	if len(fileRefs) > 0 {
		pterm.Printf("  files %s:\n", pterm.Gray("("+sym.File+")"))
		for _, r := range fileRefs {
			if r.Valid {
				pterm.Printf("    %s %s\n", pterm.LightGreen("✓"), r.Path)
			} else {
				pterm.Printf("    %s %s %s\n", pterm.Red("✗"), r.Path, pterm.Gray("(missing)"))
			}
		}
	}

	if len(commands) > 0 {
		pterm.Println("  commands:")
		for _, c := range commands {
			pterm.Printf("    %s %s\n", sym.Shell, c.Command)
		}
	}

	return nil
}
