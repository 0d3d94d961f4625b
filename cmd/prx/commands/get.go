package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/engine"
	"github.com/teranos/PRX/sym"
)

// GetCmd represents the get (resolve) command
var GetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: sym.Resolve + " Resolve a prompt with all references expanded",
	Long: sym.Resolve + ` get — Resolve a prompt

Expands the prompt's markup and prints the final text to stdout:
[[name]] inlines another prompt recursively, [[file:path]] inlines a
file, {{command}} runs a shell command and splices in its output.

Broken references never abort a resolve; they leave inline markers
(or the verbatim token for unknown names) and the text still prints.

When safe mode is on (the default), commands found in the prompt are
listed and confirmed on stderr before anything runs. Status output goes
to stderr too, so resolved text can be piped.

Examples:
  prx get daily_summary              # Fully resolved text
  prx get daily_summary --raw        # Stored content, no expansion
  prx get daily_summary --no-exec    # Leave {{...}} tokens in place
  prx get daily_summary --depth 3    # Tighter recursion ceiling
  prx get daily_summary -y | pbcopy  # Skip confirmation, pipe result`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var (
	getRawFlag    bool
	getNoExecFlag bool
	getDepthFlag  int
	getYesFlag    bool
	getDirFlag    string
)

func init() {
	GetCmd.Flags().BoolVar(&getRawFlag, "raw", false, "Print the stored content without resolving")
	GetCmd.Flags().BoolVar(&getNoExecFlag, "no-exec", false, "Report {{command}} tokens but do not execute them")
	GetCmd.Flags().IntVar(&getDepthFlag, "depth", 0, "Maximum reference depth (default from config)")
	GetCmd.Flags().BoolVarP(&getYesFlag, "yes", "y", false, "Skip the safe-mode command confirmation")
	GetCmd.Flags().StringVar(&getDirFlag, "dir", "", "Base directory for relative file references (default: the prompt's directory)")
}

func runGet(cmd *cobra.Command, args []string) error {
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

	if getRawFlag {
		fmt.Println(p.Content)
		return nil
	}

	lookup, err := v.Lookup()
	if err != nil {
		return err
	}

	opts := cfg.ResolveOptions()
	if getDepthFlag > 0 {
		opts.MaxDepth = getDepthFlag
	}
	opts.BaseDir = filepath.Dir(p.Path)
	if getDirFlag != "" {
		opts.BaseDir = getDirFlag
	}

	// References always resolve first with execution off, so safe mode
	// can show every pending command before anything runs.
	execute := opts.ExecuteCommands && !getNoExecFlag
	opts.ExecuteCommands = false

	start := time.Now()
	result := engine.Resolve(p.Content, lookup, opts)
	elapsed := time.Since(start)

	warn := pterm.Warning.WithWriter(os.Stderr)
	if result.HadCircularRefs {
		warn.Println("Circular references detected, markers left inline")
	}
	if result.MaxDepthExceeded {
		warn.Printfln("Reference depth limit (%d) reached, deeper references left unexpanded", opts.MaxDepth)
	}

	executed := false
	if execute && len(result.Commands) > 0 {
		if cfg.Resolver.SafeMode && !getYesFlag {
			execute = confirmCommands(result.Commands)
		}
		if execute {
			cmdStart := time.Now()
			result.Content = engine.ResolveCommandsWithOptions(result.Content, opts)
			elapsed += time.Since(cmdStart)
			executed = true
		}
	}

	fmt.Println(result.Content)

	recordHistory(cfg, v, p.Name, &result, elapsed, executed)
	return nil
}

// confirmCommands lists pending commands on stderr and asks y/N.
// EOF or anything but y/yes counts as no.
func confirmCommands(commands []string) bool {
	fmt.Fprintf(os.Stderr, "%s This prompt runs %d command(s):\n", sym.Shell, len(commands))
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  {{%s}}\n", c)
	}
	fmt.Fprint(os.Stderr, "Execute? [y/N] ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
