package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/sym"
	"github.com/teranos/PRX/watch"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: sym.Watch + " Watch the vault and reindex on change",
	Long: sym.Watch + ` watch — Watch the vault

Runs in the foreground, watching the vault's prompt directories and
rebuilding the search index whenever files settle after a change.
Useful alongside an editor session on the raw files.

Examples:
  prx watch`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	w, err := watch.New(v)
	if err != nil {
		return err
	}

	w.OnChange(func() error {
		x, err := v.RebuildIndex()
		if err != nil {
			return err
		}
		pterm.Printf("%s reindexed, %d prompt(s)\n", sym.Index, x.Len())
		return nil
	})
	w.Start()

	pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", v.Root())

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	if err := w.Stop(); err != nil {
		return err
	}
	pterm.Info.Println("Watcher stopped")
	return nil
}
