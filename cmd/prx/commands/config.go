package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/sym"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: sym.Config + " Show and set configuration",
	Long: sym.Config + ` config — Manage PRX configuration

Configuration sources (in order of precedence):
1. Environment variables (PRX_* prefix)
2. Vault config (.prx/config.toml, searched up from the working directory)
3. User config (~/.prx/config.toml)
4. System config (/etc/prx/config.toml)
5. Default values

Sets are written to the user config with rotating backups.

Examples:
  prx config list                      # Show effective configuration
  prx config list --format json        # As JSON
  prx config get resolver.max_depth    # One value
  prx config set resolver.safe_mode false`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective configuration",
	Long:  "Display the merged configuration from all sources",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  "Get a configuration value using dot notation (e.g. resolver.max_depth)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Persist a configuration value to the user config file using dot
notation. The previous file is kept as a rotating backup.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configFormatFlag string

func init() {
	configListCmd.Flags().StringVar(&configFormatFlag, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configListCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configSetCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch configFormatFlag {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Printf("# PRX configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# PRX configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormatFlag)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := config.GetViper()
	if !v.IsSet(key) {
		return fmt.Errorf("configuration key %q not found", key)
	}

	fmt.Println(config.Get(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := config.SetValue(key, value); err != nil {
		return err
	}

	// Reload and validate so a bad value is caught right away.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		pterm.Warning.Printfln("Saved, but the configuration is now invalid: %v", err)
		return nil
	}

	pterm.Success.Printfln("Set %s = %s", key, value)
	return nil
}
