package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"vkbackup/pkg/config"
	"vkbackup/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage vkbackup configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (VKBACKUP_*, .env files are read first)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with default values",
	Long: `Create a configuration file holding every option at its default value.

The file is created as '.vkbackup.yaml' in the current directory unless a
different path is given with the --config flag.`,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the configuration that a backup would use, merged from all sources.

Tokens are masked.`,
	RunE: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate the merged configuration.

This command checks:
  - YAML syntax
  - Value ranges and naming policy
  - Manifest and log file directories
  - Whether tokens are configured (warnings only, they can be prompted for)`,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = ".vkbackup.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s (remove it first to overwrite)", configPath)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	out := ui.Output()
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Add your tokens to the file or store them with 'vkbackup auth login'")
	fmt.Fprintln(out, "2. Run 'vkbackup config validate' to check the configuration")
	fmt.Fprintln(out, "3. Start a backup with 'vkbackup --user <vk user id>'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	out := ui.Output()
	ui.PrintHighlight("Current Configuration")
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))

	fmt.Fprintln(out, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(out, "1. Command line flags")
	fmt.Fprintln(out, "2. Environment variables (VKBACKUP_*)")
	if configFile != "" {
		fmt.Fprintf(out, "3. Configuration file: %s\n", configFile)
	} else {
		fmt.Fprintln(out, "3. Configuration file: (searched in default locations)")
	}
	fmt.Fprintln(out, "4. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	warnings, problems := checkConfig(cfg)
	for _, w := range warnings {
		ui.PrintWarning("Warning", w)
	}
	if len(problems) > 0 {
		for _, p := range problems {
			ui.PrintError("Error", p)
		}
		return errors.New("configuration is invalid")
	}

	ui.PrintSuccess("Configuration is valid")
	return nil
}

// checkConfig reports settings that Validate accepts but a run would trip on
func checkConfig(cfg *config.Config) (warnings, problems []string) {
	if cfg.VK.Token == "" {
		warnings = append(warnings, "VK access token not configured")
	}
	if cfg.Disk.Token == "" {
		warnings = append(warnings, "Yandex Disk token not configured")
	}

	if dir := filepath.Dir(cfg.Backup.ManifestPath); !isDir(dir) {
		problems = append(problems, fmt.Sprintf("manifest directory does not exist: %s", dir))
	}
	if cfg.Logging.File != "" {
		if dir := filepath.Dir(cfg.Logging.File); !isDir(dir) {
			problems = append(problems, fmt.Sprintf("log directory does not exist: %s", dir))
		}
	}

	return warnings, problems
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
