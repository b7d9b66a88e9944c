package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"shotpair/pkg/config"
	"shotpair/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage shotpair configuration files.

Configuration is loaded from, highest priority first:
  - Command line flags
  - Environment variables (SHOTPAIR_*)
  - .env files
  - Configuration file
  - Default values`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Long: `Write a configuration file holding every option at its default value.

The file is written to .shotpair.yaml unless --config names another path.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = ".shotpair.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	cfg := config.DefaultConfig()
	cfg.Environments.Left.BaseURL = "https://www.example.com"
	cfg.Environments.Right.BaseURL = "https://staging.example.com"
	if err := cfg.Save(path); err != nil {
		return err
	}

	ui.PrintSuccess("Configuration file created: " + path)
	fmt.Fprintln(ui.Output, "\nNext steps:")
	fmt.Fprintln(ui.Output, "1. Set the left and right base URLs")
	fmt.Fprintln(ui.Output, "2. Run 'shotpair config validate' to check the configuration")
	fmt.Fprintln(ui.Output, "3. List page paths in the input file and run 'shotpair run'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(configFile); err != nil {
		return err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}
	cfg.MergeCommandLineFlags(globalFlags())

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Fprintln(ui.Output)
	fmt.Fprint(ui.Output, string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, globalFlags())
	if err != nil {
		return err
	}

	ui.PrintSuccess("Configuration is valid")
	fmt.Fprintln(ui.Output)
	ui.PrintInfo("Left", cfg.Environments.Left.BaseURL)
	ui.PrintInfo("Right", cfg.Environments.Right.BaseURL)
	ui.PrintInfo("Input", cfg.Files.Input)
	ui.PrintInfo("Record log", cfg.Files.RecordLog)
	ui.PrintInfo("Output directory", cfg.Files.OutputDir)
	ui.PrintInfo("Settle delay", cfg.Capture.SettleDelay.String())
	ui.PrintInfo("Timeout", cfg.Capture.Timeout.String())
	if cfg.Capture.PairsPerMinute > 0 {
		ui.PrintInfo("Pairs per minute", fmt.Sprint(cfg.Capture.PairsPerMinute))
	}
	return nil
}
