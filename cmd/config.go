package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/cvblue/internal/app"
	"github.com/khrees2412/cvblue/internal/config"
	"github.com/khrees2412/cvblue/internal/render"
	"github.com/khrees2412/cvblue/internal/transfer"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getApp(cmd).Config
		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		fmt.Printf("%s %s\n", labelStyle.Render("Data Dir:"), cfg.DataDir)
		fmt.Printf("%s %s\n", labelStyle.Render("Output Dir:"), cfg.OutputDir)
		fmt.Printf("%s %s\n", labelStyle.Render("Default Layout:"), cfg.DefaultLayout)
		fmt.Printf("%s %s\n", labelStyle.Render("Export Format:"), cfg.ExportFormat)

		if cfg.ChromePath != "" {
			fmt.Printf("%s %s\n", labelStyle.Render("Chrome:"), cfg.ChromePath)
		} else {
			fmt.Printf("%s %s\n", labelStyle.Render("Chrome:"), "auto-detect")
		}
		fmt.Printf("%s %s\n", labelStyle.Render("PDF Timeout:"), cfg.PDFTimeout)
		fmt.Printf("%s %s\n", labelStyle.Render("Debounce:"), cfg.DebounceInterval)
		fmt.Printf("%s %t\n", labelStyle.Render("Verbose:"), cfg.Verbose)
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  cvblue config set --key default_layout --value modern
  cvblue config set --key export_format --value xml
  cvblue config set --key output_dir --value ~/Documents/cv
  cvblue config set --key chrome_path --value /usr/bin/chromium`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || (value == "" && key != "chrome_path" && key != "data_dir") {
			return fmt.Errorf("%w: both --key and --value are required (keys: %s)",
				app.ErrInvalidArgument, strings.Join(config.Keys, ", "))
		}

		switch key {
		case "default_layout":
			if _, err := render.ParseLayout(value); err != nil {
				return err
			}
		case "export_format":
			if _, err := transfer.ParseFormat(value); err != nil {
				return err
			}
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("%w: %v", app.ErrInvalidArgument, err)
		}
		fmt.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
