package cmd

import (
	"fmt"
	"strings"

	"dario.lol/hover/internal/config"
	"dario.lol/hover/internal/db"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value (e.g., caching true|false)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		value := strings.ToLower(args[1])
		rb := response.New()

		switch key {
		case "caching":
			enabled, err := parseSwitch(value)
			if err != nil {
				rb.Error("Invalid value", err).Display()
				return
			}
			config.Cfg.Caching = enabled
			if err := config.SaveCaching(); err != nil {
				rb.Error("Failed to save config", err).Display()
				return
			}
			if !enabled {
				_, _ = db.Clear(db.CacheBucket, db.TagsBucket)
			}
			rb.FooterSuccessf("Configuration updated: %s set to %v", ui.Code.Render(key), config.Cfg.Caching).Display()
		default:
			rb.Error("Unknown configuration key", fmt.Errorf("key %q is not supported", key)).Display()
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		rb := response.New()

		switch key {
		case "caching":
			rb.Summary("Config file", configPath())
			rb.FooterSuccessf("Current %s setting: %v", ui.Code.Render(key), config.Cfg.Caching).Display()
		default:
			rb.Error("Unknown configuration key", fmt.Errorf("key %q is not supported", key)).Display()
		}
	},
}

func parseSwitch(value string) (bool, error) {
	switch value {
	case "true", "1", "on", "yes":
		return true, nil
	case "false", "0", "off", "no":
		return false, nil
	}
	return false, fmt.Errorf("caching must be true or false, got %q", value)
}

func configPath() string {
	path, err := config.Path()
	if err != nil {
		return "unknown"
	}
	return path
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}
