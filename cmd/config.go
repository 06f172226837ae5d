package cmd

import (
	"strings"

	"dario.lol/ddns/internal/config"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/ui"
	"dario.lol/ddns/internal/ui/response"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Set a configuration value (" + strings.Join(config.Keys, ", ") + ")",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		rb := response.New()
		if err := config.LoadConfig(); err != nil {
			rb.Error("Error loading config", err).Display()
			return &executor.ReportedError{Err: err}
		}
		key := strings.ToLower(args[0])
		if err := config.Cfg.Set(key, args[1]); err != nil {
			rb.Error("Invalid configuration value", err).Display()
			return &executor.ReportedError{Err: err}
		}
		if err := config.SaveConfig(); err != nil {
			rb.Error("Failed to save config", err).Display()
			return &executor.ReportedError{Err: err}
		}
		value, _ := config.Cfg.Get(key)
		rb.FooterSuccessf("Configuration updated: %s set to %s", ui.Code.Render(key), displayValue(value)).Display()
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:       "get [key]",
	Short:     "Show one or all configuration values",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		rb := response.New()
		if err := config.LoadConfig(); err != nil {
			rb.Error("Error loading config", err).Display()
			return &executor.ReportedError{Err: err}
		}

		keys := config.Keys
		if len(args) == 1 {
			keys = []string{strings.ToLower(args[0])}
		}
		content := response.NewItemContent()
		for _, key := range keys {
			value, err := config.Cfg.Get(key)
			if err != nil {
				rb.Error("Unknown configuration key", err).Display()
				return &executor.ReportedError{Err: err}
			}
			content.Add(ui.Label(key)+":", displayValue(value))
		}
		if config.Cfg.HasStaticCredentials() {
			content.Add(ui.Label("access_key_id")+":", config.Cfg.AccessKeyID)
		}
		rb.AddItem("Configuration", content.String()).Display()
		return nil
	},
}

func displayValue(v string) string {
	if v == "" {
		return ui.Muted("(not set)")
	}
	return v
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}
