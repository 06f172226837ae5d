package cmd

import (
	"fmt"

	"dario.lol/ddns/internal/config"
	"dario.lol/ddns/internal/crypt"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/ui"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored AWS access key",
	Args:  cobra.NoArgs,
	RunE:  executeLogout,
}

var forgetIdentity bool

func init() {
	logoutCmd.Flags().BoolVar(&forgetIdentity, "forget-key", false, "Also delete the encryption key from the OS keyring")
	rootCmd.AddCommand(logoutCmd)
}

func executeLogout(*cobra.Command, []string) error {
	if err := config.LoadConfig(); err != nil {
		fmt.Println(ui.ErrorMessage("Error loading config", err))
		return &executor.ReportedError{Err: err}
	}
	if !config.Cfg.HasStaticCredentials() {
		fmt.Println(ui.Warning("You are not logged in."))
		return nil
	}

	config.Cfg.AccessKeyID = ""
	config.Cfg.SecretKey = ""
	if err := config.SaveConfig(); err != nil {
		fmt.Println(ui.ErrorMessage("Error saving config", err))
		return &executor.ReportedError{Err: err}
	}
	if forgetIdentity {
		if err := crypt.Forget(); err != nil {
			fmt.Println(ui.ErrorMessage("Error removing encryption key", err))
			return &executor.ReportedError{Err: err}
		}
	}
	fmt.Println(ui.Success("You were successfully logged out."))
	return nil
}
