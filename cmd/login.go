package cmd

import (
	"errors"
	"fmt"

	"dario.lol/ddns/internal/awsclient"
	"dario.lol/ddns/internal/config"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/flags"
	"dario.lol/ddns/internal/prompt"
	"dario.lol/ddns/internal/ui"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an AWS access key for ddns",
	Long: `Stores a static AWS access key pair in ~/.ddns-cli.yaml. The secret key is
encrypted with a key held in the OS keyring. Without flags the keys are
asked for interactively.`,
	Args: cobra.NoArgs,
	RunE: executeLogin,
}

var (
	loginAccessKeyID string
	loginSecretKey   string
)

func init() {
	loginCmd.Flags().StringVar(&loginAccessKeyID, "access-key-id", "", "AWS access key ID")
	loginCmd.Flags().StringVar(&loginSecretKey, "secret-access-key", "", "AWS secret access key")
	loginCmd.MarkFlagsRequiredTogether("access-key-id", "secret-access-key")
	rootCmd.AddCommand(loginCmd)
}

func executeLogin(cmd *cobra.Command, _ []string) error {
	if err := config.LoadConfig(); err != nil {
		return err
	}

	creds := prompt.Credentials{AccessKeyID: loginAccessKeyID, SecretKey: loginSecretKey}
	if creds.AccessKeyID == "" {
		var err error
		creds, err = prompt.RunLoginPrompt()
		if errors.Is(err, prompt.ErrUserCancelled) {
			return nil
		}
		if err != nil {
			fmt.Println(ui.ErrorMessage("Error reading login credentials", err))
			return &executor.ReportedError{Err: err}
		}
	}
	if err := prompt.ValidateAccessKeyID(creds.AccessKeyID); err != nil {
		fmt.Println(ui.ErrorMessage("Invalid access key ID", err))
		return &executor.ReportedError{Err: err}
	}

	opts := flags.AWSOptions(cmd, config.Cfg)
	opts.Profile = ""
	opts.AccessKeyID = creds.AccessKeyID
	opts.SecretKey = creds.SecretKey
	if creds.Region != "" {
		opts.Region = creds.Region
	}
	if err := checkCredentials(cmd, opts); err != nil {
		fmt.Println(ui.ErrorMessage("Invalid credentials, could not log in", err))
		return &executor.ReportedError{Err: err}
	}

	config.Cfg.AccessKeyID = creds.AccessKeyID
	config.Cfg.SecretKey = config.EncryptedString(creds.SecretKey)
	if creds.Region != "" {
		config.Cfg.Region = creds.Region
	}
	if err := config.SaveConfig(); err != nil {
		fmt.Println(ui.ErrorMessage("Error saving config", err))
		return &executor.ReportedError{Err: err}
	}
	fmt.Println(ui.Success("You were successfully logged in."))
	return nil
}

func checkCredentials(cmd *cobra.Command, opts awsclient.Options) error {
	clients, err := awsclient.New(cmd.Context(), opts)
	if err != nil {
		return err
	}
	_, err = callerIdentity(cmd.Context(), clients)
	return err
}
