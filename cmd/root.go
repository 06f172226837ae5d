package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"dario.lol/ddns/cmd/record"
	"dario.lol/ddns/internal/constants"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/flags"
	"dario.lol/ddns/internal/ui"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ddns",
	Short: fmt.Sprintf("Provision dynamic DNS records into a Route 53 DDNS stack, version %s", constants.Version),
	Long: `ddns adds client records to the DynamoDB hostname table of a dynamic DNS
CloudFormation stack. Each record maps a hostname to its Route 53 hosted
zone, TTL and the secret shared with the DDNS client.`,
	Version:       constants.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	flags.RegisterAWS(rootCmd)
	rootCmd.AddCommand(record.RecordCmd)
}

func configureColorScheme(_ lipgloss.LightDarkFunc) fang.ColorScheme {
	return ui.FangTheme()
}

func Execute() {
	err := fang.Execute(context.Background(), rootCmd,
		fang.WithErrorHandler(func(io.Writer, fang.Styles, error) {}),
		fang.WithColorSchemeFunc(configureColorScheme),
		fang.WithVersion(constants.Version),
	)
	if err == nil {
		return
	}
	var reported *executor.ReportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, ui.ErrorBox("Error executing command", err))
	}
	os.Exit(1)
}
