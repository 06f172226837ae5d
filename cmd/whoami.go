package cmd

import (
	"context"
	"time"

	"dario.lol/ddns/internal/awsclient"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/ui"
	"dario.lol/ddns/internal/ui/response"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"
)

var whoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the AWS identity ddns will act as",
	Args:  cobra.NoArgs,
	RunE: executor.NewBuilder[*awsclient.Clients, *identity]().
		Setup("Loading AWS configuration", executor.LoadClients).
		Fetch("Fetching caller identity", fetchIdentity).
		Display(printIdentity).
		Build().
		RunE(),
}

type identity struct {
	Account string
	ARN     string
	UserID  string
	Region  string
}

func init() {
	rootCmd.AddCommand(whoAmICmd)
}

func callerIdentity(ctx context.Context, clients *awsclient.Clients) (*identity, error) {
	out, err := clients.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}
	return &identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
		Region:  clients.Config.Region,
	}, nil
}

func fetchIdentity(clients *awsclient.Clients, cmd *cobra.Command, _ []string, _ chan<- string) (*identity, error) {
	return callerIdentity(cmd.Context(), clients)
}

func printIdentity(id *identity, fetchDuration time.Duration, err error) {
	rb := response.New().Title("AWS identity")
	if err != nil {
		rb.Error("Error getting caller identity", err).Display()
		return
	}

	region := id.Region
	if region == "" {
		region = ui.Muted("not set")
	}
	content := response.NewItemContent().
		Add("Account:", id.Account).
		Add(ui.Label("arn")+":", id.ARN).
		Add("User ID:", ui.Muted(id.UserID)).
		Add("Region:", region)
	rb.AddItem("Caller", content.String()).
		FooterSuccessf("Authentication successful %s", ui.Took(fetchDuration)).
		Display()
}
