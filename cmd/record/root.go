package record

import (
	"dario.lol/ddns/internal/config"
	"dario.lol/ddns/internal/executor"
	"dario.lol/ddns/internal/flags"
	"dario.lol/ddns/internal/provision"
	"github.com/spf13/cobra"
)

var RecordCmd = &cobra.Command{
	Use:     "record",
	Aliases: []string{"records"},
	Short:   "Manage DDNS client records",
}

func registerTableFlag(cmd *cobra.Command) {
	cmd.Flags().String(flags.TableLogicalIDFlag, "", "Logical ID of the hostname table in the stack (default "+provision.DefaultTableLogicalID+")")
}

// tableLogicalID prefers the flag, then the saved config, then the default.
func tableLogicalID(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString(flags.TableLogicalIDFlag); v != "" {
		return v
	}
	if config.Cfg.TableLogicalID != "" {
		return config.Cfg.TableLogicalID
	}
	return provision.DefaultTableLogicalID
}

func newWorkflow(ctx *executor.Context, opts ...provision.WorkflowOption) *provision.Workflow {
	c := ctx.Clients
	return provision.NewWorkflow(
		provision.NewLocator(c.CloudFormation, ctx.Log.WithName("locator")),
		provision.NewZoneResolver(c.Route53, ctx.Log.WithName("zones")),
		provision.NewGateway(c.DynamoDB,
			provision.WithLogger(ctx.Log.WithName("store")),
			provision.WithVerifyTimeout(config.Cfg.VerifyTimeout),
		),
		append([]provision.WorkflowOption{provision.WithWorkflowLogger(ctx.Log)}, opts...)...,
	)
}
